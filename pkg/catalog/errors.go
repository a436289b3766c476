package catalog

import "errors"

var (
	ErrInvalidProductID = errors.New("catalog: invalid product id")
	ErrMalformedPage    = errors.New("catalog: malformed page")
)
