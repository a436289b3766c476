package validator

import "errors"

// ErrValidationFailed matches every ValidationErrors with errors.Is.
var ErrValidationFailed = errors.New("validation failed")
