package i18n

import "errors"

var (
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrEmptyCatalog      = errors.New("translation catalog is empty")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrNoLanguages       = errors.New("translator has no languages")
)
