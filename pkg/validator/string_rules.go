package validator

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]string{"field": field},
		},
	}
}

// MinLen validates that value has at least min runes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be at least " + strconv.Itoa(min) + " characters long",
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]string{
				"field": field,
				"min":   strconv.Itoa(min),
			},
		},
	}
}

// MaxLen validates that value has at most max runes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be at most " + strconv.Itoa(max) + " characters long",
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]string{
				"field": field,
				"max":   strconv.Itoa(max),
			},
		},
	}
}
