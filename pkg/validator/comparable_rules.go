package validator

// Equal validates that value equals other, as in a password confirmation.
func Equal[T comparable](field string, value, other T) Rule {
	return Rule{
		Check: func() bool {
			return value == other
		},
		Error: ValidationError{
			Field:             field,
			Message:           "values do not match",
			TranslationKey:    "validation.mismatch",
			TranslationValues: map[string]string{"field": field},
		},
	}
}

// Accepted validates that a checkbox-style flag is set.
func Accepted(field string, value bool) Rule {
	return Rule{
		Check: func() bool {
			return value
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be accepted",
			TranslationKey:    "validation.accepted",
			TranslationValues: map[string]string{"field": field},
		},
	}
}
