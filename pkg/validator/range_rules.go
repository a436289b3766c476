package validator

import "cmp"

// Ordered validates that lo does not exceed hi, as in a price range filter.
// A nil bound is open and always passes.
func Ordered[T cmp.Ordered](field string, lo, hi *T) Rule {
	return Rule{
		Check: func() bool {
			return lo == nil || hi == nil || *lo <= *hi
		},
		Error: ValidationError{
			Field:             field,
			Message:           "lower bound exceeds upper bound",
			TranslationKey:    "validation.range",
			TranslationValues: map[string]string{"field": field},
		},
	}
}
