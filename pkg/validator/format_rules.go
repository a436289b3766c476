package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

var mobileCNRegex = regexp.MustCompile(`^1[3-9]\d{9}$`)

// ValidEmail validates that a string is a single bare email address with a
// dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value || addr.Name != "" {
				return false
			}

			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid email address",
			TranslationKey:    "validation.email",
			TranslationValues: map[string]string{"field": field},
		},
	}
}

// MobileCN validates an 11-digit mainland China mobile number.
func MobileCN(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return mobileCNRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid mobile number",
			TranslationKey:    "validation.phone",
			TranslationValues: map[string]string{"field": field},
		},
	}
}

// Matches validates value against re. Compile re once and reuse it.
func Matches(field, value string, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool {
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "has an invalid format",
			TranslationKey: "validation.format",
			TranslationValues: map[string]string{
				"field":   field,
				"pattern": re.String(),
			},
		},
	}
}
