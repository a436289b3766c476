package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/i18n"
)

// ValidationError is one failed rule. Message is the untranslated fallback.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]string
}

// Translate renders the error through l, falling back to Message when the
// key is unknown.
func (e ValidationError) Translate(l i18n.Localizer) string {
	if e.TranslationKey == "" {
		return e.Message
	}
	args := make([]string, 0, len(e.TranslationValues)*2)
	for k, v := range e.TranslationValues {
		args = append(args, k, v)
	}
	if msg := l.T(e.TranslationKey, args...); msg != e.TranslationKey && msg != "" {
		return msg
	}
	return e.Message
}

// ValidationErrors is the failed rules of one Apply call, in rule order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for i, err := range ve {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", err.Field, err.Message)
	}
	return b.String()
}

// Is makes every ValidationErrors match ErrValidationFailed.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Fields returns the failing fields in first-failure order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	for _, err := range ve {
		if !slices.Contains(fields, err.Field) {
			fields = append(fields, err.Field)
		}
	}
	return fields
}

// Translate maps every failing field to its first message rendered by l.
// Forms show one message per field.
func (ve ValidationErrors) Translate(l i18n.Localizer) map[string]string {
	out := make(map[string]string, len(ve))
	for _, err := range ve {
		if _, seen := out[err.Field]; !seen {
			out[err.Field] = err.Translate(l)
		}
	}
	return out
}

// Rule pairs a check with the error reported when it fails. Checks are
// closures so rules can be built up front and evaluated together.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// WithKey replaces the translation key.
func (r Rule) WithKey(key string) Rule {
	r.Error.TranslationKey = key
	return r
}

// WithMessage replaces the untranslated message.
func (r Rule) WithMessage(msg string) Rule {
	r.Error.Message = msg
	return r
}

// When makes r pass unless cond holds.
func When(cond bool, r Rule) Rule {
	check := r.Check
	r.Check = func() bool { return !cond || check() }
	return r
}

// Apply evaluates every rule and returns the failures as ValidationErrors,
// or nil when all pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ExtractValidationErrors returns the ValidationErrors inside err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
