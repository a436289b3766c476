// Package validator builds declarative, translatable validation rules.
//
// A Rule pairs a Check function with a ValidationError carrying an i18n key
// and its placeholder values. Apply evaluates rules in order and collects
// the failures into ValidationErrors, which implements error:
//
//	err := validator.Apply(
//	    validator.Required("username", f.Username).WithKey("validation.username_required"),
//	    validator.MinLen("username", f.Username, 3).WithKey("validation.username_min"),
//	    validator.When(f.Phone != "", validator.MobileCN("phone", f.Phone)),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//	    fields := errs.Translate(loc) // first message per field
//	}
//
// Rules are stateless values, so building and applying them is safe from
// any goroutine. Lengths are counted in runes.
package validator
