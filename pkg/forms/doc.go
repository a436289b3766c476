// Package forms validates user input before it is sent to the API.
//
// Every function is pure: it returns an Errors map keyed by form field with
// one localized message per invalid field, and nothing is sent when the map
// is not empty. Errors.Err turns the map into an *apiclient.Error of kind
// Validation so callers can handle client and server failures the same way.
//
//	errs := forms.NewValidator(loc).Registration(f)
//	if err := errs.Err(); err != nil {
//	    return err
//	}
//	msg, err := sess.Register(ctx, f.Request())
package forms
