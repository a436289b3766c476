package forms

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/session"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Field names used as Errors keys.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldPhone           = "phone"
	FieldAddress         = "address"
	FieldAgreement       = "agreement"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldPrice           = "price"
)

// Length limits.
const (
	UsernameMin = 3
	UsernameMax = 20
	PasswordMin = 6
	PasswordMax = 20
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Errors maps a field name to its message. An empty map means valid.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the invalid field names in sorted order.
func (e Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

// Err returns nil when valid, otherwise a KindValidation *apiclient.Error
// carrying the field messages.
func (e Errors) Err() error {
	return e.ErrIn(i18n.Localizer{})
}

// ErrIn is Err with the summary message in l's language.
func (e Errors) ErrIn(l i18n.Localizer) error {
	if e.Valid() {
		return nil
	}
	return apiclient.NewValidationError(l.T("error.validation"), e)
}

// RegistrationForm is the sign-up form.
type RegistrationForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Address         string
	Agreement       bool
}

// Request returns the API body for a valid form.
func (f RegistrationForm) Request() session.RegisterRequest {
	return session.RegisterRequest{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Phone:    strings.TrimSpace(f.Phone),
		Address:  strings.TrimSpace(f.Address),
	}
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Username string
	Password string
}

// ProfileForm holds the editable profile fields. Empty fields stay unchanged.
type ProfileForm struct {
	Email   string
	Phone   string
	Address string
}

// Request returns the API body for a valid form.
func (f ProfileForm) Request() session.ProfileUpdate {
	return session.ProfileUpdate{
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
	}
}

// ResetPasswordForm is the change-password form.
type ResetPasswordForm struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Request returns the API body for a valid form.
func (f ResetPasswordForm) Request() session.PasswordReset {
	return session.PasswordReset{
		CurrentPassword: f.CurrentPassword,
		NewPassword:     f.NewPassword,
	}
}

// Validator validates forms with messages in one language.
type Validator struct {
	loc i18n.Localizer
}

// NewValidator returns a Validator for l.
func NewValidator(l i18n.Localizer) Validator {
	return Validator{loc: l}
}

// Registration validates the sign-up form.
func (v Validator) Registration(f RegistrationForm) Errors {
	username := strings.TrimSpace(f.Username)
	email := strings.TrimSpace(f.Email)
	phone := strings.TrimSpace(f.Phone)

	rules := []validator.Rule{
		validator.Required(FieldUsername, username).WithKey("validation.username_required"),
		validator.When(username != "", validator.MinLen(FieldUsername, username, UsernameMin).WithKey("validation.username_min")),
		validator.When(username != "", validator.MaxLen(FieldUsername, username, UsernameMax).WithKey("validation.username_max")),
		validator.When(username != "", validator.Matches(FieldUsername, username, usernameRegex).WithKey("validation.username_format")),

		validator.Required(FieldEmail, email).WithKey("validation.email_required"),
		validator.When(email != "", validator.ValidEmail(FieldEmail, email).WithKey("validation.email_format")),

		validator.When(phone != "", validator.MobileCN(FieldPhone, phone).WithKey("validation.phone_format")),

		validator.Accepted(FieldAgreement, f.Agreement).WithKey("validation.agreement_required"),
	}
	rules = append(rules, v.passwordRules(FieldPassword, f.Password)...)
	rules = append(rules, confirmRules(f.Password, f.ConfirmPassword)...)

	return v.apply(rules...)
}

// Login validates the sign-in form.
func (v Validator) Login(f LoginForm) Errors {
	return v.apply(
		validator.Required(FieldUsername, f.Username).WithKey("validation.username_required"),
		validator.Required(FieldPassword, f.Password).WithKey("validation.password_required"),
	)
}

// Profile validates the profile form. Every field is optional.
func (v Validator) Profile(f ProfileForm) Errors {
	email := strings.TrimSpace(f.Email)
	phone := strings.TrimSpace(f.Phone)
	return v.apply(
		validator.When(email != "", validator.ValidEmail(FieldEmail, email).WithKey("validation.email_format")),
		validator.When(phone != "", validator.MobileCN(FieldPhone, phone).WithKey("validation.phone_format")),
	)
}

// ResetPassword validates the change-password form.
func (v Validator) ResetPassword(f ResetPasswordForm) Errors {
	rules := []validator.Rule{
		validator.Required(FieldCurrentPassword, f.CurrentPassword).WithKey("validation.current_password_required"),
	}
	rules = append(rules, v.passwordRules(FieldNewPassword, f.NewPassword)...)
	rules = append(rules, confirmRules(f.NewPassword, f.ConfirmPassword)...)
	return v.apply(rules...)
}

// PriceRange validates list filter bounds.
func (v Validator) PriceRange(minPrice, maxPrice *float64) Errors {
	return v.apply(
		validator.Ordered(FieldPrice, minPrice, maxPrice).WithKey("validation.price_range"),
	)
}

func (v Validator) passwordRules(field, pw string) []validator.Rule {
	return []validator.Rule{
		validator.Required(field, pw).WithKey("validation.password_required"),
		validator.When(pw != "", validator.MinLen(field, pw, PasswordMin).WithKey("validation.password_min")),
		validator.When(pw != "", validator.MaxLen(field, pw, PasswordMax).WithKey("validation.password_max")),
	}
}

func confirmRules(pw, confirm string) []validator.Rule {
	return []validator.Rule{
		validator.Required(FieldConfirmPassword, confirm).WithKey("validation.confirm_required"),
		validator.When(confirm != "", validator.Equal(FieldConfirmPassword, confirm, pw).WithKey("validation.confirm_mismatch")),
	}
}

func (v Validator) apply(rules ...validator.Rule) Errors {
	errs := validator.ExtractValidationErrors(validator.Apply(rules...))
	if errs == nil {
		return Errors{}
	}
	return Errors(errs.Translate(v.loc))
}

// ValidateRegistration validates f with messages in the default language.
func ValidateRegistration(f RegistrationForm) Errors { return Validator{}.Registration(f) }

// ValidateLogin validates f with messages in the default language.
func ValidateLogin(f LoginForm) Errors { return Validator{}.Login(f) }

// ValidateProfile validates f with messages in the default language.
func ValidateProfile(f ProfileForm) Errors { return Validator{}.Profile(f) }

// ValidateResetPassword validates f with messages in the default language.
func ValidateResetPassword(f ResetPasswordForm) Errors { return Validator{}.ResetPassword(f) }
