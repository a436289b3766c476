package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/filter"
	"github.com/dmitrymomot/storefront/pkg/forms"
	"github.com/dmitrymomot/storefront/pkg/i18n"
)

func validRegistration() forms.RegistrationForm {
	return forms.RegistrationForm{
		Username:        "new_user",
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Agreement:       true,
	}
}

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*forms.RegistrationForm)
		want   forms.Errors
	}{
		{"valid", func(*forms.RegistrationForm) {}, forms.Errors{}},
		{"valid with phone", func(f *forms.RegistrationForm) { f.Phone = "13812345678" }, forms.Errors{}},
		{"missing username", func(f *forms.RegistrationForm) { f.Username = "  " }, forms.Errors{
			forms.FieldUsername: "Please enter a username",
		}},
		{"short username", func(f *forms.RegistrationForm) { f.Username = "ab" }, forms.Errors{
			forms.FieldUsername: "Username must be at least 3 characters",
		}},
		{"long username", func(f *forms.RegistrationForm) { f.Username = "abcdefghijklmnopqrstu" }, forms.Errors{
			forms.FieldUsername: "Username must be at most 20 characters",
		}},
		{"username format", func(f *forms.RegistrationForm) { f.Username = "bad name" }, forms.Errors{
			forms.FieldUsername: "Username may only contain letters, digits and underscores",
		}},
		{"bad email", func(f *forms.RegistrationForm) { f.Email = "nope@" }, forms.Errors{
			forms.FieldEmail: "Please enter a valid email address",
		}},
		{"short password", func(f *forms.RegistrationForm) { f.Password, f.ConfirmPassword = "12345", "12345" }, forms.Errors{
			forms.FieldPassword: "Password must be at least 6 characters",
		}},
		{"mismatch", func(f *forms.RegistrationForm) { f.ConfirmPassword = "secret2" }, forms.Errors{
			forms.FieldConfirmPassword: "Passwords do not match",
		}},
		{"bad phone", func(f *forms.RegistrationForm) { f.Phone = "12345" }, forms.Errors{
			forms.FieldPhone: "Please enter a valid mobile number",
		}},
		{"agreement", func(f *forms.RegistrationForm) { f.Agreement = false }, forms.Errors{
			forms.FieldAgreement: "Please read and accept the terms of service and privacy policy",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := validRegistration()
			tt.modify(&f)
			assert.Equal(t, tt.want, forms.ValidateRegistration(f))
		})
	}
}

func TestValidateRegistration_EmptyForm(t *testing.T) {
	t.Parallel()

	errs := forms.ValidateRegistration(forms.RegistrationForm{})
	assert.Equal(t, []string{
		forms.FieldAgreement,
		forms.FieldConfirmPassword,
		forms.FieldEmail,
		forms.FieldPassword,
		forms.FieldUsername,
	}, errs.Fields())
	assert.Equal(t, "Please enter a password", errs[forms.FieldPassword])
	assert.Equal(t, "Please confirm the password", errs[forms.FieldConfirmPassword])
}

func TestValidator_Localized(t *testing.T) {
	t.Parallel()

	v := forms.NewValidator(i18n.Default().Localizer("zh"))
	errs := v.Login(forms.LoginForm{})
	assert.Equal(t, forms.Errors{
		forms.FieldUsername: "请输入用户名",
		forms.FieldPassword: "请输入密码",
	}, errs)

	f := validRegistration()
	f.Username = "ab"
	assert.Equal(t, "用户名至少3个字符", v.Registration(f)[forms.FieldUsername])
}

func TestValidateProfileAndReset(t *testing.T) {
	t.Parallel()

	assert.True(t, forms.ValidateProfile(forms.ProfileForm{}).Valid())
	assert.Equal(t, forms.Errors{forms.FieldEmail: "Please enter a valid email address"},
		forms.ValidateProfile(forms.ProfileForm{Email: "Alice <alice@example.com>"}))

	errs := forms.ValidateResetPassword(forms.ResetPasswordForm{NewPassword: "abc", ConfirmPassword: "abd"})
	assert.Equal(t, forms.Errors{
		forms.FieldCurrentPassword: "Please enter the current password",
		forms.FieldNewPassword:     "Password must be at least 6 characters",
		forms.FieldConfirmPassword: "Passwords do not match",
	}, errs)

	assert.True(t, forms.ValidateResetPassword(forms.ResetPasswordForm{
		CurrentPassword: "11111", NewPassword: "222222", ConfirmPassword: "222222",
	}).Valid())
}

func TestValidator_PriceRange(t *testing.T) {
	t.Parallel()

	v := forms.NewValidator(i18n.Localizer{})
	assert.True(t, v.PriceRange(nil, filter.Price(5)).Valid())
	assert.True(t, v.PriceRange(filter.Price(5), filter.Price(5)).Valid())
	assert.Equal(t, forms.Errors{forms.FieldPrice: "Minimum price must not exceed maximum price"},
		v.PriceRange(filter.Price(10), filter.Price(5)))
}

func TestErrors_Err(t *testing.T) {
	t.Parallel()

	assert.NoError(t, forms.Errors{}.Err())

	err := forms.ValidateLogin(forms.LoginForm{Username: "Alice"}).Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrValidation)

	e, ok := apiclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, apiclient.KindValidation, e.Kind)
	assert.Equal(t, "Please correct the highlighted fields", e.Message)
	assert.Equal(t, map[string]string{forms.FieldPassword: "Please enter a password"}, e.Fields)
}

func TestRequests(t *testing.T) {
	t.Parallel()

	f := validRegistration()
	f.Username = " new_user "
	req := f.Request()
	assert.Equal(t, "new_user", req.Username)
	assert.Equal(t, "secret1", req.Password)

	reset := forms.ResetPasswordForm{CurrentPassword: "a", NewPassword: "b"}.Request()
	assert.Equal(t, "a", reset.CurrentPassword)
	assert.Equal(t, "b", reset.NewPassword)
}
