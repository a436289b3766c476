package validator_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Run("returns nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.Required("name", "Alice"),
			validator.MinLen("name", "Alice", 3),
		)
		assert.NoError(t, err)
	})

	t.Run("collects failures in order", func(t *testing.T) {
		err := validator.Apply(
			validator.Required("name", ""),
			validator.MinLen("name", "", 3),
			validator.ValidEmail("email", "bad"),
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validator.ErrValidationFailed))
		assert.True(t, validator.IsValidationError(err))

		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"name", "email"}, errs.Fields())
		require.Len(t, errs, 3)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "validation.required", errs[0].TranslationKey)
		assert.Equal(t, "must be at least 3 characters long", errs[1].Message)
		assert.Equal(t, "field is required", errs.Translate(i18n.Localizer{})["name"])
		assert.Contains(t, err.Error(), "email: must be a valid email address")
	})

	t.Run("extract ignores other errors", func(t *testing.T) {
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
		assert.False(t, validator.IsValidationError(nil))
	})
}

func TestWhen(t *testing.T) {
	assert.True(t, validator.When(false, validator.Required("phone", "")).Check())
	assert.False(t, validator.When(true, validator.Required("phone", "")).Check())
}

func TestStringRules_CountRunes(t *testing.T) {
	assert.True(t, validator.MinLen("name", "张三丰", 3).Check())
	assert.False(t, validator.MaxLen("name", "张三丰", 2).Check())
	assert.Equal(t, "2", validator.MaxLen("name", "", 2).Error.TranslationValues["max"])
}

func TestFormatRules(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"alice@example.com", true},
		{"a.b+c@mail.example.org", true},
		{"", false},
		{"alice", false},
		{"alice@localhost", false},
		{"alice@.com", false},
		{"Alice <alice@example.com>", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, validator.ValidEmail("email", tt.value).Check(), tt.value)
	}

	assert.True(t, validator.MobileCN("phone", "13912345678").Check())
	assert.False(t, validator.MobileCN("phone", "12912345678").Check())
	assert.False(t, validator.MobileCN("phone", "1391234567").Check())

	re := regexp.MustCompile(`^[a-z]+$`)
	assert.True(t, validator.Matches("slug", "abc", re).Check())
	assert.False(t, validator.Matches("slug", "ab1", re).Check())
}

func TestComparableAndRangeRules(t *testing.T) {
	assert.True(t, validator.Equal("confirm", "a", "a").Check())
	assert.False(t, validator.Equal("confirm", "a", "b").Check())
	assert.False(t, validator.Accepted("terms", false).Check())

	lo, hi := 5.0, 3.0
	assert.False(t, validator.Ordered("price", &lo, &hi).Check())
	assert.True(t, validator.Ordered[float64]("price", nil, &hi).Check())
}

func TestValidationErrors_Translate(t *testing.T) {
	err := validator.Apply(
		validator.Required("username", "").WithKey("validation.username_required"),
		validator.MinLen("username", "", 3).WithKey("validation.username_min"),
		validator.MinLen("password", "abc", 6).WithKey("validation.password_min"),
		validator.Required("custom", "").WithKey("validation.not_in_catalog").WithMessage("custom message"),
	)
	errs := validator.ExtractValidationErrors(err)

	assert.Equal(t, map[string]string{
		"username": "Please enter a username",
		"password": "Password must be at least 6 characters",
		"custom":   "custom message",
	}, errs.Translate(i18n.Localizer{}))

	assert.Equal(t, "密码至少6个字符", errs.Translate(i18n.Default().Localizer("zh"))["password"])
}
