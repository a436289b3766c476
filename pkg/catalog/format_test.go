package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
)

func TestFormatter_Price(t *testing.T) {
	t.Parallel()

	got := catalog.FormatPrice(12.5)
	assert.Contains(t, got, "¥")
	assert.Contains(t, got, "12.50")

	usd := catalog.NewFormatter(i18n.Default().Localizer("en"), catalog.WithCurrency(currency.USD))
	assert.Contains(t, usd.Price(3), "$")
	assert.Contains(t, usd.Price(3), "3.00")
}

func TestFormatter_Date(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 1, 9, 30, 5, 0, time.UTC)

	zh := catalog.NewFormatter(i18n.Default().Localizer("zh"), catalog.WithTimeZone(time.UTC))
	assert.Equal(t, "2024/3/1 09:30:05", zh.Date(at))
	assert.Equal(t, "未知", zh.Date(time.Time{}))

	en := catalog.NewFormatter(i18n.Default().Localizer("en"), catalog.WithTimeZone(time.UTC))
	assert.Equal(t, "3/1/2024, 9:30:05 AM", en.Date(at))
	assert.Equal(t, "Unknown", en.Date(time.Time{}))

	assert.Equal(t, "未知", catalog.FormatDate(time.Time{}))
}
