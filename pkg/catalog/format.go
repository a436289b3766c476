package catalog

import (
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/storefront/pkg/i18n"
)

var dateLayouts = map[string]string{
	"zh": "2006/1/2 15:04:05",
	"en": "1/2/2006, 3:04:05 PM",
}

// Formatter renders prices and dates for one language.
type Formatter struct {
	loc     i18n.Localizer
	printer *message.Printer
	unit    currency.Unit
	zone    *time.Location
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithCurrency overrides the currency, CNY by default.
func WithCurrency(unit currency.Unit) FormatterOption {
	return func(f *Formatter) {
		f.unit = unit
	}
}

// WithTimeZone sets the zone dates are shown in, time.Local by default.
func WithTimeZone(zone *time.Location) FormatterOption {
	return func(f *Formatter) {
		if zone != nil {
			f.zone = zone
		}
	}
}

// NewFormatter creates a Formatter for the localizer's language.
func NewFormatter(loc i18n.Localizer, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		loc:     loc,
		printer: message.NewPrinter(language.Make(loc.Lang())),
		unit:    currency.CNY,
		zone:    time.Local,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Price formats an amount with the currency symbol and the currency's
// standard number of decimals.
func (f *Formatter) Price(amount float64) string {
	return f.printer.Sprint(currency.NarrowSymbol(f.unit.Amount(amount)))
}

// Date formats t, or returns the localized "unknown" text for the zero time.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return f.loc.T("catalog.unknown_date")
	}
	return t.In(f.zone).Format(f.dateLayout())
}

func (f *Formatter) dateLayout() string {
	base, _, _ := strings.Cut(f.loc.Lang(), "-")
	if layout, ok := dateLayouts[base]; ok {
		return layout
	}
	return time.DateTime
}

// FormatPrice formats amount as CNY in Chinese.
func FormatPrice(amount float64) string {
	return NewFormatter(i18n.Default().Localizer("zh")).Price(amount)
}

// FormatDate formats t in Chinese in the local zone.
func FormatDate(t time.Time) string {
	return NewFormatter(i18n.Default().Localizer("zh")).Date(t)
}
