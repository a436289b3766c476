package i18n

// Localizer is a Translator bound to a single language.
// The zero value uses the built-in catalogs in the default language.
type Localizer struct {
	t    *Translator
	lang string
}

// Lang returns the bound language.
func (l Localizer) Lang() string {
	if l.lang == "" {
		return l.translator().Match("")
	}
	return l.lang
}

// T translates key into the bound language.
func (l Localizer) T(key string, args ...string) string {
	return l.translator().T(l.lang, key, args...)
}

func (l Localizer) translator() *Translator {
	if l.t == nil {
		return Default()
	}
	return l.t
}
