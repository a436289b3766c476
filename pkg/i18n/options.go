package i18n

// Option configures a Translator.
type Option func(*Translator) error

// WithDefaultLanguage sets the language used when a requested language or key
// is unavailable.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) error {
		if lang != "" {
			t.defaultLang = lang
		}
		return nil
	}
}

// WithFallbackToKey controls whether T returns the key itself for unknown keys.
// Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) error {
		t.fallbackToKey = fallback
		return nil
	}
}

// WithCatalog merges an in-memory catalog (lang -> key -> text).
func WithCatalog(catalogs map[string]map[string]string) Option {
	return func(t *Translator) error {
		t.merge(catalogs)
		return nil
	}
}

// WithFile merges a YAML catalog file.
func WithFile(path string) Option {
	return func(t *Translator) error {
		return t.loadFile(path)
	}
}
