package i18n

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"regexp"
	"slices"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales/*.yaml
var builtin embed.FS

// Translator resolves dotted message keys for a set of languages.
// It is safe for concurrent use.
type Translator struct {
	mu            sync.RWMutex
	catalogs      map[string]map[string]string
	defaultLang   string
	fallbackToKey bool
	matcher       language.Matcher
	langs         []string
}

// New builds a translator from the built-in catalogs plus any sources passed
// through options. Later sources override earlier keys.
func New(opts ...Option) (*Translator, error) {
	t := &Translator{
		catalogs:      make(map[string]map[string]string),
		defaultLang:   "en",
		fallbackToKey: true,
	}

	if err := t.loadFS(builtin, "locales"); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	if len(t.catalogs) == 0 {
		return nil, ErrNoLanguages
	}
	t.rebuildMatcher()
	return t, nil
}

var defaultTranslator = sync.OnceValue(func() *Translator {
	t, err := New()
	if err != nil {
		panic("i18n: built-in catalogs are invalid: " + err.Error())
	}
	return t
})

// Default returns a shared translator backed by the built-in catalogs.
func Default() *Translator {
	return defaultTranslator()
}

// Languages lists supported languages, default first.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.langs)
}

// Match returns the supported language closest to the given BCP 47 tag or
// Accept-Language value, falling back to the default language.
func (t *Translator) Match(lang string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.catalogs[lang]; ok {
		return lang
	}
	if lang == "" {
		return t.defaultLang
	}
	_, idx := language.MatchStrings(t.matcher, lang)
	if idx < 0 || idx >= len(t.langs) {
		return t.defaultLang
	}
	return t.langs[idx]
}

// Has reports whether key exists for lang.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.catalogs[lang][key]
	return ok
}

// T translates key into lang, substituting "%{name}" placeholders from args
// given as name, value pairs. Missing keys fall back to the default language,
// then to the key itself (unless disabled with WithFallbackToKey(false)).
//
//	// "validation.username_min": "Username must be at least %{min} characters"
//	msg := t.T("en", "validation.username_min", "min", "3")
func (t *Translator) T(lang, key string, args ...string) string {
	lang = t.Match(lang)

	t.mu.RLock()
	tmpl, ok := t.catalogs[lang][key]
	if !ok {
		tmpl, ok = t.catalogs[t.defaultLang][key]
	}
	fallback := t.fallbackToKey
	t.mu.RUnlock()

	if !ok {
		if !fallback {
			return ""
		}
		tmpl = key
	}
	return substitute(tmpl, args)
}

// Localizer binds the translator to one language.
func (t *Translator) Localizer(lang string) Localizer {
	return Localizer{t: t, lang: t.Match(lang)}
}

func (t *Translator) merge(catalogs map[string]map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for lang, messages := range catalogs {
		dst, ok := t.catalogs[lang]
		if !ok {
			dst = make(map[string]string, len(messages))
			t.catalogs[lang] = dst
		}
		for k, v := range messages {
			dst[k] = v
		}
	}
}

func (t *Translator) loadFS(fsys fs.FS, dir string) error {
	files, err := fs.Glob(fsys, dir+"/*.yaml")
	if err != nil {
		return err
	}
	for _, name := range files {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return errors.Join(ErrFailedToReadFile, err)
		}
		catalogs, err := ParseYAML(content)
		if err != nil {
			return err
		}
		t.merge(catalogs)
	}
	return nil
}

func (t *Translator) loadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}
	catalogs, err := ParseYAML(content)
	if err != nil {
		return err
	}
	t.merge(catalogs)
	return nil
}

func (t *Translator) rebuildMatcher() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.catalogs[t.defaultLang]; !ok {
		for lang := range t.catalogs {
			t.defaultLang = lang
			break
		}
	}

	langs := []string{t.defaultLang}
	for lang := range t.catalogs {
		if lang != t.defaultLang {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs[1:])

	tags := make([]language.Tag, len(langs))
	for i, lang := range langs {
		tags[i] = language.Make(lang)
	}
	t.langs = langs
	t.matcher = language.NewMatcher(tags)
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
