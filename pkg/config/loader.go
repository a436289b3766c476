package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option tunes a single Load call.
type Option func(*loader)

type loader struct {
	prefix   string
	files    []string
	optional bool
	environ  map[string]string
}

// WithPrefix only considers variables starting with prefix; the prefix is
// stripped before matching `env` tags.
func WithPrefix(prefix string) Option {
	return func(l *loader) { l.prefix = prefix }
}

// WithDotEnv reads variables from the given files. Process environment wins
// over file values. Missing files are an error unless WithOptionalFiles is set.
func WithDotEnv(files ...string) Option {
	return func(l *loader) { l.files = append(l.files, files...) }
}

// WithOptionalFiles tolerates missing .env files.
func WithOptionalFiles() Option {
	return func(l *loader) { l.optional = true }
}

// WithEnviron replaces the process environment, mainly for tests.
func WithEnviron(vars map[string]string) Option {
	return func(l *loader) { l.environ = vars }
}

// Load parses environment variables into a new T based on its field tags.
//
// Example:
//
//	type APIConfig struct {
//		BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
//		Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
//	}
//
//	cfg, err := config.Load[APIConfig](config.WithPrefix("STOREFRONT_"))
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	vars, err := l.environment()
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      l.prefix,
		Environment: vars,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}

	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func (l *loader) environment() (map[string]string, error) {
	vars := l.environ
	if vars == nil {
		vars = make(map[string]string)
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				vars[k] = v
			}
		}
	}

	for _, file := range l.files {
		fileVars, err := godotenv.Read(file)
		if err != nil {
			if l.optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrReadingEnvFile, err)
		}
		for k, v := range fileVars {
			if _, exists := vars[k]; !exists {
				vars[k] = v
			}
		}
	}

	return vars, nil
}
