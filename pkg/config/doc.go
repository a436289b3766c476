// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag driven parsing and
// github.com/joho/godotenv for optional .env files:
//
//	type Config struct {
//		BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
//		Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
//	}
//
//	cfg, err := config.Load[Config](
//		config.WithPrefix("STOREFRONT_"),
//		config.WithDotEnv(".env"),
//		config.WithOptionalFiles(),
//	)
//
// Values already present in the process environment take precedence over
// values read from files. Every call parses afresh; callers that need a
// process-wide configuration keep the returned value themselves.
//
// Parsing failures wrap ErrParsingConfig, unreadable files wrap
// ErrReadingEnvFile; both can be matched with errors.Is.
package config
