package apiclient

import "time"

// Config holds transport settings loaded from the environment.
type Config struct {
	BaseURL   string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	UserAgent string        `env:"API_USER_AGENT" envDefault:"storefront-client/1.0"`
	Language  string        `env:"LANGUAGE" envDefault:"en"`

	// RateLimit caps outgoing requests per second; zero disables limiting.
	RateLimit float64 `env:"API_RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"API_RATE_BURST" envDefault:"10"`
}

// DefaultConfig returns the values used when no environment is present.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8080",
		Timeout:   15 * time.Second,
		UserAgent: "storefront-client/1.0",
		Language:  "en",
		RateBurst: 10,
	}
}
