package main

import (
	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// envPrefix is stripped from every variable, so API_BASE_URL is read from
// STOREFRONT_API_BASE_URL.
const envPrefix = "STOREFRONT_"

type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// MetricsFile, when set, receives the client metrics in the Prometheus
	// text format after every command.
	MetricsFile string `env:"METRICS_FILE"`

	API     apiclient.Config
	Session session.Config
	Redis   redis.Config
	HTTP    httpserver.Config
}
