package session

// Config holds session persistence settings.
type Config struct {
	// TokenKey is the storage key of the persisted token.
	TokenKey string `env:"SESSION_TOKEN_KEY" envDefault:"token"`

	// TokenFile overrides the default storage file of FileTokenStore.
	TokenFile string `env:"SESSION_TOKEN_FILE"`

	// Store selects the TokenStore: "file", "memory" or "redis".
	Store string `env:"SESSION_STORE" envDefault:"file"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		TokenKey: DefaultTokenKey,
		Store:    "file",
	}
}
