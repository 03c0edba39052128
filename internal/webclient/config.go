package webclient

import "time"

type Config struct {
	// Timeout bounds a single request end to end, redirects included.
	Timeout time.Duration

	// UserAgent is sent on every request when non-empty.
	UserAgent string
}

// DefaultConfig returns the webclient defaults used by the API server.
func DefaultConfig() *Config {
	return &Config{
		Timeout:   10 * time.Second,
		UserAgent: "DevBrowser-Companion/1.0",
	}
}
