package server

import (
	"github.com/devbrowser/backend/internal/analyzer"
	"github.com/devbrowser/backend/internal/logging"
	"github.com/devbrowser/backend/internal/webclient"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// StoragePath is the directory holding the SQLite database.
	StoragePath string

	// AllowedOrigins is the CORS allowlist; "*" allows any origin.
	AllowedOrigins []string

	// AnalyzerCfg tunes the URL analyzer; nil uses analyzer defaults.
	AnalyzerCfg *analyzer.Config

	// WebClient optionally overrides the HTTP backend used by the analyzer
	// and the page metadata fetcher. Tests inject dummies here.
	WebClient webclient.WebClient

	// Logger receives structured request and error logs.
	Logger logging.Logger
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":8080",
		StoragePath:    "~/.config/devbrowser",
		AllowedOrigins: []string{"*"},
	}
}
