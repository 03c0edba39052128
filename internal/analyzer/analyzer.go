package analyzer

import (
	"context"
	"time"
)

// Analyzer produces a best-effort security/privacy report for a URL.
// Analysis never fails: transport problems degrade the header map instead
// of erroring, so every input yields a complete result.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) *Analysis

	AnalyzeBatch(ctx context.Context, rawURLs []string) []*Analysis

	Close() error
}

// Analysis is the wire-level result of a single probe. The field set and
// JSON names are a stable contract with the browser extension.
type Analysis struct {
	// URL is the normalized URL actually probed.
	URL string `json:"url"`

	// HTTPS reports whether the normalized scheme is https.
	HTTPS bool `json:"https"`

	// SecurityHeaders maps each probed header to its value or "Missing".
	// When the probe itself failed it contains only an "error" key.
	SecurityHeaders map[string]string `json:"security_headers"`

	// SSLInfo is reserved for certificate inspection and is always null.
	SSLInfo map[string]any `json:"ssl_info"`

	PrivacyScore  int `json:"privacy_score"`
	SecurityScore int `json:"security_score"`

	// Recommendations is ordered and never empty.
	Recommendations []string `json:"recommendations"`

	Timestamp time.Time `json:"timestamp"`
}

type Config struct {
	// FetchTimeout bounds the header probe for one URL.
	FetchTimeout time.Duration

	// MaxConcurrency bounds parallel probes during batch analysis.
	MaxConcurrency int
}

// DefaultConfig returns analyzer defaults.
func DefaultConfig() *Config {
	return &Config{
		FetchTimeout:   10 * time.Second,
		MaxConcurrency: 4,
	}
}
