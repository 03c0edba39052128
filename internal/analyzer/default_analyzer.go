package analyzer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/devbrowser/backend/internal/logging"
	"github.com/devbrowser/backend/internal/utils"
	"github.com/devbrowser/backend/internal/webclient"
)

// DefaultAnalyzer implements Analyzer: normalize the target, probe its
// response headers over the injected WebClient, score the result.
type DefaultAnalyzer struct {
	cfg    *Config
	wc     webclient.WebClient
	logger logging.Logger
}

// NewDefaultAnalyzer creates an analyzer. If wc is nil a net/http backed
// webclient is constructed with the configured fetch timeout.
func NewDefaultAnalyzer(cfg *Config, wc webclient.WebClient, logger logging.Logger) (*DefaultAnalyzer, error) {
	if logger == nil {
		return nil, errors.New("analyzer: nil logger provided")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	componentLogger := logger.With(logging.Field{Key: "component", Value: "analyzer"})

	if wc == nil {
		wcCfg := webclient.DefaultConfig()
		wcCfg.Timeout = cfg.FetchTimeout
		client, err := webclient.NewNetHTTPClient(wcCfg, componentLogger, nil)
		if err != nil {
			return nil, err
		}
		wc = client
	}

	return &DefaultAnalyzer{
		cfg:    cfg,
		wc:     wc,
		logger: componentLogger,
	}, nil
}

// Analyze runs a full probe of rawURL. It always returns a complete result;
// transport failures only degrade the security_headers map.
func (a *DefaultAnalyzer) Analyze(ctx context.Context, rawURL string) *Analysis {
	target, isHTTPS := utils.NormalizeTarget(rawURL)

	headers := a.fetchHeaders(ctx, target)
	securityScore, privacyScore, recommendations := Score(isHTTPS, headers)

	a.logger.Info("analyzed url",
		logging.Field{Key: "url", Value: target},
		logging.Field{Key: "security_score", Value: securityScore},
		logging.Field{Key: "privacy_score", Value: privacyScore})

	return &Analysis{
		URL:             target,
		HTTPS:           isHTTPS,
		SecurityHeaders: headers,
		SSLInfo:         nil, // reserved for certificate inspection
		PrivacyScore:    privacyScore,
		SecurityScore:   securityScore,
		Recommendations: recommendations,
		Timestamp:       time.Now().UTC(),
	}
}

// fetchHeaders issues a HEAD request (redirects followed) and extracts the
// probe set. Non-2xx statuses still count; only transport errors degrade
// the map to the error marker.
func (a *DefaultAnalyzer) fetchHeaders(ctx context.Context, target string) map[string]string {
	fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	resp, err := a.wc.Do(fetchCtx, &webclient.Request{Method: http.MethodHead, URL: target})
	if err != nil {
		a.logger.Warn("fetching headers failed",
			logging.Field{Key: "url", Value: target},
			logging.Field{Key: "error", Value: err.Error()})
		return map[string]string{"error": fetchErrorText}
	}

	out := make(map[string]string, len(securityHeaderNames))
	for _, name := range securityHeaderNames {
		if v := strings.TrimSpace(resp.Headers.Get(name)); v != "" {
			out[name] = v
		} else {
			out[name] = headerMissing
		}
	}
	return out
}

// Close releases the underlying webclient.
func (a *DefaultAnalyzer) Close() error {
	return a.wc.Close()
}

var _ Analyzer = (*DefaultAnalyzer)(nil)
