package analyzer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devbrowser/backend/internal/analyzer"
	"github.com/devbrowser/backend/internal/testutil"
	"github.com/devbrowser/backend/internal/webclient"
)

func newAnalyzer(t *testing.T, wc webclient.WebClient) *analyzer.DefaultAnalyzer {
	t.Helper()
	a, err := analyzer.NewDefaultAnalyzer(nil, wc, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewDefaultAnalyzer: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func headerSet() http.Header {
	h := http.Header{}
	h.Set("Strict-Transport-Security", "max-age=63072000")
	h.Set("Content-Security-Policy", "default-src 'self'")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("Permissions-Policy", "geolocation=()")
	return h
}

// ─── Construction ──────────────────────────────────────────────────────

func TestNewDefaultAnalyzer_NilLogger(t *testing.T) {
	t.Parallel()

	if _, err := analyzer.NewDefaultAnalyzer(nil, &testutil.DummyWebClient{}, nil); err == nil {
		t.Error("expected error for nil logger")
	}
}

// ─── URL normalization through Analyze ─────────────────────────────────

func TestAnalyze_SchemePrepended(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{Headers: headerSet()}
	a := newAnalyzer(t, wc)

	res := a.Analyze(context.Background(), "example.com")

	if res.URL != "https://example.com" {
		t.Errorf("expected normalized url https://example.com, got %q", res.URL)
	}
	if !res.HTTPS {
		t.Error("expected https true for bare hostname")
	}
	urls := wc.RequestedURLs()
	if len(urls) != 1 || urls[0] != "https://example.com" {
		t.Errorf("expected probe of https://example.com, got %v", urls)
	}
}

func TestAnalyze_HTTPSchemeKept(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{Headers: headerSet()}
	a := newAnalyzer(t, wc)

	res := a.Analyze(context.Background(), "http://example.com")

	if res.HTTPS {
		t.Error("expected https false for explicit http url")
	}
	if res.URL != "http://example.com" {
		t.Errorf("unexpected normalized url: %q", res.URL)
	}
}

// ─── Header probing ────────────────────────────────────────────────────

func TestAnalyze_AllHeadersPresent(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{Headers: headerSet()}
	a := newAnalyzer(t, wc)

	res := a.Analyze(context.Background(), "example.com")

	if res.SecurityScore != 80 {
		t.Errorf("security score: expected 80, got %d", res.SecurityScore)
	}
	if res.PrivacyScore != 70 {
		t.Errorf("privacy score: expected 70, got %d", res.PrivacyScore)
	}
	if got := res.SecurityHeaders["X-Frame-Options"]; got != "DENY" {
		t.Errorf("X-Frame-Options: expected DENY, got %q", got)
	}
	if res.SSLInfo != nil {
		t.Errorf("ssl info must be nil, got %v", res.SSLInfo)
	}
	if res.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
}

func TestAnalyze_AbsentHeadersMarkedMissing(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Set("Content-Security-Policy", "default-src 'none'")
	wc := &testutil.DummyWebClient{Headers: h}
	a := newAnalyzer(t, wc)

	res := a.Analyze(context.Background(), "example.com")

	if got := res.SecurityHeaders["Content-Security-Policy"]; got != "default-src 'none'" {
		t.Errorf("CSP: expected value, got %q", got)
	}
	for _, name := range []string{
		"Strict-Transport-Security",
		"X-Frame-Options",
		"X-Content-Type-Options",
		"Referrer-Policy",
		"Permissions-Policy",
	} {
		if got := res.SecurityHeaders[name]; got != "Missing" {
			t.Errorf("%s: expected Missing, got %q", name, got)
		}
	}
}

func TestAnalyze_FetchFailure(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{FailAll: true}
	a := newAnalyzer(t, wc)

	res := a.Analyze(context.Background(), "example.com")

	want := map[string]string{"error": "Could not fetch headers"}
	if len(res.SecurityHeaders) != 1 || res.SecurityHeaders["error"] != want["error"] {
		t.Errorf("expected exactly %v, got %v", want, res.SecurityHeaders)
	}
	if res.SecurityScore != 30 {
		t.Errorf("security score after failed https probe: expected 30, got %d", res.SecurityScore)
	}
	if len(res.Recommendations) != 6 {
		t.Errorf("expected 6 header failure recommendations, got %v", res.Recommendations)
	}
}

// ─── Wire shape ────────────────────────────────────────────────────────

func TestAnalyze_JSONShape(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{Headers: headerSet()}
	a := newAnalyzer(t, wc)

	raw, err := json.Marshal(a.Analyze(context.Background(), "example.com"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"url", "https", "security_headers", "ssl_info",
		"privacy_score", "security_score", "recommendations", "timestamp",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in wire format", key)
		}
	}
	if len(m) != 8 {
		t.Errorf("expected exactly 8 keys, got %d: %v", len(m), m)
	}
	if v, ok := m["ssl_info"]; !ok || v != nil {
		t.Errorf("ssl_info must serialize as null, got %v", v)
	}
}

// ─── Against a real HTTP server ────────────────────────────────────────

func TestAnalyze_RealServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, vals := range headerSet() {
			for _, v := range vals {
				w.Header().Add(name, v)
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	wc, err := webclient.NewNetHTTPClient(nil, &testutil.DummyLogger{}, srv.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	a := newAnalyzer(t, wc)

	res := a.Analyze(context.Background(), srv.URL)

	if res.HTTPS {
		t.Error("httptest server is plain http")
	}
	// All six headers pass but the scheme check fails.
	if res.SecurityScore != 50 {
		t.Errorf("security score: expected 50, got %d", res.SecurityScore)
	}
	if res.PrivacyScore != 50 {
		t.Errorf("privacy score: expected 50, got %d", res.PrivacyScore)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0] != "Site does not use HTTPS - traffic is not encrypted" {
		t.Errorf("unexpected recommendations: %v", res.Recommendations)
	}
}
