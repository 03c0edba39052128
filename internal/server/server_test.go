package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/devbrowser/backend/internal/server"
	"github.com/devbrowser/backend/internal/testutil"
)

func secureHeaders() http.Header {
	h := http.Header{}
	h.Set("Strict-Transport-Security", "max-age=63072000")
	h.Set("Content-Security-Policy", "default-src 'self'")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("Permissions-Policy", "geolocation=()")
	return h
}

func newTestServer(t *testing.T, opts ...func(*server.Config)) *server.Server {
	t.Helper()

	cfg := server.DefaultConfig()
	cfg.StoragePath = t.TempDir()
	cfg.WebClient = &testutil.DummyWebClient{Headers: secureHeaders()}
	cfg.Logger = &testutil.DummyLogger{}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := server.NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

// ─── Root ──────────────────────────────────────────────────────────────

func TestServer_RootBanner(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var m map[string]any
	decodeJSON(t, rec, &m)
	if m["message"] != "DevBrowser API v1.0" {
		t.Errorf("unexpected banner: %v", m)
	}
}

// ─── CORS ──────────────────────────────────────────────────────────────

func TestServer_CORS_Wildcard(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/tabs", "")
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}
}

func TestServer_CORS_OriginAllowlist(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, func(cfg *server.Config) {
		cfg.AllowedOrigins = []string{"https://app.example"}
	})

	req := httptest.NewRequest("GET", "/api/tabs", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "https://app.example" {
		t.Errorf("expected allowed origin echoed, got %q", origin)
	}

	req = httptest.NewRequest("GET", "/api/tabs", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "" {
		t.Errorf("expected no CORS header for unlisted origin, got %q", origin)
	}
}

func TestServer_OptionsPreflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "OPTIONS", "/api/tabs", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected Allow-Methods header on OPTIONS")
	}
}

// ─── Tabs ──────────────────────────────────────────────────────────────

func TestServer_CreateTab(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/tabs", `{"url":"https://example.com","title":"Example","favicon":"https://example.com/f.ico"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var tab map[string]any
	decodeJSON(t, rec, &tab)
	if tab["url"] != "https://example.com" || tab["id"] == "" {
		t.Errorf("unexpected tab: %v", tab)
	}
}

func TestServer_CreateTab_MissingURL(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/tabs", `{"title":"no url"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestServer_CreateTab_InvalidJSON(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/tabs", `{invalid}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestServer_CreateTab_FaviconEnriched(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/tabs", `{"url":"https://example.com","title":"Example"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var tab map[string]any
	decodeJSON(t, rec, &tab)
	if tab["favicon"] != "https://example.com/favicon.ico" {
		t.Errorf("expected conventional favicon fallback, got %v", tab["favicon"])
	}
}

func TestServer_ListTabs(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	doJSON(t, s, "POST", "/api/tabs", `{"url":"https://a.example","title":"A","favicon":"x"}`)
	doJSON(t, s, "POST", "/api/tabs", `{"url":"https://b.example","title":"B","favicon":"x"}`)

	rec := doJSON(t, s, "GET", "/api/tabs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var tabs []map[string]any
	decodeJSON(t, rec, &tabs)
	if len(tabs) != 2 {
		t.Errorf("expected 2 tabs, got %d", len(tabs))
	}
}

func TestServer_DeleteTab(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/tabs", `{"url":"https://example.com","title":"T","favicon":"x"}`)
	var tab map[string]any
	decodeJSON(t, rec, &tab)

	rec = doJSON(t, s, "DELETE", "/api/tabs/"+tab["id"].(string), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, "DELETE", "/api/tabs/"+tab["id"].(string), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeat delete, got %d", rec.Code)
	}
}

// ─── Bookmarks ─────────────────────────────────────────────────────────

func TestServer_CreateBookmark_DefaultFolder(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/bookmarks", `{"url":"https://example.com","title":"Example","favicon":"x"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var b map[string]any
	decodeJSON(t, rec, &b)
	if b["folder"] != "Default" {
		t.Errorf("expected folder Default, got %v", b["folder"])
	}
}

func TestServer_DeleteBookmark_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "DELETE", "/api/bookmarks/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

// ─── History ───────────────────────────────────────────────────────────

func TestServer_History_RepeatVisitUpserts(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	doJSON(t, s, "POST", "/api/history", `{"url":"https://example.com","title":"Example"}`)
	rec := doJSON(t, s, "POST", "/api/history", `{"url":"https://example.com","title":"Example"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var e map[string]any
	decodeJSON(t, rec, &e)
	if e["visit_count"] != float64(2) {
		t.Errorf("expected visit_count 2, got %v", e["visit_count"])
	}

	rec = doJSON(t, s, "GET", "/api/history", "")
	var entries []map[string]any
	decodeJSON(t, rec, &entries)
	if len(entries) != 1 {
		t.Errorf("expected a single entry after repeat visit, got %d", len(entries))
	}
}

func TestServer_History_BadLimit(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/history?limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric limit, got %d", rec.Code)
	}
}

func TestServer_History_Clear(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	doJSON(t, s, "POST", "/api/history", `{"url":"https://example.com"}`)

	rec := doJSON(t, s, "DELETE", "/api/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, s, "GET", "/api/history", "")
	var entries []map[string]any
	decodeJSON(t, rec, &entries)
	if len(entries) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(entries))
	}
}

func TestServer_History_DeleteEntry_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "DELETE", "/api/history/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

// ─── Analyze ───────────────────────────────────────────────────────────

func TestServer_Analyze(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/analyze", `{"url":"example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var m map[string]any
	decodeJSON(t, rec, &m)

	for _, key := range []string{
		"url", "https", "security_headers", "ssl_info",
		"privacy_score", "security_score", "recommendations", "timestamp",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in analysis payload", key)
		}
	}
	if m["url"] != "https://example.com" {
		t.Errorf("unexpected url: %v", m["url"])
	}
	if v, ok := m["ssl_info"]; !ok || v != nil {
		t.Errorf("ssl_info must be null, got %v", v)
	}
	if m["security_score"] != float64(80) {
		t.Errorf("expected security_score 80, got %v", m["security_score"])
	}
}

func TestServer_Analyze_MissingURL(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/analyze", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestServer_AnalyzeBatch(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/analyze/batch", `{"urls":["a.example","b.example","c.example"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var results []map[string]any
	decodeJSON(t, rec, &results)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0]["url"] != "https://a.example" || results[2]["url"] != "https://c.example" {
		t.Errorf("results out of order: %v", results)
	}
}

func TestServer_AnalyzeBatch_Empty(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/analyze/batch", `{"urls":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty batch, got %d", rec.Code)
	}
}

func TestServer_AnalyzeBatch_TooMany(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	urls := make([]string, 26)
	for i := range urls {
		urls[i] = "example.com"
	}
	body, err := json.Marshal(map[string][]string{"urls": urls})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := doJSON(t, s, "POST", "/api/analyze/batch", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for oversized batch, got %d", rec.Code)
	}
}

// ─── Websocket ─────────────────────────────────────────────────────────

func TestServer_AnalyzeWebsocket(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/analyze"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := conn.WriteJSON(map[string]string{"url": "example.com"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var res map[string]any
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res["url"] != "https://example.com" {
		t.Errorf("unexpected analysis over websocket: %v", res)
	}

	// An empty url yields an error payload but keeps the stream open.
	if err := conn.WriteJSON(map[string]string{"url": ""}); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	var errRes map[string]any
	if err := conn.ReadJSON(&errRes); err != nil {
		t.Fatalf("read error payload: %v", err)
	}
	if errRes["error"] == "" || errRes["error"] == nil {
		t.Errorf("expected error payload for empty url, got %v", errRes)
	}

	if err := conn.WriteJSON(map[string]string{"url": "b.example"}); err != nil {
		t.Fatalf("write after error: %v", err)
	}
	var res2 map[string]any
	if err := conn.ReadJSON(&res2); err != nil {
		t.Fatalf("read after error: %v", err)
	}
	if res2["url"] != "https://b.example" {
		t.Errorf("stream did not continue after error payload: %v", res2)
	}
}
