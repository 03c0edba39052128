// Package server wires the HTTP API together: persistence for tabs,
// bookmarks and browsing history, plus the URL security analyzer, all
// exposed under /api for the browser extension to call.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	_ "modernc.org/sqlite"

	_ "github.com/devbrowser/backend/docs/swagger"
	"github.com/devbrowser/backend/internal/analyzer"
	"github.com/devbrowser/backend/internal/logging"
	"github.com/devbrowser/backend/internal/pagemeta"
	"github.com/devbrowser/backend/internal/store"
	"github.com/devbrowser/backend/internal/webclient"
)

const (
	dbFileName     = "devbrowser.db"
	maxBatchURLs   = 25
	metaFetchLimit = 5 * time.Second
)

// Server is the DevBrowser companion backend. Create one with NewServer
// and serve it via HTTPServer().
type Server struct {
	cfg      Config
	router   chi.Router
	logger   logging.Logger
	db       *sql.DB
	store    *store.Store
	analyzer analyzer.Analyzer
	wc       webclient.WebClient
	upgrader websocket.Upgrader
}

// NewServer opens (or creates) the SQLite database under cfg.StoragePath,
// builds the analyzer and registers all routes.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger must not be nil")
	}
	def := DefaultConfig()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = def.StoragePath
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = def.AllowedOrigins
	}

	dir, err := expandPath(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("resolve storage path: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	st, err := store.NewStore(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	wc := cfg.WebClient
	if wc == nil {
		client, err := webclient.NewNetHTTPClient(nil, cfg.Logger, nil)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("init webclient: %w", err)
		}
		wc = client
	}

	an, err := analyzer.NewDefaultAnalyzer(cfg.AnalyzerCfg, wc, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init analyzer: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		logger:   cfg.Logger.With(logging.Field{Key: "component", Value: "server"}),
		db:       db,
		store:    st,
		analyzer: an,
		wc:       wc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s, nil
}

// HTTPServer returns an http.Server bound to the configured listen address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Close releases the analyzer, its web client and the database.
func (s *Server) Close() error {
	var firstErr error
	if err := s.analyzer.Close(); err != nil {
		firstErr = err
	}
	if err := s.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("request",
		logging.Field{Key: "method", Value: r.Method},
		logging.Field{Key: "path", Value: r.URL.Path},
		logging.Field{Key: "remote", Value: r.RemoteAddr},
	)
	s.router.ServeHTTP(w, r)
}

// ─── Routing ───────────────────────────────────────────────────────────

func (s *Server) routes() {
	s.router.Use(s.corsMiddleware)

	s.router.Get("/swagger/*", httpSwagger.WrapHandler)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleRoot)

		r.Get("/tabs", s.handleListTabs)
		r.Post("/tabs", s.handleCreateTab)
		r.Options("/tabs", s.handlePreflight)
		r.Delete("/tabs/{id}", s.handleDeleteTab)
		r.Options("/tabs/{id}", s.handlePreflight)

		r.Get("/bookmarks", s.handleListBookmarks)
		r.Post("/bookmarks", s.handleCreateBookmark)
		r.Options("/bookmarks", s.handlePreflight)
		r.Delete("/bookmarks/{id}", s.handleDeleteBookmark)
		r.Options("/bookmarks/{id}", s.handlePreflight)

		r.Get("/history", s.handleListHistory)
		r.Post("/history", s.handleAddHistory)
		r.Delete("/history", s.handleClearHistory)
		r.Options("/history", s.handlePreflight)
		r.Delete("/history/{id}", s.handleDeleteHistoryEntry)
		r.Options("/history/{id}", s.handlePreflight)

		r.Post("/analyze", s.handleAnalyze)
		r.Options("/analyze", s.handlePreflight)
		r.Post("/analyze/batch", s.handleAnalyzeBatch)
		r.Options("/analyze/batch", s.handlePreflight)
		r.Get("/ws/analyze", s.handleAnalyzeWS)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowOrigin(origin string) string {
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// ─── Root ──────────────────────────────────────────────────────────────

// handleRoot godoc
// @Summary API banner
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "DevBrowser API v1.0"})
}

// ─── Tabs ──────────────────────────────────────────────────────────────

// handleListTabs godoc
// @Summary List open tabs
// @Produce json
// @Success 200 {array} store.Tab
// @Router /tabs [get]
func (s *Server) handleListTabs(w http.ResponseWriter, r *http.Request) {
	tabs, err := s.store.ListTabs(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list tabs", err)
		return
	}
	s.writeJSON(w, http.StatusOK, tabs)
}

// handleCreateTab godoc
// @Summary Record an open tab
// @Accept json
// @Produce json
// @Param tab body CreateTabRequest true "Tab to record"
// @Success 201 {object} store.Tab
// @Failure 400 {object} ErrorResponse
// @Router /tabs [post]
func (s *Server) handleCreateTab(w http.ResponseWriter, r *http.Request) {
	var req CreateTabRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required", nil)
		return
	}

	title, favicon := s.enrichMeta(r.Context(), req.URL, req.Title, req.Favicon)
	tab, err := s.store.CreateTab(r.Context(), req.URL, title, favicon)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to create tab", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tab)
}

// handleDeleteTab godoc
// @Summary Delete a tab
// @Produce json
// @Param id path string true "Tab ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /tabs/{id} [delete]
func (s *Server) handleDeleteTab(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteTab(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrTabNotFound):
		s.writeError(w, http.StatusNotFound, "tab not found", nil)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, "failed to delete tab", err)
	default:
		s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Tab deleted"})
	}
}

// ─── Bookmarks ─────────────────────────────────────────────────────────

// handleListBookmarks godoc
// @Summary List bookmarks
// @Produce json
// @Success 200 {array} store.Bookmark
// @Router /bookmarks [get]
func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.store.ListBookmarks(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list bookmarks", err)
		return
	}
	s.writeJSON(w, http.StatusOK, bookmarks)
}

// handleCreateBookmark godoc
// @Summary Save a bookmark
// @Accept json
// @Produce json
// @Param bookmark body CreateBookmarkRequest true "Bookmark to save"
// @Success 201 {object} store.Bookmark
// @Failure 400 {object} ErrorResponse
// @Router /bookmarks [post]
func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	var req CreateBookmarkRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required", nil)
		return
	}

	title, favicon := s.enrichMeta(r.Context(), req.URL, req.Title, req.Favicon)
	bookmark, err := s.store.CreateBookmark(r.Context(), req.URL, title, favicon, req.Folder)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to create bookmark", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, bookmark)
}

// handleDeleteBookmark godoc
// @Summary Delete a bookmark
// @Produce json
// @Param id path string true "Bookmark ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /bookmarks/{id} [delete]
func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteBookmark(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrBookmarkNotFound):
		s.writeError(w, http.StatusNotFound, "bookmark not found", nil)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, "failed to delete bookmark", err)
	default:
		s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Bookmark deleted"})
	}
}

// ─── History ───────────────────────────────────────────────────────────

// handleListHistory godoc
// @Summary List browsing history, most recent first
// @Produce json
// @Param limit query int false "Maximum entries to return" default(100)
// @Success 200 {array} store.HistoryEntry
// @Router /history [get]
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	entries, err := s.store.ListHistory(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list history", err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// handleAddHistory godoc
// @Summary Record a page visit
// @Description Revisiting a URL bumps its visit count and timestamp instead of creating a duplicate entry.
// @Accept json
// @Produce json
// @Param visit body AddHistoryRequest true "Visit to record"
// @Success 200 {object} store.HistoryEntry
// @Failure 400 {object} ErrorResponse
// @Router /history [post]
func (s *Server) handleAddHistory(w http.ResponseWriter, r *http.Request) {
	var req AddHistoryRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required", nil)
		return
	}

	entry, err := s.store.RecordVisit(r.Context(), req.URL, req.Title, req.Favicon)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to record visit", err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

// handleDeleteHistoryEntry godoc
// @Summary Delete one history entry
// @Produce json
// @Param id path string true "History entry ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /history/{id} [delete]
func (s *Server) handleDeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteHistoryEntry(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrHistoryNotFound):
		s.writeError(w, http.StatusNotFound, "history entry not found", nil)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, "failed to delete history entry", err)
	default:
		s.writeJSON(w, http.StatusOK, MessageResponse{Message: "History entry deleted"})
	}
}

// handleClearHistory godoc
// @Summary Clear all browsing history
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /history [delete]
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearHistory(r.Context()); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to clear history", err)
		return
	}
	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "History cleared"})
}

// ─── Analyze ───────────────────────────────────────────────────────────

// handleAnalyze godoc
// @Summary Analyze the security posture of a URL
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "URL to analyze"
// @Success 200 {object} analyzer.Analysis
// @Failure 400 {object} ErrorResponse
// @Router /analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, s.analyzer.Analyze(r.Context(), req.URL))
}

// handleAnalyzeBatch godoc
// @Summary Analyze several URLs concurrently
// @Accept json
// @Produce json
// @Param request body AnalyzeBatchRequest true "URLs to analyze"
// @Success 200 {array} analyzer.Analysis
// @Failure 400 {object} ErrorResponse
// @Router /analyze/batch [post]
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeBatchRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.URLs) == 0 {
		s.writeError(w, http.StatusBadRequest, "urls are required", nil)
		return
	}
	if len(req.URLs) > maxBatchURLs {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d urls per batch", maxBatchURLs), nil)
		return
	}
	s.writeJSON(w, http.StatusOK, s.analyzer.AnalyzeBatch(r.Context(), req.URLs))
}

// handleAnalyzeWS streams analyses over a websocket: the client sends
// AnalyzeRequest messages and receives one analyzer.Analysis per request.
func (s *Server) handleAnalyzeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	for {
		var req AnalyzeRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read ended", logging.Field{Key: "error", Value: err.Error()})
			}
			return
		}
		if req.URL == "" {
			if err := conn.WriteJSON(ErrorResponse{Error: "url is required"}); err != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(s.analyzer.Analyze(r.Context(), req.URL)); err != nil {
			return
		}
	}
}

// ─── Helpers ───────────────────────────────────────────────────────────

// enrichMeta fills a missing title or favicon by fetching the page.
// Failures are ignored; the caller's values win when non-empty.
func (s *Server) enrichMeta(ctx context.Context, pageURL, title, favicon string) (string, string) {
	if title != "" && favicon != "" {
		return title, favicon
	}

	ctx, cancel := context.WithTimeout(ctx, metaFetchLimit)
	defer cancel()

	meta, err := pagemeta.Fetch(ctx, s.wc, pageURL)
	if err != nil {
		s.logger.Debug("page metadata fetch failed",
			logging.Field{Key: "url", Value: pageURL},
			logging.Field{Key: "error", Value: err.Error()},
		)
		return title, favicon
	}
	if title == "" {
		title = meta.Title
	}
	if favicon == "" {
		favicon = meta.Favicon
	}
	return title, favicon
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", logging.Field{Key: "error", Value: err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		s.logger.Error(msg, logging.Field{Key: "error", Value: err.Error()})
	}
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

// expandPath resolves a leading "~" to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
