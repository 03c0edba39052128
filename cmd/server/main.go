// Command server starts the DevBrowser companion backend.
// Usage: go run ./cmd/server [flags]
// Flags default from the LISTEN_ADDR, STORAGE_PATH and CORS_ORIGINS
// environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/devbrowser/backend/internal/logging"
	"github.com/devbrowser/backend/internal/server"
)

func main() {
	def := server.DefaultConfig()

	listenAddr := flag.String("listen", envOr("LISTEN_ADDR", def.ListenAddr), "HTTP listen address")
	storagePath := flag.String("storage", envOr("STORAGE_PATH", def.StoragePath), "directory for the SQLite database")
	corsOrigins := flag.String("cors-origins", envOr("CORS_ORIGINS", "*"), "comma-separated CORS origin allowlist")
	flag.Parse()

	logger := logging.NewStdoutLogger("devbrowser")

	srv, err := server.NewServer(server.Config{
		ListenAddr:     *listenAddr,
		StoragePath:    *storagePath,
		AllowedOrigins: splitOrigins(*corsOrigins),
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer srv.Close()

	httpSrv := srv.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", logging.Field{Key: "addr", Value: *listenAddr})
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigCh:
		logger.Info("shutting down", logging.Field{Key: "signal", Value: sig.String()})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Error("shutdown", logging.Field{Key: "error", Value: err.Error()})
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
