package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danprtma/watchparty/internal/config"
	httpHandler "github.com/danprtma/watchparty/internal/delivery/http"
	"github.com/danprtma/watchparty/internal/delivery/ws"
	"github.com/danprtma/watchparty/internal/middleware"
)

func main() {
	// Load .env file (ignore error if not exists, e.g. in production)
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	setupLogging(cfg.LogLevel)

	// Initialize dependencies
	registry := ws.NewRegistry()
	relay := ws.NewRelay(registry, ws.Options{
		MaxMessageSize: cfg.MaxMessageSize,
		PongWait:       cfg.PongWait,
		PingPeriod:     cfg.PingPeriod,
	})
	handler := httpHandler.NewHandler(cfg, relay)

	apiLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAPI, int(cfg.RateLimitAPI)*2)
	wsLimiter := middleware.NewIPRateLimiter(cfg.RateLimitWS, int(cfg.RateLimitWS)*2)

	// Setup routes
	mux := http.NewServeMux()

	// WebSocket route with rate limiting
	mux.HandleFunc("GET /ws", middleware.RateLimitFunc(wsLimiter, handler.HandleWebSocket))

	// API routes with rate limiting
	mux.HandleFunc("GET /healthz", handler.HandleHealthz)
	mux.HandleFunc("GET /api/stats", middleware.RateLimitFunc(apiLimiter, handler.HandleStats))
	mux.HandleFunc("GET /api/rooms/{room}/invite.png", middleware.RateLimitFunc(apiLimiter, handler.HandleInviteQR))

	// Apply security headers middleware to all requests
	securedHandler := middleware.SecurityHeaders(mux)

	// Create server with timeouts. ReadTimeout stays unset so long-lived
	// websocket connections are not cut off.
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     securedHandler,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("watchparty relay running", "addr", "http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// setupLogging configures the default slog logger from the LOG_LEVEL
// setting. "silent" and "off" discard everything.
func setupLogging(level string) {
	if level == "silent" || level == "off" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}

	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
