// Command slaccbot is the Cheesecake workspace bot. It greets the
// configured channel on startup, walks users through an onboarding
// checklist kept in sync with message edits, nudges messages that trip
// the moderation filter, and answers the /message-count command.
//
// Events arrive over Slack Socket Mode. A small HTTP server serves
// health endpoints and a webhook fallback for the slash command.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slaccbot/internal/bot"
	"slaccbot/internal/config"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	// Local development keeps tokens in a .env file next to the binary.
	_ = godotenv.Load()

	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, "slaccbot:", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel)
	logger.Info("starting slaccbot",
		"version", version,
		"listen_addr", cfg.ListenAddr,
		"greeting_channel", cfg.Channel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	b := bot.New(bot.Config{
		BotToken:      cfg.BotToken,
		AppToken:      cfg.AppToken,
		SigningSecret: cfg.SigningSecret,
		Channel:       cfg.Channel,
		Logger:        logger,
		Debug:         cfg.Debug,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":"%s"}`, version)
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !b.IsConnected() {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"not_ready","reason":"socket_mode_disconnected"}`)
			return
		}
		fmt.Fprintf(w, `{"status":"ok"}`)
	})
	mux.HandleFunc("/slack/message-count", b.HandleMessageCount)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("starting HTTP server", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	go func() {
		if err := b.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Socket Mode bot stopped", "error", err)
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	logger.Info("shutting down slaccbot")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func init() {
	if v := os.Getenv("VERSION"); v != "" {
		version = v
	}
}
