// Package main is the entry point for the conversation API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ostazi/chat-core/internal/alert"
	"github.com/ostazi/chat-core/internal/config"
	"github.com/ostazi/chat-core/internal/directory"
	"github.com/ostazi/chat-core/internal/handler"
	"github.com/ostazi/chat-core/internal/middleware"
	"github.com/ostazi/chat-core/internal/model"
	"github.com/ostazi/chat-core/internal/responder"
	"github.com/ostazi/chat-core/internal/session"
	"github.com/ostazi/chat-core/internal/store"
	"github.com/ostazi/chat-core/pkg/logger"
	"github.com/ostazi/chat-core/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting conversation API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "chat-core", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Open the durable counter store; fall back to memory-only when the
	// data directory is unusable.
	var counters store.CounterStore
	counters, err = store.NewSQLiteStore(ctx, cfg.CounterDBPath, log)
	if err != nil {
		log.Warn("counter store unavailable, unread counts will not survive restart", zap.Error(err))
		counters = store.NewMemoryStore()
	}
	defer counters.Close()

	// Alert dispatcher
	var notifier alert.Notifier
	if cfg.AlertsEnabled {
		notifier = alert.NewDesktopNotifier(log)
	} else {
		notifier = alert.NoopNotifier{}
	}

	// Counterparty directory
	dir := directory.New(directory.SeedEntries(), counters, log)
	if cfg.DirectoryBaseURL != "" {
		if err := dir.Prefetch(ctx, cfg.DirectoryBaseURL, nil); err != nil {
			log.Warn("directory prefetch failed, serving seed entries", zap.Error(err))
		}
	}

	// Responder gateway
	ai, err := responder.NewAIResponder(responder.Backend(cfg.ResponderBackend), responder.AIOptions{
		InferenceURL:     cfg.InferenceURL,
		InferenceContext: cfg.InferenceContext,
		InferenceTimeout: cfg.InferenceTimeout,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		AnthropicAPIKey:  cfg.AnthropicAPIKey,
		Model:            cfg.AIModel,
	})
	if err != nil {
		log.Error("failed to create AI responder", zap.Error(err))
		os.Exit(1)
	}
	gateway := responder.NewGateway(ai, responder.NewScriptedResponder(cfg.ScriptedDelay))

	// Session manager
	manager := session.NewManager(gateway, counters, notifier, dir, model.Locale(cfg.DefaultLocale), log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(counters)
	sessionHandler := handler.NewSessionHandler(manager, dir, log)
	counterpartyHandler := handler.NewCounterpartyHandler(dir)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Delete("/", sessionHandler.Close)
			r.Post("/channel", sessionHandler.SelectChannel)
			r.Put("/draft", sessionHandler.UpdateDraft)
			r.Post("/messages", sessionHandler.Send)
			r.Post("/back", sessionHandler.Back)
		})

		r.Get("/counterparties", counterpartyHandler.List)
		r.Post("/inbound", sessionHandler.Inbound)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
