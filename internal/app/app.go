package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	llmanthropic "github.com/heartmarshall/wordlens/internal/adapter/llm/anthropic"
	llmopenai "github.com/heartmarshall/wordlens/internal/adapter/llm/openai"
	"github.com/heartmarshall/wordlens/internal/adapter/provider/dictapi"
	"github.com/heartmarshall/wordlens/internal/adapter/provider/udparse"
	"github.com/heartmarshall/wordlens/internal/config"
	"github.com/heartmarshall/wordlens/internal/llm"
	"github.com/heartmarshall/wordlens/internal/service/lemma"
	"github.com/heartmarshall/wordlens/internal/service/lookup"
	"github.com/heartmarshall/wordlens/internal/service/sense"
	"github.com/heartmarshall/wordlens/internal/transport/middleware"
	"github.com/heartmarshall/wordlens/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, builds the
// lookup pipeline, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting wordlens",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.Model),
	)

	svc, parser, err := BuildLookupService(cfg, logger)
	if err != nil {
		return err
	}

	// Warm the parser before first traffic so the first lookup does not pay
	// the model cold-start.
	if parser != nil && cfg.Parser.Preload {
		go parser.Preload(ctx)
	}

	return serveHTTP(ctx, cfg.Server, svc, logger)
}

// BuildLookupService wires the pipeline from configuration. The returned
// parser client is nil when the parser path is disabled.
func BuildLookupService(cfg *config.Config, logger *slog.Logger) (*lookup.Service, *udparse.Client, error) {
	model, err := newModelClient(cfg.LLM, logger)
	if err != nil {
		return nil, nil, err
	}

	// The extractor takes a nil parser when the parser path is disabled; a
	// typed nil pointer would defeat its internal nil check.
	var parser *udparse.Client
	var extractor *lemma.Service
	if cfg.Parser.BaseURL != "" {
		parser = udparse.NewClient(cfg.Parser.BaseURL, logger)
		extractor = lemma.NewService(logger, parser)
	} else {
		extractor = lemma.NewService(logger, nil)
	}

	selector := sense.NewService(logger)
	dict := dictapi.NewClient(cfg.Dictionary.BaseURL, logger)

	svc, err := lookup.NewService(logger, extractor, selector, dict, model)
	if err != nil {
		return nil, nil, err
	}
	return svc, parser, nil
}

func newModelClient(cfg config.LLMConfig, logger *slog.Logger) (llm.Client, error) {
	cost := llm.DefaultCostTable()
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return llmopenai.NewClient(cfg.APIKey, cfg.Model, cost, logger), nil
	case "anthropic":
		return llmanthropic.NewClient(cfg.APIKey, cfg.Model, cost, logger), nil
	default:
		return nil, fmt.Errorf("app: unknown llm provider %q", cfg.Provider)
	}
}

func serveHTTP(ctx context.Context, cfg config.ServerConfig, svc *lookup.Service, logger *slog.Logger) error {
	lookupHandler := rest.NewLookupHandler(svc, logger)
	healthHandler := rest.NewHealthHandler(BuildVersion())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/lookup", lookupHandler.Lookup)
	mux.HandleFunc("GET /healthz", healthHandler.Health)

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.RateLimitPerMinute))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      middleware.Chain(mws...)(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
