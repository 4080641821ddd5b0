package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bilingual-quotes/internal/common/pagination"
	"bilingual-quotes/internal/config"
	pgRepo "bilingual-quotes/internal/infra/adapter/persistence/postgres"
	"bilingual-quotes/internal/infra/db"
	"bilingual-quotes/internal/infra/translator"
	"bilingual-quotes/internal/observability/logging"
	"bilingual-quotes/internal/observability/tracing"
	"bilingual-quotes/internal/resilience/circuitbreaker"
	"bilingual-quotes/internal/usecase/search"

	hhttp "bilingual-quotes/internal/handler/http"
	hquote "bilingual-quotes/internal/handler/http/quote"
	"bilingual-quotes/internal/handler/http/requestid"
)

const serviceName = "bilingual-quotes-api"

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load server configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer := initTracing(ctx, logger, serverCfg.Version)
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shut down tracing", slog.Any("error", err))
		}
	}()

	database := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, database, serverCfg)
	runServer(ctx, cancel, logger, components, serverCfg)
}

// initTracing installs the trace propagator and, when enabled, the OTLP exporter.
func initTracing(ctx context.Context, logger *slog.Logger, version string) *tracing.Provider {
	cfg, err := config.LoadTracingConfig(serviceName)
	if err != nil {
		logger.Error("failed to load tracing configuration", slog.Any("error", err))
		os.Exit(1)
	}
	provider, err := tracing.Setup(ctx, cfg, version)
	if err != nil {
		logger.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("tracing configured",
		slog.Bool("enabled", cfg.Enabled),
		slog.Float64("sampling_rate", cfg.SamplingRate))
	return provider
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(ctx context.Context, logger *slog.Logger) *sql.DB {
	database, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initTranslator builds the query translator. A nil client means queries are
// searched only as typed.
func initTranslator(logger *slog.Logger) translator.Client {
	cfg, err := config.LoadTranslatorConfig()
	if err != nil {
		logger.Error("failed to load translator configuration", slog.Any("error", err))
		os.Exit(1)
	}

	client, err := translator.New(cfg)
	if errors.Is(err, translator.ErrDisabled) {
		logger.Warn("query translation is disabled, searches will not be expanded")
		return nil
	}
	if err != nil {
		logger.Error("failed to create translator", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("query translation enabled",
		slog.String("provider", client.Name()),
		slog.Duration("timeout", cfg.Timeout),
		slog.Float64("rate_per_sec", cfg.RatePerSecond))
	return client
}

// ServerComponents holds components needed for server operation.
type ServerComponents struct {
	Handler http.Handler
}

// setupServer wires stores, the search service, routes and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, serverCfg *config.ServerConfig) *ServerComponents {
	searchCfg, err := config.LoadSearchConfig()
	if err != nil {
		logger.Error("failed to load search configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var store pgRepo.DBTX = database
	health := &hhttp.HealthHandler{DB: database, Version: serverCfg.Version}
	if serverCfg.DBCircuitBreakerEnabled {
		guarded := circuitbreaker.NewDBCircuitBreaker(database)
		store = guarded
		health.DB = guarded
		logger.Info("database circuit breaker enabled")
	}

	client := initTranslator(logger)
	var expander search.Translator
	if client != nil {
		expander = client
		health.Translator = client
	}

	svc := search.NewService(
		pgRepo.NewQuoteRepo(store),
		pgRepo.NewTranslationLinkRepo(store),
		expander,
		search.Options{
			OverfetchFactor:  searchCfg.OverfetchFactor,
			TranslateTimeout: searchCfg.TranslateTimeout,
			ListScanBatch:    searchCfg.ListScanBatch,
		},
	)

	var searchLimit func(http.Handler) http.Handler
	if serverCfg.SearchRateLimited() {
		searchLimit = hhttp.NewRateLimiter(serverCfg.SearchRatePerSecond, serverCfg.SearchRateBurst).Limit
		logger.Info("search rate limiting enabled",
			slog.Float64("rate_per_sec", serverCfg.SearchRatePerSecond),
			slog.Int("burst", serverCfg.SearchRateBurst))
	} else {
		logger.Warn("search rate limiting is disabled")
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: health.DB})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	hquote.Register(mux, svc, searchCfg, pagination.LoadFromEnv(), searchLimit)

	return &ServerComponents{
		Handler: applyMiddleware(logger, mux, serverCfg.MaxBodyBytes),
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order, outermost first: request id, recover, logging, body limit, metrics, tracing.
func applyMiddleware(logger *slog.Logger, handler http.Handler, maxBodyBytes int64) http.Handler {
	chain := tracing.Middleware(handler)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(maxBodyBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, components *ServerComponents, cfg *config.ServerConfig) {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	// In-flight searches see cancellation only after Shutdown has drained them.
	cancel()
	logger.Info("server stopped")
}
