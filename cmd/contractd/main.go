// Command contractd serves the contract risk analysis API over HTTP and
// gRPC, consumes critical-risk events into alerts and scans contract
// deadlines in the background.
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

	"golang.org/x/sync/errgroup"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/usecase"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
	"github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/config"
	kafkainfra "github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/kafka"
	"github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/llm"
	"github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/metrics"
	"github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/postgres"
	grpcpresentation "github.com/Luyzz22/contract-analyzer-backend/internal/presentation/grpc"
	"github.com/Luyzz22/contract-analyzer-backend/internal/presentation/rest"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/auth"
	pkgkafka "github.com/Luyzz22/contract-analyzer-backend/pkg/kafka"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/observability"
	pgpkg "github.com/Luyzz22/contract-analyzer-backend/pkg/postgres"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/tlsutil"
)

const serviceName = "contract-analyzer"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("contract-analyzer stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: serviceName,
		Environment: cfg.Environment,
	})
	logger.Info("starting contract-analyzer",
		slog.Int("http_port", cfg.HTTPPort),
		slog.Int("grpc_port", cfg.GRPCPort),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	// Initialize tracing and metrics.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", slog.String("error", err.Error()))
	} else {
		defer shutdownWithTimeout(logger, "tracer", shutdownTracer)
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer shutdownWithTimeout(logger, "meter provider", meterProvider.Shutdown)

	recorder, err := metrics.NewRecorder(meterProvider)
	if err != nil {
		return fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	// Database connection and schema.
	if cfg.Database.MigrationsEnabled {
		if err := pgpkg.RunMigrationsFS(cfg.Database.URL, postgres.Migrations, postgres.MigrationsDir, pgpkg.Up); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("database migrations applied")
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pgpkg.NewPool(dbCtx, pgpkg.Config{URL: cfg.Database.URL, MaxConns: int32(cfg.Database.MaxConns)})
	dbCancel()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	analysisRepo := postgres.NewAnalysisRepository(pool)
	usageRepo := postgres.NewUsageRepository(pool)
	planRepo := postgres.NewTenantPlanRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)

	// Field extraction.
	extractor, closeExtractor, err := newExtractor(ctx, cfg.LLM, logger)
	if err != nil {
		return err
	}
	defer closeExtractor()

	// Messaging.
	kafkaCfg := pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
		TLS:           cfg.Kafka.TLS,
	}
	producer, err := pkgkafka.NewProducer(kafkaCfg)
	if err != nil {
		return fmt.Errorf("failed to create kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Error("failed to close kafka producer", slog.String("error", err.Error()))
		}
	}()
	publisher := kafkainfra.NewPublisher(producer, cfg.Kafka.Topic, logger)

	// Wire use cases.
	deps := usecase.Dependencies{
		Analyses:  analysisRepo,
		Usage:     usageRepo,
		Plans:     planRepo,
		Publisher: publisher,
		Metrics:   recorder,
		Engine:    service.NewRiskEngine(),
		Logger:    logger,
	}
	analyzeUC := usecase.NewAnalyzeContract(deps, extractor)
	assessUC := usecase.NewAssessContract(deps)
	getUC := usecase.NewGetAnalysis(analysisRepo)
	dashboardUC := usecase.NewDashboard(analysisRepo, usageRepo, planRepo)
	scanUC := usecase.NewScanDeadlines(analysisRepo, alertRepo, recorder,
		service.NewDeadlinePlanner(cfg.Deadlines.HorizonDays), logger)
	recordAlertUC := usecase.NewRecordRiskAlert(alertRepo, recorder, logger)

	jwtService, err := newJWTService(cfg.Auth)
	if err != nil {
		return err
	}

	// HTTP server.
	restHandler := rest.NewContractHandler(rest.UseCases{
		Analyze:   analyzeUC,
		Assess:    assessUC,
		Get:       getUC,
		List:      usecase.NewListAnalyses(analysisRepo, logger),
		Export:    usecase.NewExportAnalysis(analysisRepo),
		Dashboard: dashboardUC,
		Alerts:    usecase.NewListAlerts(alertRepo),
	}, logger)
	healthHandler := rest.NewHealthHandler(serviceName, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pgpkg.HealthCheck(ctx, pool) },
	}, logger)

	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.NewRouter(rest.RouterConfig{
			Contracts: restHandler,
			Health:    healthHandler,
			JWT:       jwtService,
			Limiter:   rest.NewTenantRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
			Observer:  recorder,
			Metrics:   metricsHandler,
			Logger:    logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Extraction calls can take up to the LLM timeout.
		WriteTimeout: cfg.LLM.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if cfg.TLS.Enabled() {
		tlsCfg, err := tlsutil.ServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile, "")
		if err != nil {
			return fmt.Errorf("failed to load HTTP TLS config: %w", err)
		}
		httpServer.TLSConfig = tlsCfg
	}

	// gRPC server.
	grpcServer, err := grpcpresentation.NewServer(
		grpcpresentation.NewContractHandler(analyzeUC, assessUC, getUC, dashboardUC, logger),
		jwtService,
		grpcpresentation.ServerConfig{
			CertFile:     cfg.TLS.CertFile,
			KeyFile:      cfg.TLS.KeyFile,
			ClientCAFile: cfg.TLS.CAFile,
			Reflection:   cfg.GRPCReflection,
		},
		logger,
	)
	if err != nil {
		return err
	}

	// Critical risk events become alerts.
	alertConsumer := kafkainfra.NewAlertConsumer(recordAlertUC, logger)
	consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.Topic, alertConsumer.Handle, logger)
	if err != nil {
		return fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Error("failed to close kafka consumer", slog.String("error", err.Error()))
		}
	}()

	// Start everything.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()), slog.Bool("tls", cfg.TLS.Enabled()))
		var err error
		if cfg.TLS.Enabled() {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := grpcServer.Serve(cfg.GRPCAddress()); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		runDeadlineScanner(gctx, scanUC, cfg.Deadlines.ScanInterval, logger)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down contract-analyzer")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		grpcServer.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	logger.Info("contract-analyzer started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
	)

	err = g.Wait()
	logger.Info("contract-analyzer stopped")
	return err
}

// newExtractor builds the configured extractor. The returned func releases
// its resources.
func newExtractor(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (port.Extractor, func(), error) {
	var (
		model   llm.ChatModel
		closers []func() error
	)
	switch cfg.Provider {
	case "openai":
		m, err := llm.NewOpenAIModel(llm.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create openai model: %w", err)
		}
		model = m
	case "gemini":
		m, err := llm.NewGeminiModel(ctx, llm.GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		model = m
		closers = append(closers, m.Close)
	default:
		logger.Warn("using dummy extractor; analyses will only report missing clauses")
		model = llm.DummyModel{}
	}

	var extractor port.Extractor = llm.NewExtractor(model, cfg.Timeout, logger)
	if cfg.CacheDir != "" {
		db, err := llm.OpenCache(cfg.CacheDir, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open extraction cache: %w", err)
		}
		closers = append(closers, db.Close)
		extractor = llm.NewCachedExtractor(extractor, db, model.Name()+"/"+modelID(cfg), cfg.CacheTTL, logger)
		logger.Info("extraction cache enabled", slog.String("dir", cfg.CacheDir))
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Error("failed to release extractor resource", slog.String("error", err.Error()))
			}
		}
	}
	return extractor, closeAll, nil
}

func modelID(cfg config.LLMConfig) string {
	switch cfg.Provider {
	case "openai":
		return cfg.OpenAIModel
	case "gemini":
		return cfg.GeminiModel
	default:
		return "none"
	}
}

func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: cfg.TokenTTL,
	}
	if cfg.PrivateKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PrivateKeyPEM = key
	}
	if cfg.PublicKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = key
	}
	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	return svc, nil
}

// runDeadlineScanner scans once at startup and then every interval until
// ctx is done. Failed scans are retried on the next tick.
func runDeadlineScanner(ctx context.Context, uc *usecase.ScanDeadlines, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		logger.Info("deadline scanner disabled")
		return
	}

	scan := func() {
		resp, err := uc.Execute(ctx, time.Now())
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("deadline scan failed", slog.String("error", err.Error()))
			}
			return
		}
		logger.Info("deadline scan finished",
			slog.Int("contracts", resp.Contracts),
			slog.Int("planned", resp.Planned),
			slog.Int("created", resp.Created),
		)
	}

	scan()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			scan()
		}
	}
}

func shutdownWithTimeout(logger *slog.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("shutdown failed", slog.String("component", name), slog.String("error", err.Error()))
	}
}
