package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/arturpasiut/poke-sky-api/config"
	"github.com/arturpasiut/poke-sky-api/internal/handlers"
	"github.com/arturpasiut/poke-sky-api/pkg/catalog"
	"github.com/arturpasiut/poke-sky-api/pkg/database"
	"github.com/arturpasiut/poke-sky-api/pkg/events"
	"github.com/arturpasiut/poke-sky-api/pkg/evolution"
	"github.com/arturpasiut/poke-sky-api/pkg/health"
	"github.com/arturpasiut/poke-sky-api/pkg/middleware"
	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
	"github.com/arturpasiut/poke-sky-api/pkg/redis"
	"github.com/arturpasiut/poke-sky-api/pkg/repositories/evolutioncache"
	"github.com/arturpasiut/poke-sky-api/pkg/repositories/favorites"
	"github.com/arturpasiut/poke-sky-api/pkg/tracing"
)

var version = "dev"

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("service exited with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger ectologger.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, cfg.AppName, tracing.OTLPConfig{
		Enabled:  cfg.OTLPEnabled,
		Endpoint: cfg.OTLPEndpoint,
		Protocol: cfg.OTLPProtocol,
		Insecure: cfg.OTLPInsecure,
		Timeout:  10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	db, err := database.Connect(ctx, database.ConnectConfig{
		Driver:          cfg.DatabaseDriver,
		Host:            cfg.DatabaseHost,
		Port:            cfg.DatabasePort,
		UserName:        cfg.DatabaseUserName,
		Password:        cfg.DatabasePassword,
		Name:            cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		RetryCount:      cfg.DatabaseReconnectRetryCount,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	migrations := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})
	if err := migrations.Migrate(cfg.DatabaseName, driver); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	dbInstance := database.NewDatabaseInstance(db, logger)

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, logger)
	if err != nil {
		// the catalog degrades to upstream-only lookups without redis
		logger.WithError(err).Warn("Redis unavailable, catalog cache disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var publisher *events.Producer
	if cfg.KafkaEnabled {
		publisher = events.NewProducer(events.Config{
			Brokers: events.ParseBrokers(cfg.KafkaBrokers),
			Topic:   cfg.KafkaEventTopic,
		}, logger)
		defer publisher.Close()
	}

	upstream := pokeapi.NewClient(pokeapi.Config{
		BaseURL:       cfg.PokeAPIBaseURL,
		DetailTimeout: cfg.PokeAPIDetailTimeout,
	}, logger)

	cacheRepo := evolutioncache.NewRepository(dbInstance, logger)
	favoritesRepo := favorites.NewRepository(dbInstance, logger)

	var eventPublisher evolution.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	chainService := evolution.NewService(upstream, cacheRepo, eventPublisher, logger)

	var catalogCache catalog.Cache
	if redisClient != nil {
		catalogCache = redisClient
	}
	catalogService := catalog.NewService(upstream, catalogCache, catalog.Config{
		IndexLimit: cfg.CatalogIndexLimit,
		CacheTTL:   cfg.CatalogCacheTTL,
	}, logger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.Error(logger)

	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	if !cfg.AuthEnabled {
		logger.Warn("AUTH_ENABLED=false, trusting the X-User-ID header")
		e.Use(middleware.HeaderAuth())
	}
	e.Use(middleware.Logger(logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(echomiddleware.Recover())

	var rawRedis *goredis.Client
	if redisClient != nil {
		rawRedis = redisClient.Redis()
	}
	checker := health.NewChecker(db, rawRedis, version)
	e.GET("/health", checker.HealthHandler)
	e.GET("/health/live", checker.LivenessHandler)
	e.GET("/health/ready", checker.ReadinessHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	handlers.NewPokemonHandler(catalogService, logger).Register(api)
	handlers.NewEvolutionHandler(chainService, cacheRepo, logger).Register(api.Group("/evolutions"))

	favoritesGroup := api.Group("/favorites", middleware.RequireUser())
	handlers.NewFavoritesHandler(favoritesRepo, logger).Register(favoritesGroup)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           e,
		ReadTimeout:       time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("%s listening on port %d", cfg.AppName, cfg.Port)
		checker.SetReady(true)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	checker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) (ectologger.Logger, error) {
	var zapCfg zap.Config
	if cfg.PrettyLogs {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err == nil {
		zapCfg.Level = level
	}

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return zapadapter.NewZapEctoLogger(zapLogger, nil), nil
}
