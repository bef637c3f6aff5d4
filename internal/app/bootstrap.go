package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/adbridge/config"
	cachemem "github.com/Gunvolt24/adbridge/internal/cache/memory"
	"github.com/Gunvolt24/adbridge/internal/health"
	"github.com/Gunvolt24/adbridge/internal/kafka"
	"github.com/Gunvolt24/adbridge/internal/ports"
	"github.com/Gunvolt24/adbridge/internal/repo/postgres"
	rest "github.com/Gunvolt24/adbridge/internal/transport/http"
	"github.com/Gunvolt24/adbridge/internal/usecase"
	"github.com/Gunvolt24/adbridge/pkg/logger"
	"github.com/Gunvolt24/adbridge/pkg/metrics"
	"github.com/Gunvolt24/adbridge/pkg/telemetry"
	"github.com/Gunvolt24/adbridge/pkg/validate"
)

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// ConsumerConfigs — по одной конфигурации консьюмера на каждый топик.
// Пустой InstanceID заменяется именем хоста.
func ConsumerConfigs(cfg *config.Config) ([]kafka.ConsumerConfig, error) {
	instanceID := strings.TrimSpace(cfg.Kafka.InstanceID)
	if instanceID == "" {
		if host, err := os.Hostname(); err == nil {
			instanceID = host
		}
	}

	seen := make(map[string]struct{}, len(cfg.Kafka.Topics))
	out := make([]kafka.ConsumerConfig, 0, len(cfg.Kafka.Topics))
	for _, raw := range cfg.Kafka.Topics {
		topic := strings.TrimSpace(raw)
		if topic == "" {
			continue
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}

		out = append(out, kafka.ConsumerConfig{
			Driver:         cfg.Kafka.Driver,
			Brokers:        cfg.Kafka.Brokers,
			Topic:          topic,
			GroupID:        cfg.Kafka.GroupID,
			StartOffset:    cfg.Kafka.StartOffset,
			Version:        cfg.Kafka.Version,
			ClientID:       cfg.Kafka.ClientID,
			InstanceID:     instanceID,
			PollTimeout:    cfg.Kafka.PollTimeout,
			PollLinger:     cfg.Kafka.PollLinger,
			MaxPollRecords: cfg.Kafka.MaxPollRecords,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			CommitTimeout:  cfg.Kafka.CommitTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		})
	}

	if len(out) == 0 {
		return nil, errors.New("kafka: no topics configured")
	}
	return out, nil
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// cleanups — освобождение уже созданных ресурсов в обратном порядке.
	var cleanups []func()
	runCleanups := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		runCleanups()
		return nil, func() {}, err
	}

	consumerCfgs, err := ConsumerConfigs(cfg)
	if err != nil {
		return fail(err)
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL; при выключенной конфигурации — только пропагаторы.
	shutdownTrace, err := telemetry.SetupTracing(ctx, telemetry.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
		InstanceID:  consumerCfgs[0].InstanceID,
	})
	if err != nil {
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
	} else {
		if cfg.Tracing.Enabled {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		}
		cleanups = append(cleanups, func() {
			if terr := shutdownTrace(context.Background()); terr != nil {
				logg.Warnf(ctx, "shutdown tracing: %v", terr)
			}
		})
	}

	// Миграции схемы (по флагу).
	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			return fail(fmt.Errorf("migrate: %w", err))
		}
		logg.Infof(ctx, "migrations applied")
	}

	// Пул подключений Postgres
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, postgres.PoolOptions{
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		ApplicationName: cfg.Tracing.ServiceName,
		TraceQueries:    cfg.Postgres.TraceQueries,
	})
	if err != nil {
		return fail(fmt.Errorf("postgres pool: %w", err))
	}
	cleanups = append(cleanups, pool.Close)

	// Сборка зависимостей доменного слоя.
	adCache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)
	adRepo := postgres.NewAdHistoryRepository(pool)
	adValidator := validate.NewAdValidator()
	adService := usecase.NewAdService(adRepo, adCache, logg, adValidator)

	// Прогрев кэша
	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := adService.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	// Общий для всех консьюмеров HealthGate.
	gate := health.New(cfg.Health.Threshold)

	// По одному циклу на топик.
	consumers := make([]ports.MessageConsumer, 0, len(consumerCfgs))
	for i := range consumerCfgs {
		loop, err := kafka.NewConsumer(&consumerCfgs[i], adService, gate, logg)
		if err != nil {
			for _, c := range consumers {
				_ = c.Close()
			}
			return fail(err)
		}
		consumers = append(consumers, loop)
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(adService, gate, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Consumers:       consumers,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	gate.MarkReady()
	logg.Infof(ctx, "bootstrap done topics=%d driver=%s group=%s", len(consumers), cfg.Kafka.Driver, cfg.Kafka.GroupID)

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		for _, c := range consumers {
			if err := c.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		runCleanups()
	}

	return app, cleanup, nil
}

// durationOr — d, если положительна, иначе def.
func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
