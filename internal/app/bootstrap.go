package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/storage_portal/config"
	"github.com/Gunvolt24/storage_portal/internal/backend"
	"github.com/Gunvolt24/storage_portal/internal/kafka"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/internal/querycache"
	"github.com/Gunvolt24/storage_portal/internal/repo/memory"
	"github.com/Gunvolt24/storage_portal/internal/repo/postgres"
	rest "github.com/Gunvolt24/storage_portal/internal/transport/http"
	"github.com/Gunvolt24/storage_portal/internal/usecase"
	"github.com/Gunvolt24/storage_portal/pkg/logger"
	"github.com/Gunvolt24/storage_portal/pkg/metrics"
	"github.com/Gunvolt24/storage_portal/pkg/telemetry"
	"github.com/Gunvolt24/storage_portal/pkg/validate"
	"github.com/gin-gonic/gin"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer, фоновые задачи).
type App struct {
	Logger          ports.Logger        // логгер
	HTTPServer      *http.Server        // HTTP-сервер
	EventConsumer   ports.EventConsumer // консьюмер уведомлений бэкенда; nil — выключен
	Jobs            *Scheduler          // периодические задачи; nil — нет
	gracefulTimeout time.Duration       // время ожидания завершения HTTP-сервера
}

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

// openSessionStore — Postgres при заданном DSN, иначе память процесса.
func openSessionStore(ctx context.Context, cfg *config.Postgres, log ports.Logger) (ports.SessionStore, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		log.Warnf(ctx, "postgres dsn is empty, sessions are kept in memory")
		return memory.NewSessionStore(), func() {}, nil
	}

	pool, err := postgres.Open(ctx, postgres.PoolOptions{
		DSN:             cfg.DSN,
		MaxConns:        cfg.MaxConns,
		MaxConnLifetime: cfg.MaxConnLifetime,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
	})
	if err != nil {
		return nil, func() {}, err
	}
	log.Infof(ctx, "postgres session store ready (max_conns=%d)", cfg.MaxConns)
	return postgres.NewSessionStore(pool), pool.Close, nil
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Хранилище сессий.
	store, closeStore, err := openSessionStore(ctx, &cfg.Postgres, logg)
	if err != nil {
		closeLogger()
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Клиент бэкенда хранилища.
	client, err := backend.New(backend.Config{BaseURL: cfg.Backend.BaseURL, Timeout: cfg.Backend.Timeout})
	if err != nil {
		closeStore()
		closeLogger()
		return nil, func() {}, err
	}

	// Сборка доменного слоя.
	portal := usecase.NewPortal(store,
		func(token string) ports.StorageAPI { return client.WithToken(token) },
		validate.NewDraftValidator(), logg,
		usecase.PortalConfig{
			SessionTTL:    cfg.Session.TTL,
			SubmitTimeout: cfg.Session.SubmitTimeout,
			Cache: querycache.Options{
				Capacity:     cfg.Cache.Capacity,
				StaleTime:    cfg.Cache.StaleTime,
				Retries:      cfg.Cache.Retries,
				RetryDelay:   cfg.Cache.RetryDelay,
				FetchTimeout: cfg.Cache.FetchTimeout,
			},
		})

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(portal, logg, rest.Options{
		HandlerTimeout: cfg.HTTP.HandlerTimeout,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		CookieSecure:   cfg.Session.CookieSecure,
		UploadRPS:      cfg.RateLimit.UploadRPS,
		UploadBurst:    cfg.RateLimit.UploadBurst,
	})
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	// Чистка просроченных сессий по расписанию.
	jobs := NewScheduler(logg)
	if err := jobs.Add("purge-sessions", cfg.Session.PurgeSchedule, func(ctx context.Context) error {
		_, pErr := portal.PurgeExpired(ctx)
		return pErr
	}); err != nil {
		closeStore()
		closeLogger()
		return nil, func() {}, err
	}

	// Консьюмер Kafka (если включён).
	var consumer ports.EventConsumer
	if cfg.Kafka.Enabled {
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			MaxWait:        cfg.Kafka.MaxWait,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}
		if err := kafkaCfg.Validate(); err != nil {
			closeStore()
			closeLogger()
			return nil, func() {}, err
		}
		consumer = kafka.NewConsumer(&kafkaCfg, portal, logg)
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		EventConsumer:   consumer,
		Jobs:            jobs,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		portal.Shutdown()
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		closeStore()
		closeLogger()
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер, консьюмера и задачи; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера.
	if a.EventConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.EventConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Периодические задачи.
	if a.Jobs != nil {
		a.Jobs.Start(ctx)
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	if a.Jobs != nil {
		a.Jobs.Stop(shutdownCtx)
	}

	// Остановка Kafka-консьюмера
	if a.EventConsumer != nil {
		if err := a.EventConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
