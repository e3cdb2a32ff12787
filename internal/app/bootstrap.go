package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kursovoi/storefront/config"
	"github.com/kursovoi/storefront/internal/basket"
	"github.com/kursovoi/storefront/internal/cart"
	"github.com/kursovoi/storefront/internal/kafka"
	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/internal/protocol"
	"github.com/kursovoi/storefront/internal/repo/postgres"
	"github.com/kursovoi/storefront/internal/session"
	rest "github.com/kursovoi/storefront/internal/transport/http"
	"github.com/kursovoi/storefront/internal/transport/udp"
	"github.com/kursovoi/storefront/internal/usecase"
	"github.com/kursovoi/storefront/pkg/logger"
	"github.com/kursovoi/storefront/pkg/metrics"
	"github.com/kursovoi/storefront/pkg/telemetry"
	"github.com/kursovoi/storefront/pkg/validate"
)

// App — собранное приложение и его внешние интерфейсы.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	Publisher       ports.EventPublisher
	gracefulTimeout time.Duration
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

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

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

	// Командный канал к торговому серверу.
	transport := udp.New(cfg.Udp.Addr, cfg.Udp.Timeout)
	client := protocol.NewClient(transport)

	// Сессии, анонимная корзина, серверная корзина.
	sessions := session.NewStore(cfg.Session.Capacity, cfg.Session.TTL)
	localCart := cart.NewSessionCart(sessions)
	remoteBasket := basket.NewRemote(client, logg)

	// Публикация событий заказов (при выключенной Kafka — заглушка).
	var publisher ports.EventPublisher = kafka.Noop{}
	if cfg.Kafka.Enabled {
		publisher = kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, logg)
	}

	// Отчётная база (опциональна: витрина работает и без неё).
	var analytics ports.AnalyticsRepository
	cleanupPool := func() {}
	if cfg.Postgres.Enabled {
		pool, pErr := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if pErr != nil {
			if cErr := cleanupLogger(); cErr != nil {
				logg.Warnf(ctx, "cleanup logger: %v", cErr)
			}
			return nil, func() {}, pErr
		}
		analytics = postgres.NewAnalyticsRepository(pool)
		cleanupPool = pool.Close
	}

	// Сборка сервисов доменного слоя.
	catalogService := usecase.NewCatalogService(client, logg)
	cartService := usecase.NewCartService(client, remoteBasket, localCart, sessions, logg)
	accountService := usecase.NewAccountService(client, logg)
	checkoutService := usecase.NewCheckoutService(
		client, remoteBasket, localCart, sessions,
		validate.NewCheckoutValidator(), publisher, analytics, logg,
	)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(
		catalogService, cartService, checkoutService, accountService,
		analytics, sessions, logg,
	)
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
		Publisher:       publisher,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if err := publisher.Close(); err != nil {
			logg.Warnf(ctx, "event publisher close error: %v", err)
		}

		cleanupPool()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер; ждёт отмены контекста или ошибки и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

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
		a.Logger.Warnf(ctx, "background error: %v", err)
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

	if err := a.Publisher.Close(); err != nil {
		a.Logger.Warnf(ctx, "event publisher close error: %v", err)
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
