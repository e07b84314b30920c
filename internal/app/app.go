package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/samandarerkinov/torthouse/internal/catalog"
	healthcheck "github.com/samandarerkinov/torthouse/internal/health"
	"github.com/samandarerkinov/torthouse/internal/messaging/kafka"
	"github.com/samandarerkinov/torthouse/internal/metrics"
	"github.com/samandarerkinov/torthouse/internal/service/admin"
	cartsvc "github.com/samandarerkinov/torthouse/internal/service/cart"
	"github.com/samandarerkinov/torthouse/internal/service/conversation"
	"github.com/samandarerkinov/torthouse/internal/service/dispatch"
	"github.com/samandarerkinov/torthouse/internal/service/transport"
	"github.com/samandarerkinov/torthouse/internal/validate"
	"github.com/samandarerkinov/torthouse/internal/version"
)

// App — собранное приложение: диалоговый движок и админ-сервис,
// готовые к подключению транспортного слоя.
type App struct {
	Engine     *conversation.Engine
	Admin      *admin.Service
	Dispatcher *dispatch.Dispatcher

	deps      *Dependencies
	producer  *kafka.Producer
	metricSrv *http.Server
	logger    *log.Entry
}

// New собирает приложение из конфигурации: хранилище, метрики, Kafka,
// диспетчер, движок. Транспортный клиент не входит в ядро; до его
// подключения исходящие сообщения фиксирует recorder.
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	botMetrics := metrics.NewBotMetrics()

	// Kafka producer опционален: без брокеров события просто не публикуются.
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			producer = p
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	// NOTE: recorder вместо реального транспортного клиента; при подключении
	// транспорта сюда передаётся его Messenger.
	messenger := transport.NewRecorder()

	cat := catalog.Default()
	cartService := cartsvc.NewService(deps.Carts, cat)

	var publisher dispatch.EventPublisher
	if producer != nil {
		publisher = producer
	}
	dispatcher := dispatch.New(dispatch.Config{
		Messenger: messenger,
		Catalog:   cat,
		AdminIDs:  cfg.AdminIDs,
		ChannelID: cfg.OrderChannelID,
		Publisher: publisher,
		Metrics:   botMetrics,
	})

	engine := conversation.NewEngine(conversation.Config{
		Users:      deps.Users,
		Sessions:   deps.Sessions,
		Cart:       cartService,
		Orders:     deps.Orders,
		Counter:    deps.Counter,
		Catalog:    cat,
		Phones:     validate.NewPhoneValidator(),
		Images:     validate.NewImageChecker(logger),
		Dispatcher: dispatcher,
		Metrics:    botMetrics,
	})

	adminService := admin.NewService(deps.Orders, deps.Users, messenger, dispatcher, botMetrics, cfg.AdminIDs)

	return &App{
		Engine:     engine,
		Admin:      adminService,
		Dispatcher: dispatcher,
		deps:       deps,
		producer:   producer,
		logger:     logger,
	}, nil
}

// Run собирает приложение и блокируется до отмены контекста.
func Run(ctx context.Context, cfg Config) error {
	a, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	healthHandler := healthcheck.NewHandler(version.String())
	if a.deps.Store != nil {
		store := a.deps.Store
		healthHandler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}

	a.metricSrv = startMetricsServer(ctx, cfg.MetricsAddr, a.logger, healthHandler)
	a.logger.Info("torthouse engine started")

	<-ctx.Done()
	a.logger.Info("получен сигнал остановки")
	a.Shutdown()
	return ctx.Err()
}

// Shutdown останавливает фоновые рассылки и освобождает ресурсы.
func (a *App) Shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.Dispatcher.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("dispatcher shutdown with error")
	}
	shutdownHTTP(a.metricSrv, a.logger)

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			a.logger.Info("kafka producer closed")
		}
	}
	a.deps.Close()
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
