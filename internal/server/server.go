package server

import (
	"context"
	"log/slog"
	"net/http"

	appspots "github.com/preston-bernstein/iss-spotter/internal/app/spots"
	"github.com/preston-bernstein/iss-spotter/internal/config"
	domainspots "github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	httpserver "github.com/preston-bernstein/iss-spotter/internal/http"
	"github.com/preston-bernstein/iss-spotter/internal/http/handlers"
	"github.com/preston-bernstein/iss-spotter/internal/logging"
	"github.com/preston-bernstein/iss-spotter/internal/metrics"
	"github.com/preston-bernstein/iss-spotter/internal/mqtt"
	"github.com/preston-bernstein/iss-spotter/internal/poller"
	"github.com/preston-bernstein/iss-spotter/internal/store"
	"github.com/preston-bernstein/iss-spotter/internal/stream"
)

var metricsSetup = metrics.Setup

// broker is the connection side of the MQTT client.
type broker interface {
	Connect(ctx context.Context) error
	Close()
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	spotsService  *appspots.Service
	hub           *stream.Hub
	broker        broker
	consumer      *Consumer
	consumerDone  chan struct{}
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithUpstream(cfg, logger, selectProvider(cfg, logger))
}

func newServerWithUpstream(cfg config.Config, logger *slog.Logger, up upstream) *Server {
	return newServerWithMetrics(cfg, logger, up, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, up upstream, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	plr := poller.New(up.fetcher, up.decoder, cfg.Observatory, cfg.PollInterval,
		poller.WithLogger(logger),
		poller.WithMetrics(recorder),
		poller.WithProviderName(normalizeProviderName(up.name, up.fetcher)),
	)
	memoryStore, spotsSvc := buildServices(cfg.Observatory)
	hub := stream.NewHub(logger)
	brk, sink := buildMQTT(cfg, logger)

	var spotsSink SpotsSink
	if sink != nil {
		spotsSink = sink
	}
	consumer := NewConsumer(plr.Mailbox(), spotsSvc, hub, spotsSink, logger, recorder)
	httpSrv := buildHTTPServer(cfg, spotsSvc, hub, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		spotsService:  spotsSvc,
		hub:           hub,
		broker:        brk,
		consumer:      consumer,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *appspots.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		spotsService: svc,
		httpServer:   httpSrv,
		poller:       plr,
	}
}

func buildServices(obs domainspots.Observatory) (*store.MemoryStore, *appspots.Service) {
	memoryStore := store.NewMemoryStore()
	return memoryStore, appspots.NewService(memoryStore, obs)
}

func buildMQTT(cfg config.Config, logger *slog.Logger) (broker, *mqtt.SpotsPublisher) {
	if !cfg.MQTT.Enabled {
		return nil, nil
	}
	client := mqtt.NewClient(mqtt.Config{
		Broker:   cfg.MQTT.Broker,
		Port:     cfg.MQTT.Port,
		ClientID: cfg.MQTT.ClientID,
		Logger:   logger,
	})
	return client, mqtt.NewSpotsPublisher(client, cfg.MQTT.TopicPrefix, logger)
}

func buildHTTPServer(cfg config.Config, svc *appspots.Service, hub *stream.Hub, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(svc, logger, statusFn)
	router := httpserver.NewRouter(handler, hub, logger, recorder)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller, consumer and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.connectBroker(ctx)
	s.poller.Start(ctx)
	s.startConsumer(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) startConsumer(ctx context.Context) {
	if s.consumer == nil {
		return
	}
	s.consumerDone = make(chan struct{})
	go func() {
		defer close(s.consumerDone)
		s.consumer.Run(ctx)
	}()
}

// connectBroker dials in the background; paho keeps retrying on its own.
func (s *Server) connectBroker(ctx context.Context) {
	if s.broker == nil {
		return
	}
	go func() {
		if err := s.broker.Connect(ctx); err != nil && ctx.Err() == nil && s.logger != nil {
			s.logger.Warn("mqtt connect failed", "error", err)
		}
	}()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if s.consumerDone != nil {
		select {
		case <-s.consumerDone:
		case <-shutdownCtx.Done():
			if s.logger != nil {
				s.logger.Warn("consumer did not stop in time")
			}
		}
	}

	// hijacked websocket connections are not closed by http.Server.Shutdown
	if s.hub != nil {
		s.hub.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.broker != nil {
		s.broker.Close()
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
