package app

import (
	"context"
	"errors"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"airwatch/backend/libs/redis"
	"airwatch/backend/services/dashboard-service/internal/config"
	"airwatch/backend/services/dashboard-service/internal/dashboard"
	httpserver "airwatch/backend/services/dashboard-service/internal/http"
	"airwatch/backend/services/dashboard-service/internal/http/handlers"
	"airwatch/backend/services/dashboard-service/internal/metrics"
	"airwatch/backend/services/dashboard-service/internal/mirror"
	"airwatch/backend/services/dashboard-service/internal/reading"
	"airwatch/backend/services/dashboard-service/internal/ws"
)

// App wires dependencies for the dashboard service.
type App struct {
	cfg      *config.Config
	renderer *dashboard.Renderer
	hub      *ws.Hub
	server   *httpserver.Server
	redis    *goredis.Client
	logger   *zap.Logger
}

// New builds application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	renderer := dashboard.NewRenderer(reading.NewGenerator(nil), logger)
	hub := ws.NewHub(renderer, ws.Options{
		PingInterval: cfg.PingInterval(),
		WriteTimeout: cfg.WriteTimeout(),
		SendBuffer:   cfg.WebSocket.SendBuffer,
	}, logger, recorder.SetViewers)
	renderer.Attach(hub, recorder)

	a := &App{
		cfg:      cfg,
		renderer: renderer,
		hub:      hub,
		logger:   logger,
	}

	if cfg.MirrorEnabled() {
		client, err := redis.NewRedisClient(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			return nil, err
		}
		a.redis = client
		renderer.Attach(mirror.New(client, cfg.Redis.Channel, logger, recorder.MirrorFailed))
		logger.Info("snapshot mirror enabled", zap.String("addr", cfg.Redis.Addr), zap.String("channel", cfg.Redis.Channel))
	}

	routes := httpserver.Routes{
		Page:     handlers.NewPageHandler(renderer, dashboard.NewPage(cfg.RefreshInterval()), logger),
		Readings: handlers.NewReadingsHandler(renderer),
		Live:     ws.NewServer(hub, logger).HandleWS,
		Health:   handlers.NewHealthHandler(),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	a.server = httpserver.NewServer(cfg.HTTPAddress(), httpserver.NewRouter(routes), logger)

	return a, nil
}

// Renderer exposes the dashboard renderer.
func (a *App) Renderer() *dashboard.Renderer {
	return a.renderer
}

// Run binds the listener, then serves HTTP and drives the refresh timer until
// context cancellation. A bind failure is returned before the timer starts.
func (a *App) Run(ctx context.Context) error {
	ln, err := a.server.Listen()
	if err != nil {
		return err
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.hub.Start(ctx)
		return nil
	})
	g.Go(func() error {
		err := a.renderer.RunEvery(ctx, a.cfg.RefreshInterval())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := a.server.Serve(ctx, ln)
		a.hub.Close()
		return err
	})

	return g.Wait()
}

// Close releases acquired resources.
func (a *App) Close() {
	a.hub.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
