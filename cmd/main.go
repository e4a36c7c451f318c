package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restoran/internal/api"
	"restoran/internal/catalog"
	"restoran/internal/chat"
	"restoran/internal/concierge"
	"restoran/internal/config"
	"restoran/internal/logging"
	"restoran/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", -1, "Metrics server port, 0 disables (overrides config)")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort >= 0 {
		cfg.Server.MetricsPort = *metricsPort
	}
	gin.SetMode(cfg.Server.Mode)

	log, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	selector, err := concierge.NewSelector(concierge.DefaultTopics())
	if err != nil {
		return fmt.Errorf("failed to build reply selector: %w", err)
	}

	monitor := monitoring.NewMonitor()
	hub := chat.NewHub(selector, cfg.Chat.ReplyDelay, chat.WithReplyHook(func(r concierge.Reply) {
		monitor.RecordReply(r.Topic)
	}))

	site, err := api.NewSiteAPI(cat, hub, monitor, log)
	if err != nil {
		return fmt.Errorf("failed to initialize site: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, hub, monitor, cfg.Chat.IdleTimeout, log)

	var metricsServer *http.Server
	if cfg.Server.MetricsPort > 0 {
		metricsServer = newMetricsServer(cfg.Server.MetricsPort, monitor)
		go func() {
			log.Info("starting metrics server", zap.Int("port", cfg.Server.MetricsPort))
			if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           site.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting site server", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("site server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("site server shutdown error", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics server shutdown error", zap.Error(err))
		}
	}
	return nil
}

func newMetricsServer(port int, monitor *monitoring.Monitor) *http.Server {
	metricsRouter := gin.New()
	metricsRouter.Use(gin.Recovery())
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(monitor.Registry(), promhttp.HandlerOpts{})))

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// sweepSessions drops chat sessions whose page view has gone quiet
func sweepSessions(ctx context.Context, hub *chat.Hub, monitor *monitoring.Monitor, idle time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(max(idle/2, time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := hub.Sweep(idle); n > 0 {
				log.Debug("closed idle chat sessions", zap.Int("count", n))
			}
			monitor.SetActiveSessions(hub.Len())
		}
	}
}
