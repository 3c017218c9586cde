package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/webmon/internal/config"
	"github.com/hamed0406/webmon/internal/httpapi"
	"github.com/hamed0406/webmon/internal/logging"
	"github.com/hamed0406/webmon/internal/metrics"
	"github.com/hamed0406/webmon/internal/notify"
	"github.com/hamed0406/webmon/internal/probe"
	"github.com/hamed0406/webmon/internal/repo/memory"
	"github.com/hamed0406/webmon/internal/scheduler"
)

func main() {
	path := flag.String("f", "config.yml", "path to the YAML config file")
	var checkTime int
	flag.IntVar(&checkTime, "t", 0, "default check interval in seconds (overrides global.default_interval)")
	flag.IntVar(&checkTime, "check-time", 0, "same as -t")
	addr := flag.String("addr", "", "status API listen address (overrides api.addr)")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal(err)
	}
	if checkTime > 0 {
		cfg.Global.DefaultInterval = checkTime
	}
	if *addr != "" {
		cfg.API.Addr = *addr
	}

	logger, err := logging.NewLogger(logging.Options{Dir: cfg.Log.Dir, Level: cfg.Log.Level, Console: cfg.Console()})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("webmon_failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	eps, err := cfg.Endpoints(logger)
	if err != nil {
		return err
	}
	notifier, err := cfg.BuildNotifier(logger)
	if err != nil {
		return err
	}

	store := memory.New(0)
	for _, ep := range eps {
		if err := store.Add(ctx, ep); err != nil {
			return fmt.Errorf("register %s: %w", ep.Name, err)
		}
	}
	mc := metrics.NewCollector()

	// transitions go to the configured transports and to the event log
	sink := notify.NewSink(append(notifier, store), cfg.NotifyTimeout(), logger, mc)

	sup := scheduler.NewSupervisor(probe.NewHTTPChecker(), sink,
		scheduler.WithLogger(logger),
		scheduler.WithMetrics(mc),
		scheduler.WithResults(store),
	)
	h, err := sup.Start(ctx, eps)
	if err != nil {
		return err
	}

	var srv *http.Server
	if cfg.API.Addr != "" {
		api := httpapi.NewServer(logger, store, store, store, probe.NewDNSDiagnoser(), mc.Handler())
		srv = &http.Server{
			Addr:              cfg.API.Addr,
			Handler:           api.Router(cfg.API.RPM, cfg.API.Burst),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.API.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("api_failed", zap.Error(err))
				h.Cancel()
			}
		}()
	}

	err = h.Wait()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			logger.Warn("api_shutdown_error", zap.Error(serr))
		}
	}
	logger.Info("webmon_stopped", zap.Int("targets", h.Len()))
	return err
}
