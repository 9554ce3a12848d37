package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"barge-simulator/internal/api"
	"barge-simulator/internal/barge"
	"barge-simulator/internal/config"
	"barge-simulator/internal/fluid"
	"barge-simulator/internal/sim"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	listen     = flag.String("listen", "", "Listen address (overrides config)")
	dev        = flag.Bool("dev", false, "Human-readable log output")
)

func main() {
	flag.Parse()

	logger := newLogger(*dev)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	fl, err := fluid.ByName(cfg.Fluid.Name)
	if err != nil {
		logger.Fatal("resolving fluid", zap.Error(err))
	}
	fl = fl.WithDensity(cfg.Fluid.Density)

	engine := sim.New(sim.Config{
		TickHz: cfg.TickHz,
		Barge: barge.Config{
			Fluid:         fl,
			PontoonWidth:  cfg.Pontoon.Width,
			PontoonHeight: cfg.Pontoon.Height,
			PontoonDepth:  cfg.Pontoon.Depth,
			PontoonWeight: cfg.Pontoon.Weight,
		},
		InitialPontoons: cfg.InitialPontoons,
		InitialItems:    cfg.InitialItems,
	}, logger.Named("engine"))

	server := api.NewServer(engine, logger.Named("api"))

	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return engine.Run(ctx)
	})

	g.Go(func() error {
		logger.Info("starting HTTP server",
			zap.String("listen", cfg.Listen),
			zap.String("fluid", fl.Name),
			zap.Float64("tickHz", cfg.TickHz))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func newLogger(dev bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
