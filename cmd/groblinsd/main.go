package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ryholmdahl/groblins/internal/config"
	gonet "github.com/ryholmdahl/groblins/internal/net"
	"github.com/ryholmdahl/groblins/internal/persist"
	"github.com/ryholmdahl/groblins/internal/sim"
	"github.com/ryholmdahl/groblins/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/groblins.toml"
	if p := os.Getenv("GROBLINS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	db, err := persist.Open(cfg.Persist.Path)
	if err != nil {
		return fmt.Errorf("open save database: %w", err)
	}
	defer db.Close()

	w, err := world.New(cfg.World, world.Deps{Logger: log.Named("world")})
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}

	saved, err := db.LoadSnapshot()
	switch {
	case err == nil:
		w.Restore(saved)
		log.Info("world restored",
			zap.Uint64("tick", saved.Tick),
			zap.String("entities", humanize.Comma(int64(len(saved.Entities)))))
	case errors.Is(err, persist.ErrNoSave):
		w.Generate(cfg.Generation)
	default:
		return fmt.Errorf("load snapshot: %w", err)
	}

	initial := w.Snapshot()

	var hub *gonet.Hub
	loop := sim.New(w, log.Named("sim"), cfg.Server.TickRate, func(s world.Snapshot) {
		hub.Broadcast(s)
	})
	hub = gonet.NewHub(loop, log.Named("net"))

	stop := make(chan struct{})
	go loop.Run(stop)

	saveInterval := time.Duration(cfg.Persist.IntervalSeconds) * time.Second
	if saveInterval <= 0 {
		saveInterval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(saveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if s, ok := hub.Latest(); ok {
					if err := db.SaveSnapshot(s, time.Now().Unix()); err != nil {
						log.Error("periodic save failed", zap.Error(err))
					}
				}
			}
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Server.BindAddress,
		Handler: gonet.NewMux(hub, log.Named("http")),
	}
	srvErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	log.Info("server started",
		zap.String("bind", cfg.Server.BindAddress),
		zap.Int("tick_rate", cfg.Server.TickRate),
		zap.String("seed", cfg.World.Normalized().Seed))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-srvErr:
		close(stop)
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigs:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}

	final := initial
	if s, ok := hub.Latest(); ok {
		final = s
	}
	if err := db.SaveSnapshot(final, time.Now().Unix()); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	log.Info("world saved",
		zap.Uint64("tick", final.Tick),
		zap.String("entities", humanize.Comma(int64(len(final.Entities)))))
	return nil
}
