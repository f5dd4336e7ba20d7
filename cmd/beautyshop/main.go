package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"beautyshop/internal/config"
	"beautyshop/internal/http/handlers"
	applog "beautyshop/internal/log"
	"beautyshop/internal/metrics"
	"beautyshop/internal/repos"
)

func main() {
	if err := run(); err != nil {
		applog.L().Fatal().Err(err).Msg("beautyshop stopped")
	}
}

// run owns every resource it opens so deferred closes happen before main
// exits on error.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("[config] invalid configuration: %w", err)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			applog.L().Warn().Err(err).Str("log_file", cfg.LogFile).Msg("could not open log file")
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Init(cfg.IsProduction(), cfg.LogLevel, out)

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open database %q: %w", cfg.DBDSN, err)
	}
	defer db.Close()

	if cfg.SeedDemo {
		if err := repos.SeedDemo(context.Background(), db); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	if cfg.AdminKey == "" {
		applog.L().Warn().Msg("ADMIN_API_KEY is not set; admin routes will refuse every request")
	}

	m := metrics.New(prometheus.NewRegistry())
	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, m))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		applog.L().Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			applog.L().Error().Err(err).Msg("shutdown")
		}
	}()

	applog.L().Info().Str("port", cfg.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
