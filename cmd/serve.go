package main

import (
	"context"
	"database/sql"
	"net"
	"os/signal"
	"syscall"
	"time"

	"driver_logsheet/internal/config"
	"driver_logsheet/internal/handlers"
	"driver_logsheet/internal/logger"
	"driver_logsheet/internal/metrics"
	"driver_logsheet/internal/repository"
	"driver_logsheet/internal/repository/db"
	"driver_logsheet/internal/server"
	"driver_logsheet/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var configDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(configDir)
		},
	}
	cmd.Flags().StringVar(&configDir, "config", "configs", "Directory holding config.yml")
	return cmd
}

func serve(configDir string) error {
	loader, err := config.Load(configDir)
	if err != nil {
		return err
	}
	cfg := loader.Config()

	log := logger.Get(cfg.LogLevel)
	log.Infow("config loaded", "file", loader.File(), "port", cfg.Port, "db", cfg.DB.Path)

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer closeDB(conn, log)

	collector := metrics.NewCollector()
	services, err := service.NewService(repository.NewRepository(conn), service.Options{
		Layout:     cfg.Layout,
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Metrics:    collector,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	if cfg.Demo.Seed {
		seedDemo(services, log)
	}

	loader.Watch(func(next config.Config) {
		logger.SetLevel(next.LogLevel)
		if err := services.SetLayout(next.Layout); err != nil {
			log.Warnw("layout reload rejected", "err", err)
			return
		}
		log.Infow("config reloaded", "log_level", next.LogLevel, "hour_width", next.Layout.HourWidth)
	}, func(err error) {
		log.Warnw("config reload failed", "err", err)
	})

	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(collector.Handler()),
		handlers.WithStreamInterval(cfg.WS.DefaultInterval),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Port, apiHandler.InitRoutes(),
		server.WithDrainWindow(shutdownTimeout),
		server.WithListenHook(func(addr net.Addr) {
			log.Infow("http server listening", "addr", addr.String())
		}),
	)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Errorw("http server stopped", "err", err)
		return err
	}
	log.Infow("http server drained")
	return nil
}

func seedDemo(services *service.Service, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	n, err := services.Seed(ctx)
	if err != nil {
		log.Warnw("demo seed failed", "err", err)
		return
	}
	log.Infow("demo trips seeded", "inserted", n)
}

func closeDB(conn *sql.DB, log *logger.Logger) {
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}
