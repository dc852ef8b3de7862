package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"

	grpcapi "motorent-backoffice/internal/api/grpc"
	httpapi "motorent-backoffice/internal/api/http"
	"motorent-backoffice/internal/app"
	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/jobs"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/o11y"
	"motorent-backoffice/internal/repository/postgres"
	"motorent-backoffice/internal/scheduler"
)

var cli = struct {
	Config       string `name:"config" short:"c" env:"CONFIG_PATH" default:"config/config.dev.yaml" help:"Path to configuration file."`
	Migrate      bool   `name:"migrate" help:"Apply the database schema before serving."`
	NoScheduler  bool   `name:"no-scheduler" help:"Do not run background jobs in this process."`
	HealthPeriod int    `name:"health-period" default:"15" help:"Seconds between database health probes."`
}{}

func main() {
	kong.Parse(&cli, kong.Description("Motorbike rental back-office API server."))
	if err := run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting motorent back-office...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http", cfg.GetServerAddress(), "grpc", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "driver", cfg.Database.Driver, "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)

	obs, cleanup, err := o11y.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer cleanup(context.Background())

	db, err := postgres.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("Database connection established")

	if cli.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("Database schema applied")
	}

	a, err := app.New(cfg, db, obs.Metrics, clockwork.NewRealClock())
	if err != nil {
		return err
	}

	api := httpapi.NewServer(a.Services, httpapi.Options{
		Tokens:         a.Tokens,
		Metrics:        obs.Metrics,
		Gatherer:       obs.Registry,
		Files:          a.FileOpener(),
		DB:             db,
		MaxUploadBytes: app.ImageRules(cfg.Storage).MaxBytes,
	})
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpcapi.NewServer(db)
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("gRPC health server listening", "address", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()
	go grpcServer.Monitor(ctx, time.Duration(cli.HealthPeriod)*time.Second)

	var sched *scheduler.Scheduler
	if !cli.NoScheduler {
		sched, err = scheduler.NewScheduler(jobs.NewJobRunner(a.Jobs, cfg))
		if err != nil {
			return err
		}
		sched.Start()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		logger.Error("Listener failed", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop()
	}
	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
