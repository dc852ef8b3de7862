package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/app"
	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/jobs"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/o11y"
	"motorent-backoffice/internal/repository/postgres"
	"motorent-backoffice/internal/scheduler"
)

var cli = struct {
	Config  string `name:"config" short:"c" env:"CONFIG_PATH" default:"config/config.dev.yaml" help:"Path to configuration file."`
	RunOnce string `name:"run-once" enum:",expire-discounts,cancel-stale-contracts,all" default:"" help:"Run one job (expire-discounts, cancel-stale-contracts or all) and exit."`
}{}

func main() {
	kong.Parse(&cli, kong.Description("Motorbike rental back-office job runner."))
	if err := run(); err != nil {
		log.Fatalf("cronjob error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting motorent cronjob runner...", "log_level", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	a, err := app.New(cfg, db, obs.Metrics, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	jobRunner := jobs.NewJobRunner(a.Jobs, cfg)

	if cli.RunOnce != "" {
		logger.Info("Running job once", "job", cli.RunOnce)
		runJobOnce(jobRunner, cli.RunOnce)
		logger.Info("Job execution completed", "job", cli.RunOnce)
		return nil
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		return err
	}
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	<-ctx.Done()
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	return nil
}

func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "expire-discounts":
		jobRunner.ExpireDiscounts()
	case "cancel-stale-contracts":
		jobRunner.CancelStalePendingContracts()
	case "all":
		jobRunner.RunAll()
	}
}
