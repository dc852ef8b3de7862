package main

import (
	"context"
	"log"
	"math/rand"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/repository/postgres"
	"motorent-backoffice/internal/seed"
)

var cli = struct {
	Config  string `name:"config" short:"c" env:"CONFIG_PATH" default:"config/config.dev.yaml" help:"Path to configuration file."`
	Data    string `name:"data" type:"existingfile" help:"Seed data YAML. Defaults to the bundled demo set."`
	Seed    int64  `name:"seed" default:"1" help:"Random seed for generated motorbikes and customers."`
	Migrate bool   `name:"migrate" help:"Apply the database schema first."`
}{}

func main() {
	kong.Parse(&cli, kong.Description("Load demo data into the back-office database."))
	if err := run(); err != nil {
		log.Fatalf("seed error: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data, err := loadData()
	if err != nil {
		return err
	}

	db, err := postgres.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cli.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	clock := clockwork.NewRealClock()
	store := postgres.NewStore(db, clock)
	seeder := seed.New(seed.Repositories{
		Tx:         store.Tx,
		Employees:  store.Employees,
		Categories: store.Categories,
		PriceLists: store.PriceLists,
		Motorbikes: store.Motorbikes,
		Customers:  store.Customers,
		Discounts:  store.Discounts,
	}, rand.New(rand.NewSource(cli.Seed)), clock)

	_, err = seeder.Run(ctx, data)
	return err
}

func loadData() (*seed.Data, error) {
	if cli.Data == "" {
		return seed.Default()
	}
	raw, err := os.ReadFile(cli.Data)
	if err != nil {
		return nil, err
	}
	return seed.Parse(raw)
}
