// Package app assembles repositories, services and jobs from configuration.
// Both the API server and the cron runner build on it.
package app

import (
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	httpapi "motorent-backoffice/internal/api/http"
	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/gateway"
	"motorent-backoffice/internal/jobs"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/o11y"
	"motorent-backoffice/internal/repository/postgres"
	"motorent-backoffice/internal/security"
	"motorent-backoffice/internal/service"
	"motorent-backoffice/internal/storage"
)

type App struct {
	Config   *config.Config
	Store    *postgres.Store
	Tokens   security.TokenManager
	Storage  storage.Storage
	Services httpapi.Services
	Jobs     *jobs.Services
}

// New wires every service over db. metrics may be nil.
func New(cfg *config.Config, db *sql.DB, metrics *o11y.Metrics, clock clockwork.Clock) (*App, error) {
	store := postgres.NewStore(db, clock)
	repos := service.Repositories{
		Tx:           store.Tx,
		Categories:   store.Categories,
		PriceLists:   store.PriceLists,
		Motorbikes:   store.Motorbikes,
		Customers:    store.Customers,
		Employees:    store.Employees,
		Contracts:    store.Contracts,
		Discounts:    store.Discounts,
		Incidents:    store.Incidents,
		Maintenances: store.Maintenances,
		Payments:     store.Payments,
	}

	mailer, err := service.NewMailer(cfg.Mail)
	if err != nil {
		return nil, fmt.Errorf("failed to configure mailer: %w", err)
	}
	emailSvc := service.NewEmailService(mailer)
	logger.Info("Mail configuration", "provider", cfg.Mail.Provider)

	blobs, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to configure storage: %w", err)
	}
	logger.Info("Storage configuration", "type", cfg.Storage.Type)

	var gw gateway.Gateway = gateway.Manual{}
	if cfg.Payment.StripeSecretKey != "" {
		gw = gateway.NewStripe(cfg.Payment.StripeSecretKey, cfg.Payment.Currency)
		logger.Info("Card payments via Stripe", "currency", cfg.Payment.Currency)
	} else {
		logger.Info("Card payments recorded manually")
	}

	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL(), clock)

	discounts := service.NewDiscountService(store.Discounts, store.Categories, store.Tx, metrics, clock)
	contracts := service.NewContractService(repos, emailSvc, metrics, clock, service.ContractRules{
		LateFeeMultiplier:   decimal.NewFromFloat(cfg.Pricing.LateFeeMultiplier),
		ActivationTolerance: cfg.Pricing.ActivationTolerance(),
		ActivationWindow:    cfg.Pricing.ActivationWindow(),
	})

	return &App{
		Config:  cfg,
		Store:   store,
		Tokens:  tokens,
		Storage: blobs,
		Services: httpapi.Services{
			Auth:         service.NewAuthService(store.Employees, store.Tx, tokens, emailSvc, clock, cfg.Mail.ResetURL, cfg.JWT.ResetTTL()),
			Employees:    service.NewEmployeeService(store.Employees),
			Catalog:      service.NewCatalogService(store.Categories, store.PriceLists),
			Motorbikes:   service.NewMotorbikeService(store.Motorbikes, store.Categories, store.PriceLists, blobs, ImageRules(cfg.Storage), clock),
			Customers:    service.NewCustomerService(store.Customers),
			Discounts:    discounts,
			Contracts:    contracts,
			Incidents:    service.NewIncidentService(repos, clock),
			Payments:     service.NewPaymentService(repos, gw, emailSvc, metrics, clock),
			Maintenances: service.NewMaintenanceService(repos, clock),
		},
		Jobs: &jobs.Services{
			Discount: discounts,
			Contract: contracts,
		},
	}, nil
}

func ImageRules(cfg config.StorageConfig) service.ImageRules {
	return service.ImageRules{
		MaxBytes:          cfg.MaxFileSizeMB << 20,
		AllowedExtensions: cfg.AllowedExtensions,
	}
}

// FileOpener returns the local store for the /files route, or nil when
// images are served by a remote provider.
func (a *App) FileOpener() httpapi.FileOpener {
	if local, ok := a.Storage.(*storage.LocalStorage); ok {
		return local
	}
	return nil
}
