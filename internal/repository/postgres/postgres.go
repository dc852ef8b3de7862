package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"

	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/repository"
)

// Store groups every repository over one connection pool.
type Store struct {
	db *sql.DB

	Tx           repository.TxManager
	Categories   repository.CategoryRepository
	PriceLists   repository.PriceListRepository
	Motorbikes   repository.MotorbikeRepository
	Customers    repository.CustomerRepository
	Employees    repository.EmployeeRepository
	Contracts    repository.ContractRepository
	Discounts    repository.DiscountRepository
	Incidents    repository.IncidentRepository
	Maintenances repository.MaintenanceRepository
	Payments     repository.PaymentRepository
}

func NewStore(db *sql.DB, clock clockwork.Clock) *Store {
	return &Store{
		db:           db,
		Tx:           NewTxManager(db),
		Categories:   NewCategoryRepository(db, clock),
		PriceLists:   NewPriceListRepository(db, clock),
		Motorbikes:   NewMotorbikeRepository(db, clock),
		Customers:    NewCustomerRepository(db, clock),
		Employees:    NewEmployeeRepository(db, clock),
		Contracts:    NewContractRepository(db, clock),
		Discounts:    NewDiscountRepository(db, clock),
		Incidents:    NewIncidentRepository(db, clock),
		Maintenances: NewMaintenanceRepository(db, clock),
		Payments:     NewPaymentRepository(db, clock),
	}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Open connects with the configured driver: "postgres" uses lib/pq and
// "pgx" uses the pgx stdlib adapter.
func Open(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Database.Driver, cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
