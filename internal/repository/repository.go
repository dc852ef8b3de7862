package repository

import (
	"context"
	"time"

	"motorent-backoffice/internal/domain"
)

// TxManager runs explicit transactions. Begin returns a context carrying
// the transaction; repositories called with that context join it. Rollback
// after Commit is a no-op, so callers defer it.
type TxManager interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Category, error)
	CountExisting(ctx context.Context, ids []int64) (int, error)
}

type PriceListRepository interface {
	Create(ctx context.Context, p *domain.PriceList) error
	GetByID(ctx context.Context, id int64) (*domain.PriceList, error)
	Update(ctx context.Context, p *domain.PriceList) error
	List(ctx context.Context) ([]domain.PriceList, error)
}

type MotorbikeRepository interface {
	Create(ctx context.Context, m *domain.Motorbike) error
	GetByID(ctx context.Context, id int64) (*domain.Motorbike, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Motorbike, error)
	GetByLicensePlate(ctx context.Context, plate string) (*domain.Motorbike, error)
	Update(ctx context.Context, m *domain.Motorbike) error
	UpdateStatus(ctx context.Context, id int64, status domain.MotorbikeStatus) error
	UpdateImage(ctx context.Context, id int64, imageKey string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.MotorbikeFilter) ([]domain.Motorbike, int, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context) ([]domain.Employee, error)

	CreatePasswordReset(ctx context.Context, pr *domain.PasswordReset) error
	GetPasswordResetByHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error)
	MarkPasswordResetUsed(ctx context.Context, id int64, usedAt time.Time) error
}

type ContractRepository interface {
	Create(ctx context.Context, c *domain.RentalContract) error
	GetByID(ctx context.Context, id int64) (*domain.RentalContract, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.RentalContract, error)
	GetDetail(ctx context.Context, id int64) (*domain.ContractDetail, error)
	Update(ctx context.Context, c *domain.RentalContract) error
	List(ctx context.Context, filter domain.ContractFilter) ([]domain.ContractDetail, int, error)
	HasOpenContract(ctx context.Context, customerID int64) (bool, error)
	ListStalePending(ctx context.Context, rentalBefore time.Time) ([]domain.RentalContract, error)
}

type DiscountRepository interface {
	Create(ctx context.Context, d *domain.Discount) error
	GetByID(ctx context.Context, id int64) (*domain.Discount, error)
	Update(ctx context.Context, d *domain.Discount) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DiscountFilter) ([]domain.Discount, int, error)
	// DeactivateExpired flips IsActive off on every discount whose EndDate
	// is before now and returns the affected ids.
	DeactivateExpired(ctx context.Context, now time.Time) ([]int64, error)
}

type IncidentRepository interface {
	Create(ctx context.Context, i *domain.Incident) error
	GetByID(ctx context.Context, id int64) (*domain.Incident, error)
	GetByContractID(ctx context.Context, contractID int64) (*domain.Incident, error)
	Update(ctx context.Context, i *domain.Incident) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) error
	GetByID(ctx context.Context, id int64) (*domain.Maintenance, error)
	Update(ctx context.Context, m *domain.Maintenance) error
	ListByMotorbike(ctx context.Context, motorbikeID int64) ([]domain.Maintenance, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByContractID(ctx context.Context, contractID int64) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, int, error)
}
