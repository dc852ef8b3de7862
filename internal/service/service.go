package service

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type EmployeeService interface {
	Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	AssignRole(ctx context.Context, actorID, employeeID int64, role domain.Role) (*domain.Employee, error)
}

type CatalogService interface {
	CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)

	CreatePriceList(ctx context.Context, in PriceListInput) (*domain.PriceList, error)
	GetPriceList(ctx context.Context, id int64) (*domain.PriceList, error)
	UpdatePriceList(ctx context.Context, id int64, in PriceListInput) (*domain.PriceList, error)
	ListPriceLists(ctx context.Context) ([]domain.PriceList, error)
}

type MotorbikeService interface {
	Create(ctx context.Context, in MotorbikeInput) (*domain.Motorbike, error)
	Get(ctx context.Context, id int64) (*domain.Motorbike, error)
	Update(ctx context.Context, id int64, in MotorbikeInput) (*domain.Motorbike, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.MotorbikeFilter) ([]domain.Motorbike, int, error)
	ChangeStatus(ctx context.Context, id int64, status domain.MotorbikeStatus) (*domain.Motorbike, error)
	UploadImage(ctx context.Context, id int64, filename string, size int64, contentType string, r io.Reader) (*domain.Motorbike, error)
	DeleteImage(ctx context.Context, id int64) error
	// ImageURL resolves a stored image key, returning "" for no image.
	ImageURL(ctx context.Context, key string) string
}

type CustomerService interface {
	Create(ctx context.Context, in CustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in CustomerInput) (*domain.Customer, error)
	List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error)
}

type DiscountService interface {
	Create(ctx context.Context, in DiscountInput) (*domain.Discount, error)
	Get(ctx context.Context, id int64) (*domain.Discount, error)
	Update(ctx context.Context, id int64, in DiscountInput) (*domain.Discount, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DiscountFilter) ([]domain.Discount, int, error)
	ExpireDiscounts(ctx context.Context) (int, error)
}

type ContractService interface {
	Quote(ctx context.Context, in QuoteInput) (*domain.PriceQuote, error)
	Create(ctx context.Context, employeeID int64, in CreateContractInput) (*domain.ContractDetail, error)
	Get(ctx context.Context, id int64) (*domain.ContractDetail, error)
	List(ctx context.Context, filter domain.ContractFilter) ([]domain.ContractDetail, int, error)
	Activate(ctx context.Context, id int64) (*domain.ContractDetail, error)
	Cancel(ctx context.Context, id int64, reason string) (*domain.ContractDetail, error)
	Settle(ctx context.Context, id int64, in SettleContractInput) (*domain.SettlementBreakdown, error)
	CancelStalePending(ctx context.Context) (int, error)
}

type IncidentService interface {
	Report(ctx context.Context, contractID int64, in ReportIncidentInput) (*domain.Incident, error)
	Resolve(ctx context.Context, id int64, in ResolveIncidentInput) (*domain.Incident, error)
	Get(ctx context.Context, id int64) (*domain.Incident, error)
}

type PaymentService interface {
	Preview(ctx context.Context, contractID int64) (*domain.SettlementBreakdown, error)
	Process(ctx context.Context, employeeID, contractID int64, in ProcessPaymentInput) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, int, error)
}

type MaintenanceService interface {
	Create(ctx context.Context, in CreateMaintenanceInput) (*domain.Maintenance, error)
	Complete(ctx context.Context, id int64, in CompleteMaintenanceInput) (*domain.Maintenance, error)
	ListByMotorbike(ctx context.Context, motorbikeID int64) ([]domain.Maintenance, error)
}

type EmailService interface {
	SendContractConfirmation(ctx context.Context, customer *domain.Customer, contract *domain.ContractDetail) error
	SendPaymentReceipt(ctx context.Context, customer *domain.Customer, contract *domain.ContractDetail, payment *domain.Payment) error
	SendPasswordReset(ctx context.Context, employee *domain.Employee, resetLink string, expiresAt time.Time) error
}

// Metrics is the slice of o11y.Metrics the services record into.
type Metrics interface {
	ContractCreated(rentalType, status string)
	ContractSettled()
	ContractCancelled(trigger string)
	PaymentProcessed(method string, amount decimal.Decimal)
	DiscountsExpired(n int)
}

// Repositories bundles the stores the transactional services share.
type Repositories struct {
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
