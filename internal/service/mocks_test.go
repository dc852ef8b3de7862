package service_test

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/gateway"
	"motorent-backoffice/internal/service"
)

// MockTx hands back the caller's context so repository expectations can
// match on mock.Anything.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return ctx, args.Error(0)
}
func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newMockTx() *MockTx {
	tx := new(MockTx)
	tx.On("Begin", mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)
	return tx
}

// MockCategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCategoryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) CountExisting(ctx context.Context, ids []int64) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

// MockPriceListRepo
type MockPriceListRepo struct {
	mock.Mock
}

func (m *MockPriceListRepo) Create(ctx context.Context, p *domain.PriceList) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPriceListRepo) GetByID(ctx context.Context, id int64) (*domain.PriceList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceList), args.Error(1)
}
func (m *MockPriceListRepo) Update(ctx context.Context, p *domain.PriceList) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPriceListRepo) List(ctx context.Context) ([]domain.PriceList, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PriceList), args.Error(1)
}

// MockMotorbikeRepo
type MockMotorbikeRepo struct {
	mock.Mock
}

func (m *MockMotorbikeRepo) Create(ctx context.Context, b *domain.Motorbike) error {
	return m.Called(ctx, b).Error(0)
}
func (m *MockMotorbikeRepo) GetByID(ctx context.Context, id int64) (*domain.Motorbike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Motorbike), args.Error(1)
}
func (m *MockMotorbikeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Motorbike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Motorbike), args.Error(1)
}
func (m *MockMotorbikeRepo) GetByLicensePlate(ctx context.Context, plate string) (*domain.Motorbike, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Motorbike), args.Error(1)
}
func (m *MockMotorbikeRepo) Update(ctx context.Context, b *domain.Motorbike) error {
	return m.Called(ctx, b).Error(0)
}
func (m *MockMotorbikeRepo) UpdateStatus(ctx context.Context, id int64, status domain.MotorbikeStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockMotorbikeRepo) UpdateImage(ctx context.Context, id int64, key string) error {
	return m.Called(ctx, id, key).Error(0)
}
func (m *MockMotorbikeRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockMotorbikeRepo) List(ctx context.Context, filter domain.MotorbikeFilter) ([]domain.Motorbike, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Motorbike), args.Int(1), args.Error(2)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Customer), args.Int(1), args.Error(2)
}

// MockEmployeeRepo
type MockEmployeeRepo struct {
	mock.Mock
}

func (m *MockEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeRepo) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	return m.Called(ctx, id, role).Error(0)
}
func (m *MockEmployeeRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}
func (m *MockEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Employee), args.Error(1)
}
func (m *MockEmployeeRepo) CreatePasswordReset(ctx context.Context, pr *domain.PasswordReset) error {
	return m.Called(ctx, pr).Error(0)
}
func (m *MockEmployeeRepo) GetPasswordResetByHash(ctx context.Context, hash string) (*domain.PasswordReset, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordReset), args.Error(1)
}
func (m *MockEmployeeRepo) MarkPasswordResetUsed(ctx context.Context, id int64, usedAt time.Time) error {
	return m.Called(ctx, id, usedAt).Error(0)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, c *domain.RentalContract) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id int64) (*domain.RentalContract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalContract), args.Error(1)
}
func (m *MockContractRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.RentalContract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalContract), args.Error(1)
}
func (m *MockContractRepo) GetDetail(ctx context.Context, id int64) (*domain.ContractDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractDetail), args.Error(1)
}
func (m *MockContractRepo) Update(ctx context.Context, c *domain.RentalContract) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockContractRepo) List(ctx context.Context, filter domain.ContractFilter) ([]domain.ContractDetail, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ContractDetail), args.Int(1), args.Error(2)
}
func (m *MockContractRepo) HasOpenContract(ctx context.Context, customerID int64) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockContractRepo) ListStalePending(ctx context.Context, before time.Time) ([]domain.RentalContract, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.RentalContract), args.Error(1)
}

// MockDiscountRepo
type MockDiscountRepo struct {
	mock.Mock
}

func (m *MockDiscountRepo) Create(ctx context.Context, d *domain.Discount) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDiscountRepo) GetByID(ctx context.Context, id int64) (*domain.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discount), args.Error(1)
}
func (m *MockDiscountRepo) Update(ctx context.Context, d *domain.Discount) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDiscountRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockDiscountRepo) List(ctx context.Context, filter domain.DiscountFilter) ([]domain.Discount, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Discount), args.Int(1), args.Error(2)
}
func (m *MockDiscountRepo) DeactivateExpired(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]int64), args.Error(1)
}

// MockIncidentRepo
type MockIncidentRepo struct {
	mock.Mock
}

func (m *MockIncidentRepo) Create(ctx context.Context, i *domain.Incident) error {
	return m.Called(ctx, i).Error(0)
}
func (m *MockIncidentRepo) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}
func (m *MockIncidentRepo) GetByContractID(ctx context.Context, contractID int64) (*domain.Incident, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}
func (m *MockIncidentRepo) Update(ctx context.Context, i *domain.Incident) error {
	return m.Called(ctx, i).Error(0)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, r *domain.Maintenance) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) Update(ctx context.Context, r *domain.Maintenance) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockMaintenanceRepo) ListByMotorbike(ctx context.Context, motorbikeID int64) ([]domain.Maintenance, error) {
	args := m.Called(ctx, motorbikeID)
	return args.Get(0).([]domain.Maintenance), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepo) GetByContractID(ctx context.Context, contractID int64) (*domain.Payment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Payment), args.Int(1), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendContractConfirmation(ctx context.Context, customer *domain.Customer, contract *domain.ContractDetail) error {
	return m.Called(ctx, customer, contract).Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, customer *domain.Customer, contract *domain.ContractDetail, payment *domain.Payment) error {
	return m.Called(ctx, customer, contract, payment).Error(0)
}
func (m *MockEmailService) SendPasswordReset(ctx context.Context, employee *domain.Employee, link string, expiresAt time.Time) error {
	return m.Called(ctx, employee, link, expiresAt).Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.ChargeResult), args.Error(1)
}
func (m *MockGateway) Refund(ctx context.Context, reference string) error {
	return m.Called(ctx, reference).Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	return m.Called(ctx, key, r, contentType).Error(0)
}
func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *MockStorage) URL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// nopMetrics satisfies service.Metrics.
type nopMetrics struct{}

func (nopMetrics) ContractCreated(string, string)           {}
func (nopMetrics) ContractSettled()                         {}
func (nopMetrics) ContractCancelled(string)                 {}
func (nopMetrics) PaymentProcessed(string, decimal.Decimal) {}
func (nopMetrics) DiscountsExpired(int)                     {}

type testRepos struct {
	tx           *MockTx
	categories   *MockCategoryRepo
	priceLists   *MockPriceListRepo
	motorbikes   *MockMotorbikeRepo
	customers    *MockCustomerRepo
	employees    *MockEmployeeRepo
	contracts    *MockContractRepo
	discounts    *MockDiscountRepo
	incidents    *MockIncidentRepo
	maintenances *MockMaintenanceRepo
	payments     *MockPaymentRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		tx:           newMockTx(),
		categories:   new(MockCategoryRepo),
		priceLists:   new(MockPriceListRepo),
		motorbikes:   new(MockMotorbikeRepo),
		customers:    new(MockCustomerRepo),
		employees:    new(MockEmployeeRepo),
		contracts:    new(MockContractRepo),
		discounts:    new(MockDiscountRepo),
		incidents:    new(MockIncidentRepo),
		maintenances: new(MockMaintenanceRepo),
		payments:     new(MockPaymentRepo),
	}
}

func (r *testRepos) Repositories() service.Repositories {
	return service.Repositories{
		Tx:           r.tx,
		Categories:   r.categories,
		PriceLists:   r.priceLists,
		Motorbikes:   r.motorbikes,
		Customers:    r.customers,
		Employees:    r.employees,
		Contracts:    r.contracts,
		Discounts:    r.discounts,
		Incidents:    r.incidents,
		Maintenances: r.maintenances,
		Payments:     r.payments,
	}
}

func decimalNull(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}
