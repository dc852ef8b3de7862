package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

const contractColumns = `c.id, c.customer_id, c.motorbike_id, c.employee_id, c.discount_id, c.rental_date, c.expected_return_date,
	c.actual_return_date, c.total_amount, c.discount_amount, c.deposit_amount, c.late_return_fee, c.late_return_fee_multiplier,
	c.status, c.rental_type, c.is_paid, c.id_card_held, c.notes, c.created_on, c.updated_on`

const contractDetailColumns = contractColumns + `, cu.full_name, cu.phone, m.license_plate, m.brand || ' ' || m.model,
	e.full_name, COALESCE(d.name, '')`

const contractDetailJoins = ` FROM rental_contracts c
	JOIN customers cu ON cu.id = c.customer_id
	JOIN motorbikes m ON m.id = c.motorbike_id
	JOIN employees e ON e.id = c.employee_id
	LEFT JOIN discounts d ON d.id = c.discount_id`

type contractRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewContractRepository(db *sql.DB, clock clockwork.Clock) repository.ContractRepository {
	return &contractRepository{db: db, clock: clock}
}

func contractDest(c *domain.RentalContract) []any {
	return []any{&c.ID, &c.CustomerID, &c.MotorbikeID, &c.EmployeeID, &c.DiscountID, &c.RentalDate, &c.ExpectedReturnDate,
		&c.ActualReturnDate, &c.TotalAmount, &c.DiscountAmount, &c.DepositAmount, &c.LateReturnFee, &c.LateReturnFeeMultiplier,
		&c.Status, &c.RentalType, &c.IsPaid, &c.IDCardHeld, &c.Notes, &c.CreatedOn, &c.UpdatedOn}
}

func scanContractDetail(s scanner, d *domain.ContractDetail) error {
	dest := append(contractDest(&d.RentalContract), &d.CustomerName, &d.CustomerPhone, &d.LicensePlate, &d.MotorbikeName,
		&d.EmployeeName, &d.DiscountName)
	return s.Scan(dest...)
}

func (r *contractRepository) Create(ctx context.Context, c *domain.RentalContract) error {
	now := r.clock.Now()
	query := `INSERT INTO rental_contracts (customer_id, motorbike_id, employee_id, discount_id, rental_date, expected_return_date,
	          total_amount, discount_amount, deposit_amount, late_return_fee_multiplier, status, rental_type, is_paid, id_card_held,
	          notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, c.CustomerID, c.MotorbikeID, c.EmployeeID, c.DiscountID, c.RentalDate,
		c.ExpectedReturnDate, c.TotalAmount, c.DiscountAmount, c.DepositAmount, c.LateReturnFeeMultiplier, c.Status, c.RentalType,
		c.IsPaid, c.IDCardHeld, c.Notes, now, now).Scan(&c.ID)
	if err != nil {
		return err
	}
	c.CreatedOn, c.UpdatedOn = now, now
	return nil
}

func (r *contractRepository) get(ctx context.Context, query string, id int64) (*domain.RentalContract, error) {
	c := &domain.RentalContract{}
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(contractDest(c)...); err != nil {
		return nil, notFound(err, domain.CodeContractNotFound, "contract", id)
	}
	return c, nil
}

func (r *contractRepository) GetByID(ctx context.Context, id int64) (*domain.RentalContract, error) {
	return r.get(ctx, `SELECT `+contractColumns+` FROM rental_contracts c WHERE c.id = $1`, id)
}

func (r *contractRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.RentalContract, error) {
	return r.get(ctx, `SELECT `+contractColumns+` FROM rental_contracts c WHERE c.id = $1 FOR UPDATE`, id)
}

func (r *contractRepository) GetDetail(ctx context.Context, id int64) (*domain.ContractDetail, error) {
	d := &domain.ContractDetail{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+contractDetailColumns+contractDetailJoins+` WHERE c.id = $1`, id)
	if err := scanContractDetail(row, d); err != nil {
		return nil, notFound(err, domain.CodeContractNotFound, "contract", id)
	}
	return d, nil
}

func (r *contractRepository) Update(ctx context.Context, c *domain.RentalContract) error {
	c.UpdatedOn = r.clock.Now()
	query := `UPDATE rental_contracts SET discount_id=$1, actual_return_date=$2, total_amount=$3, discount_amount=$4,
	          deposit_amount=$5, late_return_fee=$6, late_return_fee_multiplier=$7, status=$8, is_paid=$9, id_card_held=$10,
	          notes=$11, updated_on=$12 WHERE id=$13`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, c.DiscountID, c.ActualReturnDate, c.TotalAmount, c.DiscountAmount,
		c.DepositAmount, c.LateReturnFee, c.LateReturnFeeMultiplier, c.Status, c.IsPaid, c.IDCardHeld, c.Notes, c.UpdatedOn, c.ID)
	return expectAffected(res, err, domain.CodeContractNotFound, "contract", c.ID)
}

func (r *contractRepository) List(ctx context.Context, filter domain.ContractFilter) ([]domain.ContractDetail, int, error) {
	where := contractDetailJoins + ` WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	if filter.CustomerID != 0 {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(" AND c.customer_id = $%d", len(args))
	}
	if filter.MotorbikeID != 0 {
		args = append(args, filter.MotorbikeID)
		where += fmt.Sprintf(" AND c.motorbike_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND c.rental_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND c.rental_date < $%d", len(args))
	}

	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT count(*)"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := domain.NormalizePage(filter.Page, filter.PageSize)
	query := "SELECT " + contractDetailColumns + where + fmt.Sprintf(" ORDER BY c.rental_date DESC, c.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contracts []domain.ContractDetail
	for rows.Next() {
		var d domain.ContractDetail
		if err := scanContractDetail(rows, &d); err != nil {
			return nil, 0, err
		}
		contracts = append(contracts, d)
	}
	return contracts, count, rows.Err()
}

func (r *contractRepository) HasOpenContract(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM rental_contracts WHERE customer_id = $1 AND status IN ($2, $3, $4))`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, customerID,
		domain.ContractStatusPending, domain.ContractStatusActive, domain.ContractStatusProcessingIncident).Scan(&exists)
	return exists, err
}

func (r *contractRepository) ListStalePending(ctx context.Context, rentalBefore time.Time) ([]domain.RentalContract, error) {
	query := `SELECT ` + contractColumns + ` FROM rental_contracts c WHERE c.status = $1 AND c.rental_date < $2 ORDER BY c.id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, domain.ContractStatusPending, rentalBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []domain.RentalContract
	for rows.Next() {
		var c domain.RentalContract
		if err := rows.Scan(contractDest(&c)...); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}
