package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

const paymentColumns = `id, contract_id, amount, payment_date, method, reference, employee_id, notes, created_on`

type paymentRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewPaymentRepository(db *sql.DB, clock clockwork.Clock) repository.PaymentRepository {
	return &paymentRepository{db: db, clock: clock}
}

func scanPayment(s scanner, p *domain.Payment) error {
	return s.Scan(&p.ID, &p.ContractID, &p.Amount, &p.PaymentDate, &p.Method, &p.Reference, &p.EmployeeID, &p.Notes, &p.CreatedOn)
}

// Create fails with PAYMENT_ALREADY_EXISTS when the contract was paid
// concurrently; contract_id is unique.
func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	p.CreatedOn = r.clock.Now()
	query := `INSERT INTO payments (contract_id, amount, payment_date, method, reference, employee_id, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, p.ContractID, p.Amount, p.PaymentDate, p.Method, p.Reference, p.EmployeeID,
		p.Notes, p.CreatedOn).Scan(&p.ID)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return domain.BusinessRule(domain.CodePaymentExists, "contract %d already has a payment", p.ContractID)
		}
		return err
	}
	return nil
}

func (r *paymentRepository) GetByContractID(ctx context.Context, contractID int64) (*domain.Payment, error) {
	p := &domain.Payment{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE contract_id = $1`, contractID)
	if err := scanPayment(row, p); err != nil {
		return nil, notFound(err, domain.CodePaymentNotFound, "payment for contract", contractID)
	}
	return p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, int, error) {
	where := ` FROM payments WHERE 1=1`
	var args []any
	if filter.Method != "" {
		args = append(args, filter.Method)
		where += fmt.Sprintf(" AND method = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND payment_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND payment_date < $%d", len(args))
	}

	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT count(*)"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := domain.NormalizePage(filter.Page, filter.PageSize)
	query := "SELECT " + paymentColumns + where + fmt.Sprintf(" ORDER BY payment_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, count, rows.Err()
}
