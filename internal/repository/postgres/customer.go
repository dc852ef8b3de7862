package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

const customerColumns = `id, full_name, phone, email, id_card_number, address, created_on, updated_on`

type customerRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewCustomerRepository(db *sql.DB, clock clockwork.Clock) repository.CustomerRepository {
	return &customerRepository{db: db, clock: clock}
}

func scanCustomer(s scanner, c *domain.Customer) error {
	return s.Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.IDCardNumber, &c.Address, &c.CreatedOn, &c.UpdatedOn)
}

// customerDuplicate names the column behind a unique violation.
func customerDuplicate(err error) error {
	constraint, ok := isUniqueViolation(err)
	if !ok {
		return err
	}
	if constraint == "customers_id_card_number_key" {
		return domain.Validation(domain.CodeDuplicate, "id card number already exists")
	}
	return domain.Validation(domain.CodeDuplicate, "phone number already exists")
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	now := r.clock.Now()
	query := `INSERT INTO customers (full_name, phone, email, id_card_number, address, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, c.FullName, c.Phone, c.Email, c.IDCardNumber, c.Address, now, now).Scan(&c.ID)
	if err != nil {
		return customerDuplicate(err)
	}
	c.CreatedOn, c.UpdatedOn = now, now
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c := &domain.Customer{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if err := scanCustomer(row, c); err != nil {
		return nil, notFound(err, domain.CodeCustomerNotFound, "customer", id)
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedOn = r.clock.Now()
	query := `UPDATE customers SET full_name=$1, phone=$2, email=$3, id_card_number=$4, address=$5, updated_on=$6 WHERE id=$7`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, c.FullName, c.Phone, c.Email, c.IDCardNumber, c.Address, c.UpdatedOn, c.ID)
	return expectAffected(res, customerDuplicate(err), domain.CodeCustomerNotFound, "customer", c.ID)
}

func (r *customerRepository) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error) {
	where := ` FROM customers WHERE 1=1`
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += " AND (full_name ILIKE $1 OR phone ILIKE $1 OR id_card_number ILIKE $1)"
	}

	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT count(*)"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := domain.NormalizePage(filter.Page, filter.PageSize)
	query := "SELECT " + customerColumns + where + fmt.Sprintf(" ORDER BY full_name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, count, rows.Err()
}
