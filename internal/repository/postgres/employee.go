package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

const employeeColumns = `id, full_name, email, phone, role, password_hash, is_active, created_on, updated_on`

type employeeRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewEmployeeRepository(db *sql.DB, clock clockwork.Clock) repository.EmployeeRepository {
	return &employeeRepository{db: db, clock: clock}
}

func scanEmployee(s scanner, e *domain.Employee) error {
	return s.Scan(&e.ID, &e.FullName, &e.Email, &e.Phone, &e.Role, &e.PasswordHash, &e.IsActive, &e.CreatedOn, &e.UpdatedOn)
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	now := r.clock.Now()
	query := `INSERT INTO employees (full_name, email, phone, role, password_hash, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, e.FullName, e.Email, e.Phone, e.Role, e.PasswordHash, e.IsActive, now, now).Scan(&e.ID)
	if err != nil {
		return duplicate(err, "email")
	}
	e.CreatedOn, e.UpdatedOn = now, now
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	e := &domain.Employee{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	if err := scanEmployee(row, e); err != nil {
		return nil, notFound(err, domain.CodeEmployeeNotFound, "employee", id)
	}
	return e, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	e := &domain.Employee{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE lower(email) = lower($1)`, email)
	if err := scanEmployee(row, e); err != nil {
		return nil, notFound(err, domain.CodeEmployeeNotFound, "employee", email)
	}
	return e, nil
}

func (r *employeeRepository) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE employees SET role=$1, updated_on=$2 WHERE id=$3`, role, r.clock.Now(), id)
	return expectAffected(res, err, domain.CodeEmployeeNotFound, "employee", id)
}

func (r *employeeRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE employees SET password_hash=$1, updated_on=$2 WHERE id=$3`, passwordHash, r.clock.Now(), id)
	return expectAffected(res, err, domain.CodeEmployeeNotFound, "employee", id)
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) CreatePasswordReset(ctx context.Context, pr *domain.PasswordReset) error {
	pr.CreatedOn = r.clock.Now()
	query := `INSERT INTO password_resets (employee_id, token_hash, expires_at, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, pr.EmployeeID, pr.TokenHash, pr.ExpiresAt, pr.CreatedOn).Scan(&pr.ID)
}

func (r *employeeRepository) GetPasswordResetByHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error) {
	pr := &domain.PasswordReset{}
	query := `SELECT id, employee_id, token_hash, expires_at, used_at, created_on FROM password_resets WHERE token_hash = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, tokenHash).Scan(&pr.ID, &pr.EmployeeID, &pr.TokenHash, &pr.ExpiresAt, &pr.UsedAt, &pr.CreatedOn)
	if err != nil {
		return nil, notFound(err, domain.CodeInvalidToken, "reset token", "")
	}
	return pr, nil
}

func (r *employeeRepository) MarkPasswordResetUsed(ctx context.Context, id int64, usedAt time.Time) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE password_resets SET used_at=$1 WHERE id=$2 AND used_at IS NULL`, usedAt, id)
	return expectAffected(res, err, domain.CodeInvalidToken, "reset token", id)
}
