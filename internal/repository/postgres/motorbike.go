package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

const motorbikeColumns = `id, license_plate, brand, model, year, color, category_id, price_list_id, status, image_key, description, created_on, updated_on`

type motorbikeRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewMotorbikeRepository(db *sql.DB, clock clockwork.Clock) repository.MotorbikeRepository {
	return &motorbikeRepository{db: db, clock: clock}
}

func scanMotorbike(s scanner, m *domain.Motorbike) error {
	return s.Scan(&m.ID, &m.LicensePlate, &m.Brand, &m.Model, &m.Year, &m.Color, &m.CategoryID, &m.PriceListID,
		&m.Status, &m.ImageKey, &m.Description, &m.CreatedOn, &m.UpdatedOn)
}

func (r *motorbikeRepository) Create(ctx context.Context, m *domain.Motorbike) error {
	now := r.clock.Now()
	query := `INSERT INTO motorbikes (license_plate, brand, model, year, color, category_id, price_list_id, status, image_key, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, m.LicensePlate, m.Brand, m.Model, m.Year, m.Color, m.CategoryID,
		m.PriceListID, m.Status, m.ImageKey, m.Description, now, now).Scan(&m.ID)
	if err != nil {
		return duplicate(err, "license plate")
	}
	m.CreatedOn, m.UpdatedOn = now, now
	return nil
}

func (r *motorbikeRepository) get(ctx context.Context, query string, id int64) (*domain.Motorbike, error) {
	m := &domain.Motorbike{}
	if err := scanMotorbike(conn(ctx, r.db).QueryRowContext(ctx, query, id), m); err != nil {
		return nil, notFound(err, domain.CodeMotorbikeNotFound, "motorbike", id)
	}
	return m, nil
}

func (r *motorbikeRepository) GetByID(ctx context.Context, id int64) (*domain.Motorbike, error) {
	return r.get(ctx, `SELECT `+motorbikeColumns+` FROM motorbikes WHERE id = $1`, id)
}

func (r *motorbikeRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Motorbike, error) {
	return r.get(ctx, `SELECT `+motorbikeColumns+` FROM motorbikes WHERE id = $1 FOR UPDATE`, id)
}

func (r *motorbikeRepository) GetByLicensePlate(ctx context.Context, plate string) (*domain.Motorbike, error) {
	m := &domain.Motorbike{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+motorbikeColumns+` FROM motorbikes WHERE license_plate = $1`, plate)
	if err := scanMotorbike(row, m); err != nil {
		return nil, notFound(err, domain.CodeMotorbikeNotFound, "motorbike", plate)
	}
	return m, nil
}

func (r *motorbikeRepository) Update(ctx context.Context, m *domain.Motorbike) error {
	m.UpdatedOn = r.clock.Now()
	query := `UPDATE motorbikes SET license_plate=$1, brand=$2, model=$3, year=$4, color=$5, category_id=$6, price_list_id=$7,
	          description=$8, updated_on=$9 WHERE id=$10`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, m.LicensePlate, m.Brand, m.Model, m.Year, m.Color, m.CategoryID,
		m.PriceListID, m.Description, m.UpdatedOn, m.ID)
	return expectAffected(res, duplicate(err, "license plate"), domain.CodeMotorbikeNotFound, "motorbike", m.ID)
}

func (r *motorbikeRepository) UpdateStatus(ctx context.Context, id int64, status domain.MotorbikeStatus) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE motorbikes SET status=$1, updated_on=$2 WHERE id=$3`, status, r.clock.Now(), id)
	return expectAffected(res, err, domain.CodeMotorbikeNotFound, "motorbike", id)
}

func (r *motorbikeRepository) UpdateImage(ctx context.Context, id int64, imageKey string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE motorbikes SET image_key=$1, updated_on=$2 WHERE id=$3`, imageKey, r.clock.Now(), id)
	return expectAffected(res, err, domain.CodeMotorbikeNotFound, "motorbike", id)
}

func (r *motorbikeRepository) Delete(ctx context.Context, id int64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM motorbikes WHERE id = $1`, id)
	if err != nil && isForeignKeyViolation(err) {
		return domain.BusinessRule(domain.CodeInUse, "motorbike %d has contracts or maintenance records", id)
	}
	return expectAffected(res, err, domain.CodeMotorbikeNotFound, "motorbike", id)
}

func (r *motorbikeRepository) List(ctx context.Context, filter domain.MotorbikeFilter) ([]domain.Motorbike, int, error) {
	where := ` FROM motorbikes WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.CategoryID != 0 {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (license_plate ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d)", n, n, n)
	}

	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT count(*)"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := domain.NormalizePage(filter.Page, filter.PageSize)
	query := "SELECT " + motorbikeColumns + where + fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bikes []domain.Motorbike
	for rows.Next() {
		var m domain.Motorbike
		if err := scanMotorbike(rows, &m); err != nil {
			return nil, 0, err
		}
		bikes = append(bikes, m)
	}
	return bikes, count, rows.Err()
}
