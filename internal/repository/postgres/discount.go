package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

const discountSelect = `SELECT d.id, d.name, d.description, d.value, d.start_date, d.end_date, d.is_active, d.created_on, d.updated_on,
	COALESCE(array_agg(dc.category_id ORDER BY dc.category_id) FILTER (WHERE dc.category_id IS NOT NULL), '{}')
	FROM discounts d LEFT JOIN discount_categories dc ON dc.discount_id = d.id`

type discountRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewDiscountRepository(db *sql.DB, clock clockwork.Clock) repository.DiscountRepository {
	return &discountRepository{db: db, clock: clock}
}

func scanDiscount(s scanner, d *domain.Discount) error {
	var categoryIDs pq.Int64Array
	if err := s.Scan(&d.ID, &d.Name, &d.Description, &d.Value, &d.StartDate, &d.EndDate, &d.IsActive, &d.CreatedOn, &d.UpdatedOn, &categoryIDs); err != nil {
		return err
	}
	d.CategoryIDs = []int64(categoryIDs)
	return nil
}

// Create inserts the discount and its category links. Callers run it
// inside a transaction so both land together.
func (r *discountRepository) Create(ctx context.Context, d *domain.Discount) error {
	now := r.clock.Now()
	query := `INSERT INTO discounts (name, description, value, start_date, end_date, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, d.Name, d.Description, d.Value, d.StartDate, d.EndDate, d.IsActive, now, now).Scan(&d.ID)
	if err != nil {
		return duplicate(err, "discount name")
	}
	d.CreatedOn, d.UpdatedOn = now, now
	return r.replaceCategories(ctx, d.ID, d.CategoryIDs)
}

func (r *discountRepository) replaceCategories(ctx context.Context, discountID int64, categoryIDs []int64) error {
	q := conn(ctx, r.db)
	if _, err := q.ExecContext(ctx, `DELETE FROM discount_categories WHERE discount_id = $1`, discountID); err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	_, err := q.ExecContext(ctx, `INSERT INTO discount_categories (discount_id, category_id) SELECT $1, unnest($2::bigint[])`,
		discountID, pq.Array(categoryIDs))
	if err != nil && isForeignKeyViolation(err) {
		return domain.Validation(domain.CodeCategoryNotFound, "discount references an unknown category")
	}
	return err
}

func (r *discountRepository) GetByID(ctx context.Context, id int64) (*domain.Discount, error) {
	d := &domain.Discount{}
	row := conn(ctx, r.db).QueryRowContext(ctx, discountSelect+` WHERE d.id = $1 GROUP BY d.id`, id)
	if err := scanDiscount(row, d); err != nil {
		return nil, notFound(err, domain.CodeDiscountNotFound, "discount", id)
	}
	return d, nil
}

func (r *discountRepository) Update(ctx context.Context, d *domain.Discount) error {
	d.UpdatedOn = r.clock.Now()
	query := `UPDATE discounts SET name=$1, description=$2, value=$3, start_date=$4, end_date=$5, is_active=$6, updated_on=$7 WHERE id=$8`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, d.Name, d.Description, d.Value, d.StartDate, d.EndDate, d.IsActive, d.UpdatedOn, d.ID)
	if err := expectAffected(res, duplicate(err, "discount name"), domain.CodeDiscountNotFound, "discount", d.ID); err != nil {
		return err
	}
	return r.replaceCategories(ctx, d.ID, d.CategoryIDs)
}

func (r *discountRepository) Delete(ctx context.Context, id int64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil && isForeignKeyViolation(err) {
		return domain.BusinessRule(domain.CodeInUse, "discount %d is referenced by contracts", id)
	}
	return expectAffected(res, err, domain.CodeDiscountNotFound, "discount", id)
}

func (r *discountRepository) List(ctx context.Context, filter domain.DiscountFilter) ([]domain.Discount, int, error) {
	where := ` WHERE 1=1`
	var args []any
	if filter.ActiveOnly {
		where += " AND d.is_active"
	}
	if filter.CategoryID != 0 {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM discount_categories x WHERE x.discount_id = d.id AND x.category_id = $%d)", len(args))
	}

	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT count(*) FROM discounts d"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := domain.NormalizePage(filter.Page, filter.PageSize)
	query := discountSelect + where + fmt.Sprintf(" GROUP BY d.id ORDER BY d.start_date DESC, d.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		var d domain.Discount
		if err := scanDiscount(rows, &d); err != nil {
			return nil, 0, err
		}
		discounts = append(discounts, d)
	}
	return discounts, count, rows.Err()
}

func (r *discountRepository) DeactivateExpired(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`UPDATE discounts SET is_active = FALSE, updated_on = $1 WHERE is_active AND end_date < $1 RETURNING id`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
