package postgres

import (
	"context"
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

type categoryRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewCategoryRepository(db *sql.DB, clock clockwork.Clock) repository.CategoryRepository {
	return &categoryRepository{db: db, clock: clock}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	now := r.clock.Now()
	query := `INSERT INTO categories (name, description, deposit_amount, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, c.Name, c.Description, c.DepositAmount, now, now).Scan(&c.ID)
	if err != nil {
		return duplicate(err, "category name")
	}
	c.CreatedOn, c.UpdatedOn = now, now
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	c := &domain.Category{}
	query := `SELECT id, name, description, deposit_amount, created_on, updated_on FROM categories WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.DepositAmount, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, notFound(err, domain.CodeCategoryNotFound, "category", id)
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	c.UpdatedOn = r.clock.Now()
	query := `UPDATE categories SET name=$1, description=$2, deposit_amount=$3, updated_on=$4 WHERE id=$5`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, c.Name, c.Description, c.DepositAmount, c.UpdatedOn, c.ID)
	return expectAffected(res, duplicate(err, "category name"), domain.CodeCategoryNotFound, "category", c.ID)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil && isForeignKeyViolation(err) {
		return domain.BusinessRule(domain.CodeInUse, "category %d is still referenced", id)
	}
	return expectAffected(res, err, domain.CodeCategoryNotFound, "category", id)
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `SELECT id, name, description, deposit_amount, created_on, updated_on FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DepositAmount, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	var n int
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM categories WHERE id = ANY($1)`, pq.Array(ids)).Scan(&n)
	return n, err
}
