package postgres

import (
	"context"
	"database/sql"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

type priceListRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewPriceListRepository(db *sql.DB, clock clockwork.Clock) repository.PriceListRepository {
	return &priceListRepository{db: db, clock: clock}
}

func (r *priceListRepository) Create(ctx context.Context, p *domain.PriceList) error {
	now := r.clock.Now()
	query := `INSERT INTO price_lists (name, hourly_rate, daily_rate, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, p.Name, p.HourlyRate, p.DailyRate, now, now).Scan(&p.ID)
	if err != nil {
		return duplicate(err, "price list name")
	}
	p.CreatedOn, p.UpdatedOn = now, now
	return nil
}

func (r *priceListRepository) GetByID(ctx context.Context, id int64) (*domain.PriceList, error) {
	p := &domain.PriceList{}
	query := `SELECT id, name, hourly_rate, daily_rate, created_on, updated_on FROM price_lists WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.HourlyRate, &p.DailyRate, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, notFound(err, domain.CodePriceListNotFound, "price list", id)
	}
	return p, nil
}

func (r *priceListRepository) Update(ctx context.Context, p *domain.PriceList) error {
	p.UpdatedOn = r.clock.Now()
	query := `UPDATE price_lists SET name=$1, hourly_rate=$2, daily_rate=$3, updated_on=$4 WHERE id=$5`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, p.Name, p.HourlyRate, p.DailyRate, p.UpdatedOn, p.ID)
	return expectAffected(res, duplicate(err, "price list name"), domain.CodePriceListNotFound, "price list", p.ID)
}

func (r *priceListRepository) List(ctx context.Context) ([]domain.PriceList, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `SELECT id, name, hourly_rate, daily_rate, created_on, updated_on FROM price_lists ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []domain.PriceList
	for rows.Next() {
		var p domain.PriceList
		if err := rows.Scan(&p.ID, &p.Name, &p.HourlyRate, &p.DailyRate, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		lists = append(lists, p)
	}
	return lists, rows.Err()
}
