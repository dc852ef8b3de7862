package postgres

import (
	"context"
	"database/sql"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

const maintenanceColumns = `id, motorbike_id, description, start_date, end_date, cost, status, created_on, updated_on`

type maintenanceRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewMaintenanceRepository(db *sql.DB, clock clockwork.Clock) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db, clock: clock}
}

func scanMaintenance(s scanner, m *domain.Maintenance) error {
	return s.Scan(&m.ID, &m.MotorbikeID, &m.Description, &m.StartDate, &m.EndDate, &m.Cost, &m.Status, &m.CreatedOn, &m.UpdatedOn)
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	now := r.clock.Now()
	query := `INSERT INTO maintenances (motorbike_id, description, start_date, cost, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, m.MotorbikeID, m.Description, m.StartDate, m.Cost, m.Status, now, now).Scan(&m.ID); err != nil {
		return err
	}
	m.CreatedOn, m.UpdatedOn = now, now
	return nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+maintenanceColumns+` FROM maintenances WHERE id = $1`, id)
	if err := scanMaintenance(row, m); err != nil {
		return nil, notFound(err, domain.CodeMaintenanceNotFound, "maintenance", id)
	}
	return m, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, m *domain.Maintenance) error {
	m.UpdatedOn = r.clock.Now()
	query := `UPDATE maintenances SET description=$1, end_date=$2, cost=$3, status=$4, updated_on=$5 WHERE id=$6`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, m.Description, m.EndDate, m.Cost, m.Status, m.UpdatedOn, m.ID)
	return expectAffected(res, err, domain.CodeMaintenanceNotFound, "maintenance", m.ID)
}

func (r *maintenanceRepository) ListByMotorbike(ctx context.Context, motorbikeID int64) ([]domain.Maintenance, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `SELECT `+maintenanceColumns+` FROM maintenances WHERE motorbike_id = $1 ORDER BY start_date DESC`, motorbikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}
