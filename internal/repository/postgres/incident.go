package postgres

import (
	"context"
	"database/sql"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
)

const incidentColumns = `id, contract_id, description, incident_date, damage_cost, status, resolution_notes, resolved_at, created_on, updated_on`

type incidentRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewIncidentRepository(db *sql.DB, clock clockwork.Clock) repository.IncidentRepository {
	return &incidentRepository{db: db, clock: clock}
}

func scanIncident(s scanner, i *domain.Incident) error {
	return s.Scan(&i.ID, &i.ContractID, &i.Description, &i.IncidentDate, &i.DamageCost, &i.Status, &i.ResolutionNotes,
		&i.ResolvedAt, &i.CreatedOn, &i.UpdatedOn)
}

func (r *incidentRepository) Create(ctx context.Context, i *domain.Incident) error {
	now := r.clock.Now()
	query := `INSERT INTO incidents (contract_id, description, incident_date, damage_cost, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, i.ContractID, i.Description, i.IncidentDate, i.DamageCost, i.Status, now, now).Scan(&i.ID)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return domain.BusinessRule(domain.CodeIncidentExists, "contract %d already has an incident", i.ContractID)
		}
		return err
	}
	i.CreatedOn, i.UpdatedOn = now, now
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	i := &domain.Incident{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE id = $1`, id)
	if err := scanIncident(row, i); err != nil {
		return nil, notFound(err, domain.CodeIncidentNotFound, "incident", id)
	}
	return i, nil
}

func (r *incidentRepository) GetByContractID(ctx context.Context, contractID int64) (*domain.Incident, error) {
	i := &domain.Incident{}
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE contract_id = $1`, contractID)
	if err := scanIncident(row, i); err != nil {
		return nil, notFound(err, domain.CodeIncidentNotFound, "incident for contract", contractID)
	}
	return i, nil
}

func (r *incidentRepository) Update(ctx context.Context, i *domain.Incident) error {
	i.UpdatedOn = r.clock.Now()
	query := `UPDATE incidents SET description=$1, damage_cost=$2, status=$3, resolution_notes=$4, resolved_at=$5, updated_on=$6 WHERE id=$7`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, i.Description, i.DamageCost, i.Status, i.ResolutionNotes, i.ResolvedAt, i.UpdatedOn, i.ID)
	return expectAffected(res, err, domain.CodeIncidentNotFound, "incident", i.ID)
}
