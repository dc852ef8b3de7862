package service

import (
	"context"
	"strings"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/validator"
)

type incidentService struct {
	repos Repositories
	clock clockwork.Clock
}

func NewIncidentService(repos Repositories, clock clockwork.Clock) IncidentService {
	return &incidentService{repos: repos, clock: clock}
}

// Report records the single incident a contract may have. The contract moves
// to ProcessingIncident and the motorbike is marked Damaged.
func (s *incidentService) Report(ctx context.Context, contractID int64, in ReportIncidentInput) (*domain.Incident, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	contract, err := s.repos.Contracts.GetByIDForUpdate(txCtx, contractID)
	if err != nil {
		return nil, err
	}
	incident := &domain.Incident{
		ContractID:   contractID,
		Description:  strings.TrimSpace(in.Description),
		IncidentDate: in.IncidentDate,
		DamageCost:   in.DamageCost,
		Status:       domain.IncidentStatusReported,
	}
	if err := validator.IncidentReport(contract, incident); err != nil {
		return nil, err
	}
	if err := s.repos.Incidents.Create(txCtx, incident); err != nil {
		return nil, err
	}

	contract.Status = domain.ContractStatusProcessingIncident
	if err := s.repos.Contracts.Update(txCtx, contract); err != nil {
		return nil, err
	}
	if err := s.repos.Motorbikes.UpdateStatus(txCtx, contract.MotorbikeID, domain.MotorbikeStatusDamaged); err != nil {
		return nil, err
	}
	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "incident reported", "incident_id", incident.ID, "contract_id", contractID, "damage_cost", incident.DamageCost.String())
	return incident, nil
}

// Resolve closes an incident, optionally revising the assessed damage. The
// contract stays in ProcessingIncident until it is settled. A motorbike left
// Damaged by an earlier settlement is released once its incident is closed.
func (s *incidentService) Resolve(ctx context.Context, id int64, in ResolveIncidentInput) (*domain.Incident, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if in.DamageCost != nil && in.DamageCost.IsNegative() {
		return nil, domain.Validation(domain.CodeInvalidAmount, "damage cost cannot be negative")
	}

	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	incident, err := s.repos.Incidents.GetByID(txCtx, id)
	if err != nil {
		return nil, err
	}
	if incident.Status == domain.IncidentStatusResolved {
		return nil, domain.BusinessRule(domain.CodeIncidentResolved, "incident %d is already resolved", id)
	}
	contract, err := s.repos.Contracts.GetByID(txCtx, incident.ContractID)
	if err != nil {
		return nil, err
	}
	if contract.IsPaid {
		return nil, domain.BusinessRule(domain.CodeContractAlreadyPaid, "contract %d is already paid", contract.ID)
	}

	now := s.clock.Now()
	incident.Status = domain.IncidentStatusResolved
	incident.ResolutionNotes = in.ResolutionNotes
	incident.ResolvedAt = &now
	if in.DamageCost != nil {
		incident.DamageCost = *in.DamageCost
	}
	if err := s.repos.Incidents.Update(txCtx, incident); err != nil {
		return nil, err
	}
	if contract.Status == domain.ContractStatusCompleted {
		if err := s.releaseMotorbike(txCtx, contract.MotorbikeID); err != nil {
			return nil, err
		}
	}
	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "incident resolved", "incident_id", id, "contract_id", incident.ContractID)
	return incident, nil
}

// releaseMotorbike makes a Damaged motorbike available again. Any other
// status was set by hand after settlement and is left alone.
func (s *incidentService) releaseMotorbike(ctx context.Context, motorbikeID int64) error {
	bike, err := s.repos.Motorbikes.GetByIDForUpdate(ctx, motorbikeID)
	if err != nil {
		return err
	}
	if bike.Status != domain.MotorbikeStatusDamaged {
		return nil
	}
	if err := s.repos.Motorbikes.UpdateStatus(ctx, motorbikeID, domain.MotorbikeStatusAvailable); err != nil {
		return err
	}
	logger.InfoContext(ctx, "motorbike released after incident resolution", "motorbike_id", motorbikeID)
	return nil
}

func (s *incidentService) Get(ctx context.Context, id int64) (*domain.Incident, error) {
	return s.repos.Incidents.GetByID(ctx, id)
}
