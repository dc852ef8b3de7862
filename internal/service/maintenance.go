package service

import (
	"context"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/validator"
)

type maintenanceService struct {
	repos Repositories
	clock clockwork.Clock
}

func NewMaintenanceService(repos Repositories, clock clockwork.Clock) MaintenanceService {
	return &maintenanceService{repos: repos, clock: clock}
}

// Create opens a maintenance record and takes an Available or Damaged
// motorbike out of service.
func (s *maintenanceService) Create(ctx context.Context, in CreateMaintenanceInput) (*domain.Maintenance, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	motorbike, err := s.repos.Motorbikes.GetByIDForUpdate(txCtx, in.MotorbikeID)
	if err != nil {
		return nil, err
	}
	if motorbike.Status != domain.MotorbikeStatusAvailable && motorbike.Status != domain.MotorbikeStatusDamaged {
		return nil, domain.BusinessRule(domain.CodeMotorbikeUnavailable, "motorbike %s is %s", motorbike.LicensePlate, motorbike.Status)
	}

	m := &domain.Maintenance{
		MotorbikeID: in.MotorbikeID,
		Description: in.Description,
		StartDate:   in.StartDate,
		Status:      domain.MaintenanceStatusInProgress,
	}
	if err := s.repos.Maintenances.Create(txCtx, m); err != nil {
		return nil, err
	}
	if err := s.repos.Motorbikes.UpdateStatus(txCtx, in.MotorbikeID, domain.MotorbikeStatusUnderMaintenance); err != nil {
		return nil, err
	}
	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "maintenance started", "maintenance_id", m.ID, "motorbike_id", in.MotorbikeID)
	return m, nil
}

// Complete closes the record and returns the motorbike to Available.
func (s *maintenanceService) Complete(ctx context.Context, id int64, in CompleteMaintenanceInput) (*domain.Maintenance, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	end := s.clock.Now()
	if in.EndDate != nil {
		end = *in.EndDate
	}

	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	m, err := s.repos.Maintenances.GetByID(txCtx, id)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.MaintenanceStatusCompleted {
		return nil, domain.BusinessRule(domain.CodeMaintenanceCompleted, "maintenance %d is already completed", id)
	}
	if end.Before(m.StartDate) {
		return nil, domain.Validation(domain.CodeInvalidRequest, "end date cannot precede the start date")
	}

	m.Status = domain.MaintenanceStatusCompleted
	m.EndDate = &end
	m.Cost = in.Cost
	if err := s.repos.Maintenances.Update(txCtx, m); err != nil {
		return nil, err
	}
	if err := s.repos.Motorbikes.UpdateStatus(txCtx, m.MotorbikeID, domain.MotorbikeStatusAvailable); err != nil {
		return nil, err
	}
	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "maintenance completed", "maintenance_id", id, "cost", m.Cost.String())
	return m, nil
}

func (s *maintenanceService) ListByMotorbike(ctx context.Context, motorbikeID int64) ([]domain.Maintenance, error) {
	if _, err := s.repos.Motorbikes.GetByID(ctx, motorbikeID); err != nil {
		return nil, err
	}
	return s.repos.Maintenances.ListByMotorbike(ctx, motorbikeID)
}
