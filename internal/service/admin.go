package service

import (
	"context"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/repository"
	"motorent-backoffice/internal/security"
	"motorent-backoffice/internal/validator"
)

type employeeService struct {
	employeeRepo repository.EmployeeRepository
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func (s *employeeService) Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	employee := &domain.Employee{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         in.Role,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "employee created", "employee_id", employee.ID, "role", employee.Role)
	return employee, nil
}

func (s *employeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// AssignRole changes an employee's role. Admins cannot demote themselves,
// which keeps at least one admin able to manage roles.
func (s *employeeService) AssignRole(ctx context.Context, actorID, employeeID int64, role domain.Role) (*domain.Employee, error) {
	if !role.Valid() {
		return nil, domain.Validation(domain.CodeInvalidRequest, "unknown role %q", role)
	}
	if actorID == employeeID && role != domain.RoleAdmin {
		return nil, domain.BusinessRule(domain.CodeInvalidStatusChange, "admins cannot remove their own admin role")
	}
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.UpdateRole(ctx, employeeID, role); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "employee role changed", "employee_id", employeeID, "from", employee.Role, "to", role, "by", actorID)
	employee.Role = role
	return employee, nil
}
