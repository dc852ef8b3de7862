package service

import (
	"context"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/repository"
	"motorent-backoffice/internal/security"
)

const minPasswordLength = 8

type authService struct {
	employeeRepo repository.EmployeeRepository
	tx           repository.TxManager
	tokens       security.TokenManager
	emailSvc     EmailService
	clock        clockwork.Clock
	resetURL     string
	resetTTL     time.Duration
}

func NewAuthService(
	employeeRepo repository.EmployeeRepository,
	tx repository.TxManager,
	tokens security.TokenManager,
	emailSvc EmailService,
	clock clockwork.Clock,
	resetURL string,
	resetTTL time.Duration,
) AuthService {
	return &authService{
		employeeRepo: employeeRepo,
		tx:           tx,
		tokens:       tokens,
		emailSvc:     emailSvc,
		clock:        clock,
		resetURL:     resetURL,
		resetTTL:     resetTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	employee, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.Unauthorized(domain.CodeInvalidCredentials, "invalid email or password")
		}
		return nil, err
	}
	if !security.CheckPassword(employee.PasswordHash, password) {
		return nil, domain.Unauthorized(domain.CodeInvalidCredentials, "invalid email or password")
	}
	if !employee.IsActive {
		return nil, domain.Forbidden(domain.CodeAccountDisabled, "account is disabled")
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(employee)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "employee logged in", "employee_id", employee.ID, "role", employee.Role)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Employee: employee}, nil
}

// RequestPasswordReset emails a one-time link. Unknown or disabled accounts
// get the same silent success so the endpoint cannot probe for emails.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	employee, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			logger.InfoContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return err
	}
	if !employee.IsActive {
		return nil
	}

	token, hash, err := security.NewResetToken()
	if err != nil {
		return err
	}
	reset := &domain.PasswordReset{
		EmployeeID: employee.ID,
		TokenHash:  hash,
		ExpiresAt:  s.clock.Now().Add(s.resetTTL),
	}
	if err := s.employeeRepo.CreatePasswordReset(ctx, reset); err != nil {
		return err
	}

	link := s.resetURL + "?token=" + url.QueryEscape(token)
	if err := s.emailSvc.SendPasswordReset(ctx, employee, link, reset.ExpiresAt); err != nil {
		logger.ErrorContext(ctx, "failed to send password reset email", "employee_id", employee.ID, "error", err)
		return err
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.Validation(domain.CodeInvalidRequest, "password must be at least %d characters", minPasswordLength)
	}

	reset, err := s.employeeRepo.GetPasswordResetByHash(ctx, security.HashResetToken(token))
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return domain.Unauthorized(domain.CodeInvalidToken, "reset token is invalid")
		}
		return err
	}
	now := s.clock.Now()
	if reset.UsedAt != nil || now.After(reset.ExpiresAt) {
		return domain.Unauthorized(domain.CodeInvalidToken, "reset token is expired or already used")
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	ctx, err = s.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.tx.Rollback(ctx)

	if err := s.employeeRepo.UpdatePassword(ctx, reset.EmployeeID, hash); err != nil {
		return err
	}
	if err := s.employeeRepo.MarkPasswordResetUsed(ctx, reset.ID, now); err != nil {
		return err
	}
	if err := s.tx.Commit(ctx); err != nil {
		return err
	}
	logger.InfoContext(ctx, "password reset completed", "employee_id", reset.EmployeeID)
	return nil
}
