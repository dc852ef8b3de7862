package validator

import (
	"time"

	"motorent-backoffice/internal/domain"
)

const minMotorbikeYear = 1950

func MotorbikeYear(year int, now time.Time) error {
	if year < minMotorbikeYear || year > now.Year()+1 {
		return domain.Validation(domain.CodeInvalidRequest, "year must be between %d and %d", minMotorbikeYear, now.Year()+1)
	}
	return nil
}

// manualStatuses are the states staff may set directly. Rented and
// Reserved only follow contract transitions.
var manualStatuses = map[domain.MotorbikeStatus]bool{
	domain.MotorbikeStatusAvailable:        true,
	domain.MotorbikeStatusUnderMaintenance: true,
	domain.MotorbikeStatusDamaged:          true,
	domain.MotorbikeStatusOutOfService:     true,
}

func MotorbikeStatusChange(current, next domain.MotorbikeStatus) error {
	if !next.Valid() {
		return domain.Validation(domain.CodeInvalidRequest, "unknown motorbike status %q", next)
	}
	if !manualStatuses[next] {
		return domain.BusinessRule(domain.CodeInvalidStatusChange, "status %s is set by contracts only", next)
	}
	if current == domain.MotorbikeStatusRented || current == domain.MotorbikeStatusReserved {
		return domain.BusinessRule(domain.CodeInvalidStatusChange, "motorbike is %s under a contract", current)
	}
	return nil
}

// MotorbikeRentable reports whether a new contract may take the motorbike.
func MotorbikeRentable(m *domain.Motorbike) error {
	if m.Status != domain.MotorbikeStatusAvailable {
		return domain.BusinessRule(domain.CodeMotorbikeUnavailable, "motorbike %s is %s", m.LicensePlate, m.Status)
	}
	return nil
}
