package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type IncidentStatus string

const (
	IncidentStatusReported IncidentStatus = "REPORTED"
	IncidentStatusResolved IncidentStatus = "RESOLVED"
)

type Incident struct {
	ID              int64           `json:"id"`
	ContractID      int64           `json:"contract_id"`
	Description     string          `json:"description"`
	IncidentDate    time.Time       `json:"incident_date"`
	DamageCost      decimal.Decimal `json:"damage_cost"`
	Status          IncidentStatus  `json:"status"`
	ResolutionNotes string          `json:"resolution_notes"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}
