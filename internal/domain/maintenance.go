package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceStatus string

const (
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
)

type Maintenance struct {
	ID          int64             `json:"id"`
	MotorbikeID int64             `json:"motorbike_id"`
	Description string            `json:"description"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     *time.Time        `json:"end_date,omitempty"`
	Cost        decimal.Decimal   `json:"cost"`
	Status      MaintenanceStatus `json:"status"`
	CreatedOn   time.Time         `json:"created_on"`
	UpdatedOn   time.Time         `json:"updated_on"`
}
