package domain

import "time"

type MotorbikeStatus string

const (
	MotorbikeStatusAvailable        MotorbikeStatus = "AVAILABLE"
	MotorbikeStatusRented           MotorbikeStatus = "RENTED"
	MotorbikeStatusReserved         MotorbikeStatus = "RESERVED"
	MotorbikeStatusUnderMaintenance MotorbikeStatus = "UNDER_MAINTENANCE"
	MotorbikeStatusDamaged          MotorbikeStatus = "DAMAGED"
	MotorbikeStatusOutOfService     MotorbikeStatus = "OUT_OF_SERVICE"
)

func (s MotorbikeStatus) Valid() bool {
	switch s {
	case MotorbikeStatusAvailable, MotorbikeStatusRented, MotorbikeStatusReserved,
		MotorbikeStatusUnderMaintenance, MotorbikeStatusDamaged, MotorbikeStatusOutOfService:
		return true
	}
	return false
}

type Motorbike struct {
	ID           int64           `json:"id"`
	LicensePlate string          `json:"license_plate"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Color        string          `json:"color"`
	CategoryID   int64           `json:"category_id"`
	PriceListID  int64           `json:"price_list_id"`
	Status       MotorbikeStatus `json:"status"`
	ImageKey     string          `json:"image_key"`
	Description  string          `json:"description"`
	CreatedOn    time.Time       `json:"created_on"`
	UpdatedOn    time.Time       `json:"updated_on"`
}

type MotorbikeFilter struct {
	Status     MotorbikeStatus
	CategoryID int64
	Search     string
	Page       int
	PageSize   int
}
