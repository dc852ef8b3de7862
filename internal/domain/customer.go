package domain

import "time"

type Customer struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	IDCardNumber string    `json:"id_card_number"`
	Address      string    `json:"address"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

type CustomerFilter struct {
	Search   string
	Page     int
	PageSize int
}
