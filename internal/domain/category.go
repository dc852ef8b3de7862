package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}

type PriceList struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	CreatedOn  time.Time       `json:"created_on"`
	UpdatedOn  time.Time       `json:"updated_on"`
}
