package domain

import "time"

type Discount struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Value       int       `json:"value"` // percent, 1..100
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `json:"is_active"`
	CategoryIDs []int64   `json:"category_ids"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// ActiveAt reports whether the discount can be applied at t.
func (d *Discount) ActiveAt(t time.Time) bool {
	return d.IsActive && !t.Before(d.StartDate) && !t.After(d.EndDate)
}

func (d *Discount) CoversCategory(categoryID int64) bool {
	for _, id := range d.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

type DiscountFilter struct {
	ActiveOnly bool
	CategoryID int64
	Page       int
	PageSize   int
}
