package validator

import "motorent-backoffice/internal/domain"

func Discount(d *domain.Discount) error {
	if d.Value < 1 || d.Value > 100 {
		return domain.Validation(domain.CodeInvalidRequest, "discount value must be between 1 and 100")
	}
	if d.StartDate.After(d.EndDate) {
		return domain.Validation(domain.CodeInvalidRequest, "discount start date must not be after end date")
	}
	if len(d.CategoryIDs) == 0 {
		return domain.Validation(domain.CodeInvalidRequest, "discount must cover at least one category")
	}
	seen := make(map[int64]struct{}, len(d.CategoryIDs))
	for _, id := range d.CategoryIDs {
		if _, dup := seen[id]; dup {
			return domain.Validation(domain.CodeInvalidRequest, "category %d listed twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
