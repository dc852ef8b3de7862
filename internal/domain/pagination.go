package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps page/pageSize into a usable window and returns the
// SQL limit and offset.
func NormalizePage(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}
