package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 12
	// MaxPageSize caps how many rows any page can request.
	MaxPageSize = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// NormalizePageSize enforces the configured default and maximum sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// TotalPages computes the page count for a match total; never below one so
// an empty result still renders page 1 of 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces the requested page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Bounds returns the half-open slice window for the clamped page, capped at
// the collection length.
func Bounds(page, pageSize, total int) (start, end int) {
	start = (page - 1) * pageSize
	if start > total {
		start = total
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
