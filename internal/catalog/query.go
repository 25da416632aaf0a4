// Package catalog filters, searches, and paginates the product listing.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	product "github.com/nourzaidi/nourfashion-backend/internal/products"
	"github.com/nourzaidi/nourfashion-backend/pkg/pagination"
)

// CategoryAll selects every category.
const CategoryAll = "all"

// FilterSpec describes one catalog query. All set filters must match
// for an item to be included.
type FilterSpec struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	PageSize int
}

// Result is one page of the filtered catalog.
type Result struct {
	Items      []product.ProductDTO `json:"items"`
	TotalCount int                  `json:"total_count"`
	TotalPages int                  `json:"total_pages"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
}

// Query applies search, category filter, and pagination over the full
// product listing. The requested page is clamped into the valid range,
// so an out-of-range page returns the last page instead of an error.
func Query(products []product.ProductDTO, spec FilterSpec) Result {
	filtered := filter(products, spec)

	pageSize := pagination.NormalizePageSize(spec.PageSize)
	totalPages := pagination.TotalPages(len(filtered), pageSize)
	page := pagination.ClampPage(spec.Page, totalPages)
	start, end := pagination.Bounds(page, pageSize, len(filtered))

	items := make([]product.ProductDTO, end-start)
	copy(items, filtered[start:end])

	return Result{
		Items:      items,
		TotalCount: len(filtered),
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

// Categories returns the distinct non-empty categories sorted
// alphabetically.
func Categories(products []product.ProductDTO) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for i := range products {
		category := strings.TrimSpace(products[i].Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

func filter(products []product.ProductDTO, spec FilterSpec) []product.ProductDTO {
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	category := strings.TrimSpace(spec.Category)
	matchAll := category == "" || strings.EqualFold(category, CategoryAll)

	out := make([]product.ProductDTO, 0, len(products))
	for i := range products {
		p := products[i]
		if !matchAll && p.Category != category {
			continue
		}
		if search != "" && !matchesSearch(&p, search) {
			continue
		}
		if spec.MinPrice != nil && p.Price.LessThan(*spec.MinPrice) {
			continue
		}
		if spec.MaxPrice != nil && p.Price.GreaterThan(*spec.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p *product.ProductDTO, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Category), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}
