// Package browse holds the list-browsing state shared by the catalog
// screens: page position, sort order, and the local category filter.
// Sorting is applied client-side to the fetched page only — it reorders the
// visible rows, not the full result set. Server-side sorting would need an
// API contract change.
package browse

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jmoraes/catalogo/pkg/domain"
)

// DefaultPageSize is the fixed page size used against the paged product
// listing.
const DefaultPageSize = 10

// SortColumn identifies a sortable product grid column.
type SortColumn string

const (
	SortNone        SortColumn = ""
	SortID          SortColumn = "id"
	SortName        SortColumn = "name"
	SortDescription SortColumn = "description"
	SortPrice       SortColumn = "price"
)

// comparators maps each sortable column to its ascending ordering.
// An explicit table, so an unknown column simply leaves rows untouched.
var comparators = map[SortColumn]func(a, b domain.Product) int{
	SortID:   func(a, b domain.Product) int { return cmp.Compare(a.ID, b.ID) },
	SortName: func(a, b domain.Product) int { return compareFold(a.Name, b.Name) },
	SortDescription: func(a, b domain.Product) int {
		return compareFold(a.Description, b.Description)
	},
	SortPrice: func(a, b domain.Product) int { return a.Price.Cmp(b.Price) },
}

func compareFold(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// ProductQuery carries the browsing state of the product screen across
// fetches: 1-based page number, fixed page size, selected category, and the
// current sort. Not safe for concurrent use; one screen owns one query.
type ProductQuery struct {
	Page          int
	PageSize      int
	CategoryID    int
	SortColumn    SortColumn
	SortAscending bool

	totalPages int // 0 until a page with metadata has been recorded
	lastCount  int // rows on the most recent page
}

// NewProductQuery returns a query positioned at page 1 with no sort.
func NewProductQuery(pageSize int) ProductQuery {
	return ProductQuery{
		Page:          1,
		PageSize:      pageSize,
		SortAscending: true,
	}
}

// SelectCategory switches the query to a category and rewinds to page 1.
func (q *ProductQuery) SelectCategory(id int) {
	q.CategoryID = id
	q.Page = 1
	q.totalPages = 0
	q.lastCount = 0
}

// RecordPage notes the metadata of a fetched page so Next can stop at the
// end of the result set.
func (q *ProductQuery) RecordPage(page *domain.ProductPage) {
	q.totalPages = page.TotalPages
	q.lastCount = len(page.Items)
}

// HasNext reports whether advancing would land on a page that can exist.
// With total-count metadata the answer is exact; without it a short page is
// taken as the end.
func (q *ProductQuery) HasNext() bool {
	if q.totalPages > 0 {
		return q.Page < q.totalPages
	}
	return q.lastCount == q.PageSize && q.PageSize > 0
}

// Next advances one page when more pages exist. Reports whether it moved.
func (q *ProductQuery) Next() bool {
	if !q.HasNext() {
		return false
	}
	q.Page++
	return true
}

// Prev rewinds one page, never below page 1. Reports whether it moved.
func (q *ProductQuery) Prev() bool {
	if q.Page <= 1 {
		return false
	}
	q.Page--
	return true
}

// ToggleSort flips the direction when col is already the sort column, and
// otherwise sorts ascending by col.
func (q *ProductQuery) ToggleSort(col SortColumn) {
	if q.SortColumn == col {
		q.SortAscending = !q.SortAscending
		return
	}
	q.SortColumn = col
	q.SortAscending = true
}

// AfterDelete rewinds one page when the deleted row was the last one on a
// page past the first, so the re-fetch does not land on a guaranteed-empty
// page.
func (q *ProductQuery) AfterDelete(itemsOnPage int) {
	if itemsOnPage <= 1 && q.Page > 1 {
		q.Page--
	}
}

// Apply returns the page's rows in the query's sort order. The input is
// never mutated; with no sort column the rows come back in server order.
func (q ProductQuery) Apply(items []domain.Product) []domain.Product {
	sorted := slices.Clone(items)
	compare, ok := comparators[q.SortColumn]
	if !ok {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b domain.Product) int {
		if q.SortAscending {
			return compare(a, b)
		}
		return compare(b, a)
	})
	return sorted
}
