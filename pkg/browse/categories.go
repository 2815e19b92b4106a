package browse

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jmoraes/catalogo/pkg/domain"
)

// SortCategoriesByName returns a copy of categories ordered by name,
// case-insensitive ascending. The category screen loads the full set once
// and keeps it in this order.
func SortCategoriesByName(categories []domain.Category) []domain.Category {
	sorted := slices.Clone(categories)
	slices.SortStableFunc(sorted, func(a, b domain.Category) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return sorted
}

// FilterCategories returns the subsequence of categories whose names
// contain query, compared case-insensitively. A blank query returns the
// full list with its order preserved. The input is never mutated; no server
// round-trip is involved.
func FilterCategories(categories []domain.Category, query string) []domain.Category {
	if strings.TrimSpace(query) == "" {
		return categories
	}
	q := strings.ToLower(query)
	var filtered []domain.Category
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), q) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
