package browse

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jmoraes/catalogo/pkg/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSelectCategoryResetsPage(t *testing.T) {
	q := NewProductQuery(10)
	q.SelectCategory(1)
	q.RecordPage(&domain.ProductPage{Items: make([]domain.Product, 10), TotalPages: 3})
	if !q.Next() {
		t.Fatal("Next() should advance with pages remaining")
	}
	if q.Page != 2 {
		t.Fatalf("Page = %d, want 2", q.Page)
	}

	q.SelectCategory(2)
	if q.Page != 1 {
		t.Errorf("Page = %d after category switch, want 1", q.Page)
	}
	if q.HasNext() {
		t.Error("HasNext() must be false before the new category's first page lands")
	}
}

func TestNextStopsAtLastPage(t *testing.T) {
	q := NewProductQuery(10)
	q.SelectCategory(1)
	q.RecordPage(&domain.ProductPage{Items: make([]domain.Product, 10), TotalPages: 2})

	if !q.Next() {
		t.Fatal("Next() should reach page 2")
	}
	q.RecordPage(&domain.ProductPage{Items: make([]domain.Product, 3), TotalPages: 2})

	if q.HasNext() {
		t.Error("HasNext() must be false on the last page")
	}
	if q.Next() {
		t.Error("Next() must not advance past the last page")
	}
	if q.Page != 2 {
		t.Errorf("Page = %d, want 2", q.Page)
	}
}

func TestNextWithoutMetadataUsesPageFill(t *testing.T) {
	q := NewProductQuery(10)
	q.SelectCategory(1)

	// Full page, no total metadata: assume more may exist.
	q.RecordPage(&domain.ProductPage{Items: make([]domain.Product, 10)})
	if !q.HasNext() {
		t.Error("full page without metadata should allow advancing")
	}

	// Short page: end of the result set.
	q.RecordPage(&domain.ProductPage{Items: make([]domain.Product, 4)})
	if q.HasNext() {
		t.Error("short page without metadata should stop advancing")
	}
}

func TestPrevClampsAtFirstPage(t *testing.T) {
	q := NewProductQuery(10)
	q.SelectCategory(1)
	if q.Prev() {
		t.Error("Prev() must not move below page 1")
	}
	q.RecordPage(&domain.ProductPage{Items: make([]domain.Product, 10), TotalPages: 2})
	q.Next()
	if !q.Prev() {
		t.Error("Prev() should rewind from page 2")
	}
	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}
}

func TestToggleSort(t *testing.T) {
	q := NewProductQuery(10)

	q.ToggleSort(SortName)
	if q.SortColumn != SortName || !q.SortAscending {
		t.Fatalf("first toggle = (%s, asc=%t), want (name, true)", q.SortColumn, q.SortAscending)
	}

	q.ToggleSort(SortName)
	if q.SortAscending {
		t.Fatal("second toggle should flip to descending")
	}

	q.ToggleSort(SortPrice)
	if q.SortColumn != SortPrice || !q.SortAscending {
		t.Errorf("new column = (%s, asc=%t), want (price, true)", q.SortColumn, q.SortAscending)
	}
}

func TestAfterDelete(t *testing.T) {
	q := NewProductQuery(10)
	q.SelectCategory(1)
	q.RecordPage(&domain.ProductPage{Items: make([]domain.Product, 10), TotalPages: 2})
	q.Next()

	// Deleting one of several rows keeps the page.
	q.AfterDelete(5)
	if q.Page != 2 {
		t.Errorf("Page = %d, want 2", q.Page)
	}

	// Deleting the last row on a later page rewinds.
	q.AfterDelete(1)
	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}

	// Never below page 1.
	q.AfterDelete(1)
	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}
}

func TestApplySortsLocally(t *testing.T) {
	items := []domain.Product{
		{ID: 3, Name: "suco", Price: price("8.00")},
		{ID: 1, Name: "Água", Price: price("3.50")},
		{ID: 2, Name: "café", Price: price("12.00")},
	}

	q := NewProductQuery(10)

	// No sort: server order, but a fresh slice.
	got := q.Apply(items)
	if got[0].ID != 3 {
		t.Errorf("unsorted Apply reordered rows: %v", got)
	}
	got[0].Name = "mutated"
	if items[0].Name == "mutated" {
		t.Error("Apply must not share backing storage with its input")
	}

	q.ToggleSort(SortPrice)
	got = q.Apply(items)
	if got[0].ID != 1 || got[2].ID != 2 {
		t.Errorf("price ascending order wrong: %v", got)
	}

	q.ToggleSort(SortPrice)
	got = q.Apply(items)
	if got[0].ID != 2 {
		t.Errorf("price descending order wrong: %v", got)
	}

	q.ToggleSort(SortName)
	got = q.Apply(items)
	// Case-insensitive: Água, café, suco.
	if got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Errorf("name order wrong: %v", got)
	}
}

func TestApplyUnknownColumn(t *testing.T) {
	items := []domain.Product{{ID: 2}, {ID: 1}}
	q := NewProductQuery(10)
	q.SortColumn = SortColumn("bogus")
	got := q.Apply(items)
	if got[0].ID != 2 {
		t.Error("unknown sort column must leave server order untouched")
	}
}
