package tui

import (
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jmoraes/catalogo/pkg/client"
	"github.com/jmoraes/catalogo/pkg/domain"
)

func newTestProductModel() productModel {
	m := newProductModel(nil, 10)
	m.width = 100
	m.height = 40
	return m
}

func testPage(totalPages int, items ...domain.Product) *domain.ProductPage {
	return &domain.ProductPage{
		Items:      items,
		PageSize:   10,
		TotalPages: totalPages,
	}
}

func testProduct(id int, name, priceStr string) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       name,
		Price:      decimal.RequireFromString(priceStr),
		CategoryID: 1,
	}
}

// loadTestProducts walks the model through category load and first page.
func loadTestProducts(m productModel, items ...domain.Product) productModel {
	m, _ = m.Update(productCatsMsg{categories: []domain.Category{
		{ID: 1, Name: "Bebidas"},
		{ID: 2, Name: "Limpeza"},
	}})
	m, _ = m.Update(productsPageMsg{gen: m.gen, page: testPage(1, items...)})
	return m
}

func TestProductsFirstCategorySelectedOnLoad(t *testing.T) {
	m := newTestProductModel()
	m, cmd := m.Update(productCatsMsg{categories: []domain.Category{
		{ID: 5, Name: "Limpeza"},
		{ID: 4, Name: "Bebidas"},
	}})
	if cmd == nil {
		t.Fatal("loading categories should trigger a page fetch")
	}
	// Name-ordered, so Bebidas comes first.
	if m.query.CategoryID != 4 {
		t.Errorf("CategoryID = %d, want 4 (first by name)", m.query.CategoryID)
	}
	if m.query.Page != 1 {
		t.Errorf("Page = %d, want 1", m.query.Page)
	}
}

func TestProductsStalePageDropped(t *testing.T) {
	m := newTestProductModel()
	m = loadTestProducts(m, testProduct(1, "Café", "12.50"))

	// A response stamped with an old generation must not land.
	stale := productsPageMsg{gen: m.gen - 1, page: testPage(9, testProduct(99, "Stale", "1.00"))}
	m, _ = m.Update(stale)
	if len(m.rows) != 1 || m.rows[0].ID != 1 {
		t.Errorf("stale page overwrote current rows: %v", m.rows)
	}
	if m.totalPages == 9 {
		t.Error("stale page metadata must be ignored")
	}
}

func TestProductsCategoryCycleRefetches(t *testing.T) {
	m := newTestProductModel()
	m = loadTestProducts(m, testProduct(1, "Café", "12.50"))

	m, cmd := m.Update(keyRunes("c"))
	if cmd == nil {
		t.Fatal("cycling the category should fetch a page")
	}
	if m.query.CategoryID != 2 {
		t.Errorf("CategoryID = %d, want 2", m.query.CategoryID)
	}
	if m.query.Page != 1 {
		t.Errorf("Page = %d after category switch, want 1", m.query.Page)
	}
}

func TestProductsPagingKeys(t *testing.T) {
	m := newTestProductModel()
	items := make([]domain.Product, 10)
	for i := range items {
		items[i] = testProduct(i+1, "p", "1.00")
	}
	m = loadTestProducts(m, items...)
	m.totalPages = 2
	m.query.RecordPage(testPage(2, items...))

	m, cmd := m.Update(keyRunes("l"))
	if cmd == nil {
		t.Fatal("next page should fetch")
	}
	if m.query.Page != 2 {
		t.Fatalf("Page = %d, want 2", m.query.Page)
	}

	// Last page: advancing again does nothing.
	m, _ = m.Update(productsPageMsg{gen: m.gen, page: testPage(2, testProduct(11, "q", "2.00"))})
	m, cmd = m.Update(keyRunes("l"))
	if cmd != nil {
		t.Error("next on the last page must not fetch")
	}

	m, cmd = m.Update(keyRunes("h"))
	if cmd == nil {
		t.Fatal("prev page should fetch")
	}
	if m.query.Page != 1 {
		t.Errorf("Page = %d, want 1", m.query.Page)
	}

	// First page: rewinding again does nothing.
	if _, cmd = m.Update(keyRunes("h")); cmd != nil {
		t.Error("prev on page 1 must not fetch")
	}
}

func TestProductsSortModeReordersPage(t *testing.T) {
	m := newTestProductModel()
	m = loadTestProducts(m,
		testProduct(1, "suco", "8.00"),
		testProduct(2, "Água", "3.50"),
		testProduct(3, "café", "12.00"),
	)

	m, _ = m.Update(keyRunes("s"))
	if !m.sortMode {
		t.Fatal("s should enter sort mode")
	}
	m, cmd := m.Update(keyRunes("4")) // price
	if cmd != nil {
		t.Fatal("sorting is local, no fetch expected")
	}
	if m.sortMode {
		t.Error("picking a column should leave sort mode")
	}
	if m.rows[0].ID != 2 || m.rows[2].ID != 3 {
		t.Errorf("price ascending wrong: %v", m.rows)
	}

	// Same column again flips direction.
	m, _ = m.Update(keyRunes("s"))
	m, _ = m.Update(keyRunes("4"))
	if m.rows[0].ID != 3 {
		t.Errorf("price descending wrong: %v", m.rows)
	}
}

func TestProductsEmptyPageRendersEmptyGrid(t *testing.T) {
	m := newTestProductModel()
	m = loadTestProducts(m)
	view := m.View()
	if !strings.Contains(view, "no products on this page") {
		t.Errorf("empty page should render an empty grid, got:\n%s", view)
	}
	if m.statusErr {
		t.Error("an empty page is not an error")
	}
}

func TestProductsFetchErrorKeepsRows(t *testing.T) {
	m := newTestProductModel()
	m = loadTestProducts(m, testProduct(1, "Café", "12.50"))

	m, _ = m.Update(productsPageMsg{gen: m.gen, err: &client.HTTPError{StatusCode: 500, Message: "boom"}})
	if len(m.rows) != 1 {
		t.Errorf("rows should survive a failed fetch, got %d", len(m.rows))
	}
	if !m.statusErr {
		t.Error("failed fetch should surface an error status")
	}
}

func TestProductsUnauthorizedExpiresSession(t *testing.T) {
	m := newTestProductModel()
	m = loadTestProducts(m, testProduct(1, "Café", "12.50"))

	err := &client.HTTPError{StatusCode: http.StatusUnauthorized, Message: "expired"}
	_, cmd := m.Update(productsPageMsg{gen: m.gen, err: err})
	if cmd == nil {
		t.Fatal("a 401 must produce a session-expiry command")
	}
	if _, ok := cmd().(sessionExpiredMsg); !ok {
		t.Error("command should emit sessionExpiredMsg")
	}
}

func TestProductsDeleteRewindsShortPage(t *testing.T) {
	m := newTestProductModel()
	items := make([]domain.Product, 10)
	for i := range items {
		items[i] = testProduct(i+1, "p", "1.00")
	}
	m = loadTestProducts(m, items...)
	m.query.RecordPage(testPage(2, items...))
	m.query.Next()
	m, _ = m.Update(productsPageMsg{gen: m.gen, page: testPage(2, testProduct(11, "last", "2.00"))})

	m, cmd := m.Update(productMutatedMsg{op: opProductDelete, err: nil})
	if cmd == nil {
		t.Fatal("a successful delete should refetch")
	}
	if m.query.Page != 1 {
		t.Errorf("Page = %d after deleting the only row on page 2, want 1", m.query.Page)
	}
}

func TestProductsEditKeepsDescriptionAndCategory(t *testing.T) {
	m := newTestProductModel()
	p := testProduct(1, "Café", "12.50")
	p.Description = "moído"
	m = loadTestProducts(m, p)

	m, _ = m.Update(keyRunes("e"))
	if !m.promptOpen {
		t.Fatal("e should open the edit prompt")
	}
	if m.pending.Description != "moído" {
		t.Errorf("pending description = %q, want the original", m.pending.Description)
	}
	if m.prompt.input != "Café" {
		t.Errorf("name field should be prefilled, got %q", m.prompt.input)
	}
}

func TestProductsViewShowsPagePosition(t *testing.T) {
	m := newTestProductModel()
	m = loadTestProducts(m, testProduct(1, "Café", "12.50"))
	m.totalPages = 3
	if !strings.Contains(m.View(), "page 1 of 3") {
		t.Errorf("expected page position in view, got:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "R$ 12.50") {
		t.Errorf("expected formatted price in view, got:\n%s", m.View())
	}
}

func TestRequirePrice(t *testing.T) {
	if err := requirePrice("12.50"); err != nil {
		t.Errorf("requirePrice(12.50) = %v", err)
	}
	if err := requirePrice(" 0 "); err != nil {
		t.Errorf("requirePrice(0) = %v", err)
	}
	if requirePrice("abc") == nil {
		t.Error("requirePrice should reject non-numbers")
	}
	if requirePrice("-1") == nil {
		t.Error("requirePrice should reject negative amounts")
	}
	if requirePrice("") == nil {
		t.Error("requirePrice should reject blank input")
	}
}
