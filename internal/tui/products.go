package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/jmoraes/catalogo/pkg/browse"
	"github.com/jmoraes/catalogo/pkg/client"
	"github.com/jmoraes/catalogo/pkg/domain"
)

const (
	opProductAdd    = "add"
	opProductEdit   = "edit"
	opProductDelete = "delete"
)

type productCatsMsg struct {
	categories []domain.Category
	err        error
}

// productsPageMsg carries one fetched page, stamped with the generation of
// the fetch that produced it so late responses from superseded fetches are
// dropped instead of overwriting newer state.
type productsPageMsg struct {
	gen  int
	page *domain.ProductPage
	err  error
}

type productMutatedMsg struct {
	op  string
	err error
}

// productModel is the paged product grid. Category selection and paging go
// to the server; sorting reorders the fetched page locally.
type productModel struct {
	client   *client.Client
	pageSize int

	categories []domain.Category // name-ordered, for the category cycle
	catIndex   int

	query      browse.ProductQuery
	raw        []domain.Product // current page in server order
	rows       []domain.Product // current page in sort order
	totalPages int
	cursor     int

	gen     int // fetch generation, bumped per request
	loading bool

	status    string
	statusErr bool

	sortMode   bool
	confirming bool
	promptOpen bool
	prompt     promptModel
	pending    domain.Product // product targeted by an open edit prompt

	width  int
	height int
}

func newProductModel(c *client.Client, pageSize int) productModel {
	if pageSize <= 0 {
		pageSize = browse.DefaultPageSize
	}
	return productModel{
		client:   c,
		pageSize: pageSize,
		query:    browse.NewProductQuery(pageSize),
		loading:  true,
	}
}

func (m productModel) Init() tea.Cmd {
	return m.loadCategories()
}

func (m productModel) loadCategories() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		categories, err := c.ListCategories(context.Background())
		return productCatsMsg{categories: categories, err: err}
	}
}

// fetchPage bumps the generation and requests the query's current page.
// Call on the model pointer so the bump is kept.
func (m *productModel) fetchPage() tea.Cmd {
	m.gen++
	m.loading = true
	gen := m.gen
	c := m.client
	q := m.query
	return func() tea.Msg {
		page, err := c.PagedProducts(context.Background(), q.Page, q.PageSize, q.CategoryID)
		return productsPageMsg{gen: gen, page: page, err: err}
	}
}

func (m productModel) selected() (domain.Product, bool) {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return domain.Product{}, false
	}
	return m.rows[m.cursor], true
}

func (m productModel) currentCategory() (domain.Category, bool) {
	if len(m.categories) == 0 {
		return domain.Category{}, false
	}
	return m.categories[m.catIndex], true
}

func (m productModel) Update(msg tea.Msg) (productModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productCatsMsg:
		if cmd := handleUnauthorized(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err != nil {
			m.loading = false
			m.status, m.statusErr = "error loading categories", true
			return m, nil
		}
		m.categories = browse.SortCategoriesByName(msg.categories)
		if len(m.categories) == 0 {
			m.loading = false
			m.status, m.statusErr = "no categories yet, add one on the categories tab", false
			return m, nil
		}
		m.catIndex = 0
		m.query.SelectCategory(m.categories[0].ID)
		cmd := m.fetchPage()
		return m, cmd

	case productsPageMsg:
		if msg.gen != m.gen {
			// A newer fetch is in flight or already landed.
			return m, nil
		}
		if cmd := handleUnauthorized(msg.err); cmd != nil {
			return m, cmd
		}
		m.loading = false
		if msg.err != nil {
			// Keep whatever page was already on screen.
			m.status, m.statusErr = "error loading products", true
			return m, nil
		}
		m.query.RecordPage(msg.page)
		m.totalPages = msg.page.TotalPages
		m.raw = msg.page.Items
		m.rows = m.query.Apply(m.raw)
		m.cursor = 0
		m.status, m.statusErr = "", false
		return m, nil

	case productMutatedMsg:
		if cmd := handleUnauthorized(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err != nil {
			if messages := client.ValidationMessages(msg.err); len(messages) > 0 {
				m.status, m.statusErr = strings.Join(messages, "\n"), true
			} else {
				m.status, m.statusErr = "error "+productOpLabel(msg.op)+" product", true
			}
			return m, nil
		}
		m.status, m.statusErr = "product "+productOpDone(msg.op), false
		if msg.op == opProductDelete {
			m.query.AfterDelete(len(m.rows))
		}
		cmd := m.fetchPage()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.promptOpen {
			return m.updatePrompt(msg)
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		if m.sortMode {
			return m.updateSort(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m productModel) updateGrid(msg tea.KeyMsg) (productModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "h", "left":
		if m.query.Prev() {
			cmd := m.fetchPage()
			return m, cmd
		}
	case "l", "right":
		if m.query.Next() {
			cmd := m.fetchPage()
			return m, cmd
		}
	case "c":
		if len(m.categories) > 0 {
			m.catIndex = (m.catIndex + 1) % len(m.categories)
			m.query.SelectCategory(m.categories[m.catIndex].ID)
			cmd := m.fetchPage()
			return m, cmd
		}
	case "s":
		m.sortMode = true
	case "a":
		if _, ok := m.currentCategory(); ok {
			m.promptOpen = true
			m.prompt = newPrompt(opProductAdd, "ADD PRODUCT", []promptField{
				{label: "name", validate: requireNonBlank("name is required")},
				{label: "price", validate: requirePrice},
				{label: "description", optional: true},
			})
		}
	case "e":
		if p, ok := m.selected(); ok {
			m.promptOpen = true
			m.pending = p
			m.prompt = newPrompt(opProductEdit, "EDIT PRODUCT", []promptField{
				{label: "name", initial: p.Name, validate: requireNonBlank("name is required")},
				{label: "price", initial: p.Price.StringFixed(2), validate: requirePrice},
			})
		}
	case "d":
		if _, ok := m.selected(); ok {
			m.confirming = true
		}
	case "y":
		if p, ok := m.selected(); ok {
			if err := clipboard.WriteAll(m.detailText(p)); err != nil {
				m.status, m.statusErr = "clipboard unavailable", true
			} else {
				m.status, m.statusErr = "copied to clipboard", false
			}
		}
	case "r":
		cmd := m.fetchPage()
		return m, tea.Batch(m.loadCategories(), cmd)
	}
	return m, nil
}

// updateSort maps the next keystroke to a grid column. Repeating a column
// flips its direction.
func (m productModel) updateSort(msg tea.KeyMsg) (productModel, tea.Cmd) {
	m.sortMode = false
	var col browse.SortColumn
	switch msg.String() {
	case "1":
		col = browse.SortID
	case "2":
		col = browse.SortName
	case "3":
		col = browse.SortDescription
	case "4":
		col = browse.SortPrice
	default:
		return m, nil
	}
	m.query.ToggleSort(col)
	m.rows = m.query.Apply(m.raw)
	m.cursor = 0
	return m, nil
}

func (m productModel) updateConfirm(msg tea.KeyMsg) (productModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		if p, ok := m.selected(); ok {
			c := m.client
			id := p.ID
			return m, func() tea.Msg {
				err := c.DeleteProduct(context.Background(), id)
				return productMutatedMsg{op: opProductDelete, err: err}
			}
		}
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m productModel) updatePrompt(msg tea.KeyMsg) (productModel, tea.Cmd) {
	var done *promptDone
	m.prompt, done = m.prompt.Update(msg)
	if done == nil {
		return m, nil
	}
	m.promptOpen = false
	if done.canceled {
		return m, nil
	}
	c := m.client
	switch done.op {
	case opProductAdd:
		cat, ok := m.currentCategory()
		if !ok {
			return m, nil
		}
		price, _ := decimal.NewFromString(strings.TrimSpace(done.values[1]))
		req := client.CreateProductRequest{
			Name:        strings.TrimSpace(done.values[0]),
			Price:       price,
			Description: strings.TrimSpace(done.values[2]),
			CategoryID:  cat.ID,
		}
		return m, func() tea.Msg {
			err := c.CreateProduct(context.Background(), req)
			return productMutatedMsg{op: opProductAdd, err: err}
		}
	case opProductEdit:
		price, _ := decimal.NewFromString(strings.TrimSpace(done.values[1]))
		// Description and category carry over unchanged.
		req := client.UpdateProductRequest{
			ID:          m.pending.ID,
			Name:        strings.TrimSpace(done.values[0]),
			Price:       price,
			Description: m.pending.Description,
			CategoryID:  m.pending.CategoryID,
		}
		return m, func() tea.Msg {
			err := c.UpdateProduct(context.Background(), req)
			return productMutatedMsg{op: opProductEdit, err: err}
		}
	}
	return m, nil
}

func (m productModel) detailText(p domain.Product) string {
	catName := ""
	if cat, ok := m.currentCategory(); ok {
		catName = cat.Name
	}
	return fmt.Sprintf("#%d %s\n%s\n%s\ncategory: %s",
		p.ID, p.Name, p.Description, formatPrice(p.Price), catName)
}

func (m productModel) View() string {
	var b strings.Builder

	catName := "—"
	if cat, ok := m.currentCategory(); ok {
		catName = cat.Name
	}
	b.WriteString(" " + sectionHeaderStyle.Render("── PRODUCTS ──") + "  " +
		accentStyle.Render(truncStr(catName, 24)) + "\n")

	if m.promptOpen {
		b.WriteString(m.prompt.View())
		return truncateToHeight(b.String(), m.height)
	}

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errStyle
		}
		for _, line := range strings.Split(m.status, "\n") {
			b.WriteString(" " + style.Render(line) + "\n")
		}
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return truncateToHeight(b.String(), m.height)
	}

	// Column header, with the active sort marked
	b.WriteString("   " + metaStyle.Render(
		padRight(m.colHeader("1 id", browse.SortID), 7)+
			padRight(m.colHeader("2 name", browse.SortName), 22)+
			padRight(m.colHeader("3 description", browse.SortDescription), 28)+
			m.colHeader("4 price", browse.SortPrice)) + "\n")

	if len(m.rows) == 0 {
		b.WriteString("   " + dimStyle.Render("no products on this page") + "\n")
	}

	for i, p := range m.rows {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			style = selectedStyle
		}
		line := " " + cursor +
			style.Render(padRight(fmt.Sprintf("%d", p.ID), 7)) +
			style.Render(padRight(p.Name, 22)) +
			dimStyle.Render(padRight(p.Description, 28)) +
			priceStyle.Render(formatPrice(p.Price))
		b.WriteString(line + "\n")

		if i == m.cursor && m.confirming {
			b.WriteString("   " + errStyle.Render("delete '"+p.Name+"'? ") +
				accentStyle.Render("y") + dimStyle.Render("/n") + "\n")
		}
	}

	// Page position footer
	pageInfo := fmt.Sprintf("page %d", m.query.Page)
	if m.totalPages > 0 {
		pageInfo = fmt.Sprintf("page %d of %d", m.query.Page, m.totalPages)
	}
	b.WriteString("\n " + metaStyle.Render(pageInfo) + "\n")

	if m.sortMode {
		b.WriteString(" " + warnStyle.Render("sort by: 1 id · 2 name · 3 description · 4 price") + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}

// colHeader marks the header of the active sort column with a direction
// arrow.
func (m productModel) colHeader(label string, col browse.SortColumn) string {
	if m.query.SortColumn != col {
		return label
	}
	if m.query.SortAscending {
		return label + "↑"
	}
	return label + "↓"
}

func (m productModel) helpKeys() string {
	switch {
	case m.promptOpen:
		return helpEntry("enter", "next") + "  " + helpEntry("esc", "cancel")
	case m.confirming:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	case m.sortMode:
		return helpEntry("1-4", "column") + "  " + helpEntry("esc", "cancel")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("h/l", "page") + "  " +
			helpEntry("c", "category") + "  " + helpEntry("s", "sort") + "  " +
			helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " +
			helpEntry("d", "delete") + "  " + helpEntry("y", "copy")
	}
}

func (m productModel) isEditing() bool {
	return m.promptOpen
}

func productOpLabel(op string) string {
	switch op {
	case opProductEdit:
		return "updating"
	case opProductDelete:
		return "deleting"
	default:
		return "adding"
	}
}

func productOpDone(op string) string {
	switch op {
	case opProductEdit:
		return "updated"
	case opProductDelete:
		return "deleted"
	default:
		return "added"
	}
}

// requirePrice accepts a decimal amount of zero or more.
func requirePrice(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("price must be a number")
	}
	if d.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}
