package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmoraes/catalogo/pkg/browse"
	"github.com/jmoraes/catalogo/pkg/client"
	"github.com/jmoraes/catalogo/pkg/domain"
)

// Category mutation identifiers, used to pick the generic failure message.
const (
	opCategoryAdd    = "add"
	opCategoryEdit   = "edit"
	opCategoryDelete = "delete"
)

type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
}

type categoryMutatedMsg struct {
	op  string
	err error
}

// categoryModel is the category screen: the full set is loaded once,
// ordered by name, and filtered locally as the user types. Mutations go
// through the prompt overlay and re-fetch on success.
type categoryModel struct {
	client        *client.Client
	all           []domain.Category // full loaded set, name-ordered
	visible       []domain.Category // filtered subsequence of all
	cursor        int
	filter        string
	filterFocused bool
	loading       bool
	status        string
	statusErr     bool
	confirming    bool
	promptOpen    bool
	prompt        promptModel
	pendingID     int // category targeted by an open edit prompt
	width         int
	height        int
}

func newCategoryModel(c *client.Client) categoryModel {
	return categoryModel{client: c, loading: true}
}

func (m categoryModel) Init() tea.Cmd {
	return m.load()
}

func (m categoryModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		categories, err := c.ListCategories(context.Background())
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (m categoryModel) selected() (domain.Category, bool) {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return domain.Category{}, false
	}
	return m.visible[m.cursor], true
}

// refilter recomputes the visible subsequence from the loaded set. The
// loaded set itself is never altered by filtering.
func (m *categoryModel) refilter() {
	m.visible = browse.FilterCategories(m.all, m.filter)
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

func (m categoryModel) Update(msg tea.Msg) (categoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		if cmd := handleUnauthorized(msg.err); cmd != nil {
			return m, cmd
		}
		m.loading = false
		if msg.err != nil {
			// Prior rows stay visible on a transport or server failure.
			m.status, m.statusErr = "error loading categories", true
			return m, nil
		}
		m.all = browse.SortCategoriesByName(msg.categories)
		m.refilter()
		return m, nil

	case categoryMutatedMsg:
		if cmd := handleUnauthorized(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err != nil {
			if messages := client.ValidationMessages(msg.err); len(messages) > 0 {
				m.status, m.statusErr = strings.Join(messages, "\n"), true
			} else {
				m.status, m.statusErr = "error "+categoryOpLabel(msg.op)+" category", true
			}
			return m, nil
		}
		m.status, m.statusErr = "category "+categoryOpDone(msg.op), false
		m.loading = true
		return m, m.load()

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
		if m.filterFocused {
			return m.updateFilter(msg)
		}
		m.status, m.statusErr = "", false
		return m.updateList(msg)
	}
	return m, nil
}

func (m categoryModel) updateList(msg tea.KeyMsg) (categoryModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.filterFocused = true
	case "a":
		m.promptOpen = true
		m.prompt = newPrompt(opCategoryAdd, "ADD CATEGORY", []promptField{
			{label: "name", validate: requireNonBlank("name is required")},
		})
	case "e":
		if cat, ok := m.selected(); ok {
			m.promptOpen = true
			m.pendingID = cat.ID
			m.prompt = newPrompt(opCategoryEdit, "EDIT CATEGORY", []promptField{
				{label: "name", initial: cat.Name, validate: requireNonBlank("name is required")},
			})
		}
	case "d":
		if _, ok := m.selected(); ok {
			m.confirming = true
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m categoryModel) updateFilter(msg tea.KeyMsg) (categoryModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filterFocused = false
	case "esc":
		m.filterFocused = false
		m.filter = ""
		m.refilter()
	default:
		m.filter = editRune(m.filter, msg.String())
		m.refilter()
	}
	return m, nil
}

func (m categoryModel) updateConfirm(msg tea.KeyMsg) (categoryModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		if cat, ok := m.selected(); ok {
			c := m.client
			id := cat.ID
			return m, func() tea.Msg {
				err := c.DeleteCategory(context.Background(), id)
				return categoryMutatedMsg{op: opCategoryDelete, err: err}
			}
		}
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m categoryModel) updatePrompt(msg tea.KeyMsg) (categoryModel, tea.Cmd) {
	var done *promptDone
	m.prompt, done = m.prompt.Update(msg)
	if done == nil {
		return m, nil
	}
	m.promptOpen = false
	if done.canceled {
		return m, nil
	}
	name := strings.TrimSpace(done.values[0])
	c := m.client
	switch done.op {
	case opCategoryAdd:
		return m, func() tea.Msg {
			err := c.CreateCategory(context.Background(), name)
			return categoryMutatedMsg{op: opCategoryAdd, err: err}
		}
	case opCategoryEdit:
		id := m.pendingID
		return m, func() tea.Msg {
			err := c.UpdateCategory(context.Background(), id, name)
			return categoryMutatedMsg{op: opCategoryEdit, err: err}
		}
	}
	return m, nil
}

func (m categoryModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render(fmt.Sprintf("── CATEGORIES %d ──", len(m.visible))) + "\n")

	if m.promptOpen {
		b.WriteString(m.prompt.View())
		return truncateToHeight(b.String(), m.height)
	}

	// Filter line
	switch {
	case m.filterFocused:
		b.WriteString(" " + searchStyle.Render("/ "+m.filter+"█") + "\n")
	case m.filter != "":
		b.WriteString(" " + searchStyle.Render("/ "+m.filter) + "\n")
	default:
		b.WriteString(" " + inputPlaceholderStyle.Render("/ filter...") + "\n")
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

	if len(m.visible) == 0 {
		if m.filter != "" {
			b.WriteString(" " + dimStyle.Render("no categories match the filter") + "\n")
		} else {
			b.WriteString(" " + dimStyle.Render("no categories yet · press a to add one") + "\n")
		}
		return truncateToHeight(b.String(), m.height)
	}

	for i, cat := range m.visible {
		cursor := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = selectedStyle
		}
		line := " " + cursor + nameStyle.Render(truncStr(cat.Name, 30)) +
			"  " + metaStyle.Render(fmt.Sprintf("(%d)", cat.ProductCount()))
		b.WriteString(line + "\n")

		if i == m.cursor && m.confirming {
			b.WriteString("   " + errStyle.Render("delete '"+cat.Name+"' and all of its products? ") +
				accentStyle.Render("y") + dimStyle.Render("/n") + "\n")
		}
	}

	// Products panel for the selected category
	if cat, ok := m.selected(); ok {
		b.WriteString("\n " + sectionHeaderStyle.Render("── PRODUCTS ──") + "\n")
		if len(cat.Products) == 0 {
			b.WriteString("   " + dimStyle.Render("no products in this category") + "\n")
		}
		for _, p := range cat.Products {
			b.WriteString("   " + normalStyle.Render(truncStr(p.Name, 40)) + "\n")
		}
	}

	return truncateToHeight(b.String(), m.height)
}

func (m categoryModel) helpKeys() string {
	switch {
	case m.promptOpen:
		return helpEntry("enter", "next") + "  " + helpEntry("esc", "cancel")
	case m.confirming:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	case m.filterFocused:
		return helpEntry("enter", "done") + "  " + helpEntry("esc", "clear")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("/", "filter") + "  " +
			helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " +
			helpEntry("d", "delete") + "  " + helpEntry("r", "reload")
	}
}

func (m categoryModel) isEditing() bool {
	return m.filterFocused || m.promptOpen
}

func categoryOpLabel(op string) string {
	switch op {
	case opCategoryEdit:
		return "updating"
	case opCategoryDelete:
		return "deleting"
	default:
		return "adding"
	}
}

func categoryOpDone(op string) string {
	switch op {
	case opCategoryEdit:
		return "updated"
	case opCategoryDelete:
		return "deleted"
	default:
		return "added"
	}
}

// requireNonBlank rejects blank input with the given message.
func requireNonBlank(message string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	}
}
