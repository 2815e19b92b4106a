package tui

import (
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmoraes/catalogo/internal/browser"
	"github.com/jmoraes/catalogo/pkg/client"
)

type view int

const (
	viewLogin view = iota
	viewCategories
	viewProducts
)

// sessionExpiredMsg is emitted by any screen whose request came back 401.
// The root model clears the session and drops back to the login screen.
type sessionExpiredMsg struct{}

// handleUnauthorized turns a 401 into a command that expires the session.
// Screens call it first on every API result; a non-nil command means the
// result must not be processed further.
func handleUnauthorized(err error) tea.Cmd {
	if client.IsStatus(err, http.StatusUnauthorized) {
		return func() tea.Msg { return sessionExpiredMsg{} }
	}
	return nil
}

// Options configures the root model.
type Options struct {
	Version  string
	PageSize int
	DocsURL  string
}

// App is the root bubbletea model: it owns the login, category, and product
// screens and routes messages to whichever one is active.
type App struct {
	client  *client.Client
	session *client.Session
	opts    Options

	view       view
	login      loginModel
	categories categoryModel
	products   productModel

	showHelp bool
	width    int
	height   int
}

func NewApp(c *client.Client, session *client.Session, opts Options) App {
	return App{
		client:     c,
		session:    session,
		opts:       opts,
		view:       viewLogin,
		login:      newLoginModel(c),
		categories: newCategoryModel(c),
		products:   newProductModel(c, opts.PageSize),
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		body := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - chromeHeight}
		a.login, _ = a.login.Update(body)
		a.categories, _ = a.categories.Update(body)
		a.products, _ = a.products.Update(body)
		return a, nil

	case sessionExpiredMsg:
		a.session.Clear()
		a.categories = newCategoryModel(a.client)
		a.products = newProductModel(a.client, a.opts.PageSize)
		a.login = newLoginModel(a.client)
		a.login.status = "session expired, sign in again"
		a.view = viewLogin
		a.showHelp = false
		return a, nil

	case loginSuccessMsg:
		a.view = viewCategories
		return a, tea.Batch(a.categories.Init(), a.products.Init())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if a.showHelp {
			switch msg.String() {
			case "o":
				if a.opts.DocsURL != "" {
					_ = browser.Open(a.opts.DocsURL) //nolint:errcheck
				}
				return a, nil
			default:
				a.showHelp = false
				return a, nil
			}
		}

		if !a.editing() {
			switch msg.String() {
			case "ctrl+l":
				if a.authenticated() {
					a.session.Clear()
					a.categories = newCategoryModel(a.client)
					a.products = newProductModel(a.client, a.opts.PageSize)
					a.login = newLoginModel(a.client)
					a.view = viewLogin
					return a, nil
				}
			case "?":
				if a.authenticated() {
					a.showHelp = true
					return a, nil
				}
			case "1":
				if a.authenticated() {
					a.view = viewCategories
					return a, nil
				}
			case "2":
				if a.authenticated() {
					a.view = viewProducts
					return a, nil
				}
			case "q":
				if a.authenticated() {
					return a, tea.Quit
				}
			}
		}
	}

	return a.route(msg)
}

// route forwards msg to every screen that can own it. Result messages carry
// their screen's concrete type, so only keystrokes need view dispatch.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		switch a.view {
		case viewLogin:
			a.login, cmd = a.login.Update(key)
		case viewCategories:
			a.categories, cmd = a.categories.Update(key)
		case viewProducts:
			a.products, cmd = a.products.Update(key)
		}
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.login, cmd = a.login.Update(msg)
	cmds = append(cmds, cmd)
	a.categories, cmd = a.categories.Update(msg)
	cmds = append(cmds, cmd)
	a.products, cmd = a.products.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// chromeHeight is the number of lines the root model spends on the header
// and help bar around the active screen.
const chromeHeight = 3

func (a App) authenticated() bool {
	return a.session.IsAuthenticated()
}

func (a App) editing() bool {
	switch a.view {
	case viewCategories:
		return a.categories.isEditing()
	case viewProducts:
		return a.products.isEditing()
	}
	return false
}

func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.headerView() + "\n")

	if a.showHelp {
		b.WriteString(a.helpView())
		return b.String()
	}

	switch a.view {
	case viewLogin:
		b.WriteString(a.login.View())
	case viewCategories:
		b.WriteString(a.categories.View())
	case viewProducts:
		b.WriteString(a.products.View())
	}

	b.WriteString("\n " + a.helpBar() + "\n")
	return b.String()
}

func (a App) headerView() string {
	title := titleStyle.Render("CATALOGO")
	version := metaStyle.Render(a.opts.Version)
	if !a.authenticated() {
		return " " + title + "  " + version
	}

	tab := func(key, label string, active bool) string {
		if active {
			return accentStyle.Render("[" + key + "] " + label)
		}
		return dimStyle.Render("[" + key + "] " + label)
	}
	return " " + title + "  " +
		tab("1", "categories", a.view == viewCategories) + "  " +
		tab("2", "products", a.view == viewProducts) + "  " + version
}

func (a App) helpBar() string {
	var screen string
	switch a.view {
	case viewLogin:
		screen = a.login.helpKeys()
	case viewCategories:
		screen = a.categories.helpKeys()
	case viewProducts:
		screen = a.products.helpKeys()
	}
	if a.view == viewLogin || a.editing() {
		return screen
	}
	return screen + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
}

func (a App) helpView() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("── HELP ──") + "\n\n")
	lines := [][2]string{
		{"1 / 2", "switch between categories and products"},
		{"j / k", "move the cursor"},
		{"h / l", "previous / next product page"},
		{"/", "filter categories by name"},
		{"c", "cycle the product category"},
		{"s then 1-4", "sort the product grid by column"},
		{"a / e / d", "add, edit, delete the selected entry"},
		{"y", "copy the selected product to the clipboard"},
		{"r", "reload from the server"},
		{"ctrl+l", "sign out"},
		{"ctrl+c", "quit"},
	}
	for _, l := range lines {
		b.WriteString("   " + helpKeyStyle.Render(padRight(l[0], 12)) + helpLabelStyle.Render(l[1]) + "\n")
	}
	if a.opts.DocsURL != "" {
		b.WriteString("\n   " + helpEntry("o", "open the API docs in your browser") + "\n")
	}
	b.WriteString("\n " + dimStyle.Render("press any key to close") + "\n")
	return b.String()
}
