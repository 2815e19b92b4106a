package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmoraes/catalogo/pkg/client"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct{ err error }

// loginSuccessMsg tells the root model the session is authenticated.
type loginSuccessMsg struct{}

type loginModel struct {
	client   *client.Client
	username string
	password string
	focus    int // 0=username, 1=password
	status   string
	busy     bool
	width    int
	height   int
}

func newLoginModel(c *client.Client) loginModel {
	return loginModel{client: c}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			var httpErr *client.HTTPError
			var valErr *client.ValidationError
			if errors.As(msg.err, &httpErr) || errors.As(msg.err, &valErr) {
				m.status = "invalid username or password"
			} else {
				m.status = "cannot reach the API, check your connection"
			}
			return m, nil
		}
		m.status = ""
		m.password = ""
		return m, func() tea.Msg { return loginSuccessMsg{} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % 2
		case "shift+tab", "up":
			m.focus = (m.focus + 1) % 2
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				return m, nil
			}
			username := strings.TrimSpace(m.username)
			if username == "" || strings.TrimSpace(m.password) == "" {
				m.status = "enter username and password"
				return m, nil
			}
			m.busy = true
			m.status = ""
			c := m.client
			password := m.password
			return m, func() tea.Msg {
				err := c.Login(context.Background(), username, password)
				return loginResultMsg{err: err}
			}
		default:
			if m.focus == 0 {
				m.username = editRune(m.username, msg.String())
			} else {
				m.password = editRune(m.password, msg.String())
			}
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + titleStyle.Render("CATALOGO") + "  " + metaStyle.Render("sign in") + "\n\n")

	userLabel := inputPromptStyle.Render("username:")
	passLabel := inputPromptStyle.Render("password:")
	masked := strings.Repeat("•", len([]rune(m.password)))

	if m.focus == 0 {
		b.WriteString("   " + accentStyle.Render(">") + " " + userLabel + " " + m.username + accentStyle.Render("█") + "\n")
		b.WriteString("     " + passLabel + " " + dimStyle.Render(masked) + "\n")
	} else {
		b.WriteString("     " + userLabel + " " + dimStyle.Render(m.username) + "\n")
		b.WriteString("   " + accentStyle.Render(">") + " " + passLabel + " " + masked + accentStyle.Render("█") + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("   " + dimStyle.Render("signing in...") + "\n")
	case m.status != "":
		b.WriteString("   " + errStyle.Render(m.status) + "\n")
	}

	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+c", "quit")
}
