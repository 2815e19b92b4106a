package tui

import tea "github.com/charmbracelet/bubbletea"

// promptField describes one value the prompt overlay collects from the
// user: a label, an optional initial value, and an optional validator.
type promptField struct {
	label    string
	initial  string
	optional bool
	validate func(string) error
}

// promptDone carries the outcome of a prompt sequence back to the owning
// screen: either every collected value in field order, or a cancellation.
// The owning operation stays suspended — no request is sent — until one of
// the two arrives.
type promptDone struct {
	op       string
	values   []string
	canceled bool
}

// promptModel collects a sequence of field values one at a time. A failed
// validation keeps the current field active with a warning, so the user is
// re-prompted until the value passes or they cancel with esc.
type promptModel struct {
	op      string
	title   string
	fields  []promptField
	values  []string
	index   int
	input   string
	warning string
}

func newPrompt(op, title string, fields []promptField) promptModel {
	m := promptModel{op: op, title: title, fields: fields}
	if len(fields) > 0 {
		m.input = fields[0].initial
	}
	return m
}

// Update consumes a keystroke. A non-nil done means the sequence finished,
// by completion or cancellation, and the overlay should be closed.
func (m promptModel) Update(msg tea.KeyMsg) (promptModel, *promptDone) {
	switch msg.String() {
	case "esc":
		return m, &promptDone{op: m.op, canceled: true}
	case "enter":
		field := m.fields[m.index]
		if field.validate != nil {
			if err := field.validate(m.input); err != nil {
				m.warning = err.Error()
				return m, nil
			}
		}
		m.values = append(m.values, m.input)
		m.warning = ""
		m.index++
		if m.index >= len(m.fields) {
			return m, &promptDone{op: m.op, values: m.values}
		}
		m.input = m.fields[m.index].initial
		return m, nil
	default:
		m.input = editRune(m.input, msg.String())
		return m, nil
	}
}

func (m promptModel) View() string {
	s := " " + sectionHeaderStyle.Render("── "+m.title+" ──") + "\n"
	for i, f := range m.fields {
		label := f.label
		if f.optional {
			label += " (optional)"
		}
		switch {
		case i < m.index:
			s += "   " + inputPromptStyle.Render(label+":") + " " + dimStyle.Render(m.values[i]) + "\n"
		case i == m.index:
			s += "   " + accentStyle.Render(">") + " " + inputPromptStyle.Render(label+":") + " " + m.input + accentStyle.Render("█") + "\n"
		default:
			s += "     " + metaStyle.Render(label+":") + "\n"
		}
	}
	if m.warning != "" {
		s += "   " + warnStyle.Render(m.warning) + "\n"
	}
	s += "   " + dimStyle.Render("enter next · esc cancel") + "\n"
	return s
}
