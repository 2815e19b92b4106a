package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var keyEsc = tea.KeyMsg{Type: tea.KeyEsc}

func typePrompt(m promptModel, s string) promptModel {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestPromptCollectsFieldsInOrder(t *testing.T) {
	m := newPrompt("add", "ADD", []promptField{
		{label: "name"},
		{label: "price"},
	})
	m = typePrompt(m, "Café")
	m, done := m.Update(keyEnter)
	if done != nil {
		t.Fatal("sequence must not finish with a field pending")
	}
	m = typePrompt(m, "12.50")
	_, done = m.Update(keyEnter)
	if done == nil {
		t.Fatal("sequence should finish after the last field")
	}
	if done.canceled {
		t.Fatal("completed sequence must not be canceled")
	}
	if done.values[0] != "Café" || done.values[1] != "12.50" {
		t.Errorf("values = %v", done.values)
	}
}

func TestPromptRepromptsOnInvalidValue(t *testing.T) {
	m := newPrompt("add", "ADD", []promptField{
		{label: "name", validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("name is required")
			}
			return nil
		}},
	})

	m, done := m.Update(keyEnter)
	if done != nil {
		t.Fatal("invalid value must keep the prompt open")
	}
	if m.warning != "name is required" {
		t.Errorf("warning = %q", m.warning)
	}
	if !strings.Contains(m.View(), "name is required") {
		t.Error("warning should be visible in the view")
	}

	// A valid value clears the warning and finishes.
	m = typePrompt(m, "Bebidas")
	m, done = m.Update(keyEnter)
	if done == nil {
		t.Fatal("valid value should finish the single-field sequence")
	}
	if m.warning != "" {
		t.Errorf("warning = %q after valid value, want empty", m.warning)
	}
}

func TestPromptEscCancels(t *testing.T) {
	m := newPrompt("edit", "EDIT", []promptField{{label: "name"}})
	m = typePrompt(m, "half-typed")
	_, done := m.Update(keyEsc)
	if done == nil || !done.canceled {
		t.Fatal("esc must cancel the sequence")
	}
	if done.op != "edit" {
		t.Errorf("op = %q, want edit", done.op)
	}
	if len(done.values) != 0 {
		t.Errorf("canceled sequence must carry no values, got %v", done.values)
	}
}

func TestPromptInitialValues(t *testing.T) {
	m := newPrompt("edit", "EDIT", []promptField{
		{label: "name", initial: "Bebidas"},
		{label: "price", initial: "3.50"},
	})
	if m.input != "Bebidas" {
		t.Errorf("input = %q, want prefilled initial", m.input)
	}
	m, _ = m.Update(keyEnter)
	if m.input != "3.50" {
		t.Errorf("second field input = %q, want its initial", m.input)
	}
}
