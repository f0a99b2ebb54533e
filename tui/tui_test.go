package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Oudwins/seedance/internals/schemas"
)

func baseArgs() schemas.CreateArgs {
	return schemas.CreateArgs{
		Model:       "seedance-1-5-pro-251215",
		Resolution:  "720p",
		Ratio:       "16:9",
		Duration:    5,
		ServiceTier: "default",
	}
}

func typeText(m createModel, text string) createModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(createModel)
}

func press(m createModel, key tea.KeyType) createModel {
	next, _ := m.Update(tea.KeyMsg{Type: key})
	return next.(createModel)
}

func TestCreateFormSubmit(t *testing.T) {
	m := newCreateModel(baseArgs())
	m = typeText(m, "A cat surfing")
	for i := 0; i < len(m.inputs)-1; i++ {
		m = press(m, tea.KeyTab)
	}
	if m.focus != fieldDuration {
		t.Fatalf("expected focus on duration, got %d", m.focus)
	}
	m = press(m, tea.KeyEnter)
	if !m.submitted {
		t.Fatalf("expected form to submit, err=%q", m.err)
	}

	args, err := m.args()
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	if args.Prompt != "A cat surfing" || args.Model != "seedance-1-5-pro-251215" || args.Duration != 5 {
		t.Fatalf("unexpected args %+v", args)
	}
}

func TestCreateFormRejectsInvalidInput(t *testing.T) {
	m := newCreateModel(baseArgs())
	m.focus = fieldDuration
	m = press(m, tea.KeyEnter)
	if m.submitted {
		t.Fatalf("expected submit to be refused without prompt or image")
	}
	if !strings.Contains(m.err, "--prompt or --image is required") {
		t.Fatalf("unexpected error %q", m.err)
	}
	if !strings.Contains(m.View(), "--prompt or --image is required") {
		t.Fatalf("expected error in view")
	}
}

func TestCreateFormCancel(t *testing.T) {
	m := press(newCreateModel(baseArgs()), tea.KeyEsc)
	if !m.cancelled {
		t.Fatalf("expected form to be cancelled")
	}
}

func TestCreateFormFocusWraps(t *testing.T) {
	m := press(newCreateModel(baseArgs()), tea.KeyShiftTab)
	if m.focus != fieldDuration {
		t.Fatalf("expected focus to wrap to last field, got %d", m.focus)
	}
}
