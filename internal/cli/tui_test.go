package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/graphmapper/pkg/session"
)

func newTestEditor(t *testing.T) (EditorModel, *session.Controller) {
	t.Helper()
	ctrl, err := session.New(session.Options{OutDir: t.TempDir(), Key: "m-tui"})
	if err != nil {
		t.Fatalf("session.New() error: %v", err)
	}
	return NewEditorModel(context.Background(), ctrl), ctrl
}

// send applies key messages to the model in order.
func send(m EditorModel, msgs ...tea.Msg) EditorModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(EditorModel)
	}
	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestEditorAddsEntity(t *testing.T) {
	m, ctrl := newTestEditor(t)

	m = send(m, typed("Pizza"), keyTab, typed("food"), tea.KeyMsg{Type: tea.KeyCtrlO}, keyEnter)

	entities := ctrl.Store().ListEntities("food")
	if len(entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(entities))
	}
	if !entities[0].Central {
		t.Error("entity should be central")
	}
	if m.entity[entityName].Value() != "" {
		t.Errorf("name field = %q, want cleared", m.entity[entityName].Value())
	}
	if m.entity[entityType].Value() != "food" {
		t.Errorf("type field = %q, want kept", m.entity[entityType].Value())
	}
	if m.focus != entityName {
		t.Errorf("focus = %d, want name field", m.focus)
	}
}

func TestEditorSuggestions(t *testing.T) {
	m, _ := newTestEditor(t)
	m = send(m, typed("Pizza Margherita"), keyTab, typed("food"), keyEnter)

	m = send(m, typed("pizza marg"))
	if len(m.suggestions) != 1 || m.suggestions[0].Entity.Name != "Pizza Margherita" {
		t.Fatalf("suggestions = %+v, want Pizza Margherita", m.suggestions)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.entity[entityName].Value(); got != "Pizza Margherita" {
		t.Errorf("accepted suggestion = %q, want Pizza Margherita", got)
	}
}

func TestEditorAddsEdge(t *testing.T) {
	m, ctrl := newTestEditor(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != modeEdge {
		t.Fatalf("mode = %v, want edge", m.mode)
	}
	m = send(m,
		typed("gretchen"), keyTab, typed("person"), keyTab,
		typed("cucumber"), keyTab, typed("food"), keyTab,
		typed("likes"), tea.KeyMsg{Type: tea.KeyCtrlD}, keyEnter)

	edges := ctrl.Store().ListEdges()
	if len(edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(edges))
	}
	if got, want := ctrl.Store().Describe(edges[0]), "(1) [gretchen.person] --.likes.-->> [cucumber.food]"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
	if m.edge[edgeSourceType].Value() != "person" {
		t.Error("source type should be kept after submit")
	}
}

func TestEditorReportsValidation(t *testing.T) {
	m, ctrl := newTestEditor(t)

	m = send(m, typed("pizza"), keyEnter)

	if ctrl.Catalog().Len() != 0 {
		t.Error("failed submit should not create entities")
	}
	if len(m.messages) != 1 || m.messages[0].level != 3 {
		t.Fatalf("messages = %+v, want one error", m.messages)
	}
	if !strings.Contains(m.View(), "required") {
		t.Error("view should show the validation message")
	}
}

func TestEditorExport(t *testing.T) {
	m, _ := newTestEditor(t)
	m = send(m, typed("pizza"), keyTab, typed("food"), keyEnter)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = next.(EditorModel)
	if !m.exporting || cmd == nil {
		t.Fatal("ctrl+e should start an export")
	}
	m = send(m, cmd())
	if m.exporting {
		t.Error("export should be finished")
	}
	if !strings.Contains(m.View(), "Exported 2 files") {
		t.Errorf("view should report the export:\n%s", m.View())
	}
}

func TestEditorBlocksIntentsDuringExport(t *testing.T) {
	m, ctrl := newTestEditor(t)
	m = send(m, typed("pizza"), keyTab, typed("food"), keyEnter)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = next.(EditorModel)
	if cmd == nil {
		t.Fatal("ctrl+e should start an export")
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	m = send(m, typed("salad"), keyEnter, tea.KeyMsg{Type: tea.KeyCtrlY})
	if len(m.suggestions) != 0 {
		t.Errorf("suggestions = %+v, want none while exporting", m.suggestions)
	}

	m = send(m, <-done)
	if got := ctrl.Catalog().Len(); got != 1 {
		t.Fatalf("entities = %d, want 1: submit during export must be ignored", got)
	}
	if got := m.entity[entityName].Value(); got != "salad" {
		t.Errorf("name field = %q, want salad kept", got)
	}
	if len(m.suggestions) == 0 {
		t.Error("suggestions should come back after the export")
	}

	m = send(m, keyEnter)
	if got := ctrl.Catalog().Len(); got != 2 {
		t.Errorf("entities = %d, want 2 after the export finished", got)
	}
}

func TestEditorQuit(t *testing.T) {
	m, _ := newTestEditor(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
}
