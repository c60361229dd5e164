package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/session"
)

// Editor styles
var (
	editorLabelStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	editorFocusStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Width(12)
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editorBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// maxEditorMessages bounds the message log shown under the form.
const maxEditorMessages = 6

type editorMode int

const (
	modeEntity editorMode = iota
	modeEdge
)

func (m editorMode) String() string {
	if m == modeEdge {
		return "Edge"
	}
	return "Entity"
}

// Field indexes per mode.
const (
	entityName = iota
	entityType
	entityTypeName
)

const (
	edgeSource = iota
	edgeSourceType
	edgeTarget
	edgeTargetType
	edgeLabel
)

// exportDoneMsg carries the outcome of an asynchronous export.
type exportDoneMsg struct {
	out session.Outcome
}

// editorMessage is one line of the message log.
type editorMessage struct {
	text  string
	level int // 0 info, 1 success, 2 warning, 3 error
}

// =============================================================================
// EditorModel - Interactive entity and edge entry
// =============================================================================

// EditorModel is the bubbletea model for the interactive editor.
type EditorModel struct {
	ctx  context.Context
	ctrl *session.Controller

	mode     editorMode
	entity   []textinput.Model
	edge     []textinput.Model
	focus    int
	central  bool
	directed bool

	suggestions []catalog.Suggestion
	cursor      int

	exporting bool // an Export intent owns the session until exportDoneMsg
	messages  []editorMessage
}

// NewEditorModel creates an editor bound to a session controller.
func NewEditorModel(ctx context.Context, ctrl *session.Controller) EditorModel {
	m := EditorModel{
		ctx:    ctx,
		ctrl:   ctrl,
		entity: newInputs("name", "type id", "type name (optional)"),
		edge:   newInputs("source name", "source type", "target name", "target type", "edge type (optional)"),
		cursor: -1,
	}
	m.inputs()[0].Focus()
	return m
}

func newInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 40
		inputs[i] = ti
	}
	return inputs
}

func (m *EditorModel) inputs() []textinput.Model {
	if m.mode == modeEdge {
		return m.edge
	}
	return m.entity
}

func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.exporting = false
		m.refreshSuggestions()
		m.report(msg.out)
		if msg.out.OK() {
			m.log(1, "Exported %d files", len(msg.out.Files))
			for _, f := range msg.out.Files {
				m.log(0, "%s %s", iconArrow, f)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.setMode(1 - m.mode)
			return m, nil
		case "ctrl+o":
			if m.mode == modeEntity {
				m.central = !m.central
			}
			return m, nil
		case "ctrl+d":
			if m.mode == modeEdge {
				m.directed = !m.directed
			}
			return m, nil
		case "ctrl+e":
			if m.exporting {
				return m, nil
			}
			m.exporting = true
			m.suggestions, m.cursor = nil, -1
			m.log(0, "Exporting...")
			return m, m.export()
		case "tab", "down":
			if msg.String() == "down" && len(m.suggestions) > 0 {
				m.cursor = min(m.cursor+1, len(m.suggestions)-1)
				return m, nil
			}
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			if msg.String() == "up" && m.cursor >= 0 {
				m.cursor--
				return m, nil
			}
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+y":
			if m.exporting {
				return m, nil
			}
			if m.cursor >= 0 && m.cursor < len(m.suggestions) {
				m.inputs()[m.focus].SetValue(m.suggestions[m.cursor].Entity.Name)
				m.inputs()[m.focus].CursorEnd()
				m.refreshSuggestions()
			}
			return m, nil
		case "enter":
			if m.exporting {
				m.log(2, "Export in progress, try again when it finishes")
				return m, nil
			}
			m.submit()
			return m, nil
		}
	}

	inputs := m.inputs()
	var cmd tea.Cmd
	inputs[m.focus], cmd = inputs[m.focus].Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

func (m *EditorModel) setMode(mode editorMode) {
	m.inputs()[m.focus].Blur()
	m.mode = mode
	m.focus = 0
	m.inputs()[0].Focus()
	m.refreshSuggestions()
}

func (m *EditorModel) setFocus(i int) {
	inputs := m.inputs()
	n := len(inputs)
	inputs[m.focus].Blur()
	m.focus = (i%n + n) % n
	inputs[m.focus].Focus()
	m.refreshSuggestions()
}

// nameField returns the type field paired with the focused name field.
func (m *EditorModel) nameField() (typeIdx int, ok bool) {
	switch {
	case m.mode == modeEntity && m.focus == entityName:
		return entityType, true
	case m.mode == modeEdge && m.focus == edgeSource:
		return edgeSourceType, true
	case m.mode == modeEdge && m.focus == edgeTarget:
		return edgeTargetType, true
	}
	return 0, false
}

// refreshSuggestions reranks the focused name field. The catalog is left
// alone while an export reads it on another goroutine.
func (m *EditorModel) refreshSuggestions() {
	m.suggestions, m.cursor = nil, -1
	if m.exporting {
		return
	}
	typeIdx, ok := m.nameField()
	if !ok {
		return
	}
	inputs := m.inputs()
	m.suggestions = m.ctrl.Catalog().Suggest(inputs[m.focus].Value(), inputs[typeIdx].Value(), defaultSuggestions)
}

// submit sends the current form as an intent.
func (m *EditorModel) submit() {
	ctx := m.ctx
	if m.mode == modeEntity {
		in := session.CreateOrResolveEntity{
			Name:     m.entity[entityName].Value(),
			TypeID:   m.entity[entityType].Value(),
			TypeName: m.entity[entityTypeName].Value(),
			Central:  m.central,
		}
		out := m.ctrl.Handle(ctx, in)
		if !m.report(out) {
			return
		}
		m.log(1, "%s: %s %s", out.Entity.Entity.TypeID, out.Entity.Entity.Name, resolutionLabel(*out.Entity))
		m.entity[entityName].Reset()
		m.central = false
		m.setFocus(entityName)
		return
	}

	in := session.CreateEdge{
		SourceName: m.edge[edgeSource].Value(),
		SourceType: m.edge[edgeSourceType].Value(),
		TargetName: m.edge[edgeTarget].Value(),
		TargetType: m.edge[edgeTargetType].Value(),
		EdgeType:   m.edge[edgeLabel].Value(),
		Directed:   m.directed,
	}
	out := m.ctrl.Handle(ctx, in)
	if !m.report(out) {
		return
	}
	desc := m.ctrl.Store().Describe(out.Link.Edge)
	if out.Link.Created {
		m.log(1, "%s", desc)
	} else {
		m.log(0, "%s (exists)", desc)
	}
	m.edge[edgeSource].Reset()
	m.edge[edgeTarget].Reset()
	m.setFocus(edgeSource)
}

// report logs the outcome's error and warnings and reports success.
func (m *EditorModel) report(out session.Outcome) bool {
	for _, w := range out.Warnings {
		m.log(2, "%s", errors.UserMessage(w))
	}
	if out.Err != nil {
		m.log(3, "%s", errors.UserMessage(out.Err))
		return false
	}
	return true
}

func (m *EditorModel) log(level int, format string, args ...any) {
	m.messages = append(m.messages, editorMessage{text: fmt.Sprintf(format, args...), level: level})
	if n := len(m.messages); n > maxEditorMessages {
		m.messages = m.messages[n-maxEditorMessages:]
	}
}

func (m EditorModel) export() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return exportDoneMsg{out: ctrl.Handle(ctx, session.Export{})}
	}
}

func resolutionLabel(r catalog.Resolution) string {
	if r.Minted {
		return "(" + iconMinted + ")"
	}
	return fmt.Sprintf("(%s %d%%)", iconReused, r.Score)
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s %s", appName, m.ctrl.Key())))
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("  %s mode", m.mode)))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("tab next  ⏎ submit  ctrl+t mode  ctrl+y accept  ctrl+e export  esc quit"))
	b.WriteString("\n\n")

	var labels []string
	if m.mode == modeEdge {
		labels = []string{"Source", "Source type", "Target", "Target type", "Edge type"}
	} else {
		labels = []string{"Name", "Type", "Type name"}
	}
	var form strings.Builder
	for i, in := range m.inputs() {
		label := editorLabelStyle
		if i == m.focus {
			label = editorFocusStyle
		}
		form.WriteString(label.Render(labels[i]) + " " + in.View() + "\n")
	}
	if m.mode == modeEdge {
		form.WriteString(editorLabelStyle.Render("Directed") + " " + checkbox(m.directed) + editorDimStyle.Render("  ctrl+d"))
	} else {
		form.WriteString(editorLabelStyle.Render("Central") + " " + checkbox(m.central) + editorDimStyle.Render("  ctrl+o"))
	}
	b.WriteString(editorBoxStyle.Render(form.String()))
	b.WriteString("\n")

	if len(m.suggestions) > 0 {
		threshold := m.ctrl.Catalog().Matcher().Threshold()
		for i, s := range m.suggestions {
			line := fmt.Sprintf("%3d%%  %s", s.Score, s.Entity.Name)
			switch {
			case i == m.cursor:
				b.WriteString(editorSelectedStyle.Render("▸ " + line))
			case s.Score >= threshold:
				b.WriteString("  " + StyleHighlight.Render(line))
			default:
				b.WriteString("  " + editorDimStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	for _, msg := range m.messages {
		b.WriteString(renderMessage(msg) + "\n")
	}
	sum := m.ctrl.Summary()
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("%d types · %d entities · %d edges", sum.Types, sum.Entities, sum.Edges)))
	b.WriteString("\n")

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return StyleSuccess.Render("[x]")
	}
	return editorDimStyle.Render("[ ]")
}

func renderMessage(msg editorMessage) string {
	switch msg.level {
	case 1:
		return styleIconSuccess.Render(iconSuccess) + " " + msg.text
	case 2:
		return styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg.text)
	case 3:
		return styleIconError.Render(iconError) + " " + msg.text
	}
	return styleIconInfo.Render(iconInfo) + " " + msg.text
}
