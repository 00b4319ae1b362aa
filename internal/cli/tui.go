package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/errors"
)

// Editor styles
var (
	editSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	editInputStyle    = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("236"))
)

// =============================================================================
// Fields
// =============================================================================

// editField is one editable entry in the menu. Toggles have apply == nil and
// flip on enter; text fields open the line editor.
type editField struct {
	name   string
	value  func(cfg *diagram.Config) string
	apply  func(cfg *diagram.Config, text string) error
	toggle func(cfg *diagram.Config)
}

func joinNodes(names []string) string {
	return strings.Join(names, ", ")
}

func joinLinks(links []diagram.CrossLink) string {
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = l.Outer + " → " + l.Inner
	}
	return strings.Join(parts, ", ")
}

func applyInt(set func(cfg *diagram.Config, v int), requirePositive bool) func(*diagram.Config, string) error {
	return func(cfg *diagram.Config, text string) error {
		v, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "not a whole number: %q", text)
		}
		if requirePositive && v <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "must be positive, got %d", v)
		}
		set(cfg, v)
		return nil
	}
}

func editFields() []editField {
	return []editField{
		{
			name:  "Inner nodes",
			value: func(cfg *diagram.Config) string { return joinNodes(cfg.InnerNodes) },
			apply: func(cfg *diagram.Config, text string) error {
				return diagram.SetInnerNodes(cfg, diagram.ParseNodeList(text))
			},
		},
		{
			name:  "Outer nodes",
			value: func(cfg *diagram.Config) string { return joinNodes(cfg.OuterNodes) },
			apply: func(cfg *diagram.Config, text string) error {
				return diagram.SetOuterNodes(cfg, diagram.ParseNodeList(text))
			},
		},
		{
			name:  "Cross-links",
			value: func(cfg *diagram.Config) string { return joinLinks(cfg.CrossLinks) },
			apply: func(cfg *diagram.Config, text string) error {
				return diagram.SetCrossLinks(cfg, text)
			},
		},
		{
			name:  "Inner radius",
			value: func(cfg *diagram.Config) string { return strconv.Itoa(cfg.InnerRadius) },
			apply: applyInt(func(cfg *diagram.Config, v int) { cfg.InnerRadius = v }, true),
		},
		{
			name:  "Outer radius",
			value: func(cfg *diagram.Config) string { return strconv.Itoa(cfg.OuterRadius) },
			apply: applyInt(func(cfg *diagram.Config, v int) { cfg.OuterRadius = v }, true),
		},
		{
			name:  "Start angle (deg)",
			value: func(cfg *diagram.Config) string { return strconv.Itoa(cfg.StartAngleDeg) },
			apply: applyInt(func(cfg *diagram.Config, v int) { cfg.StartAngleDeg = v }, false),
		},
		{
			name:   "Show cross-links",
			value:  func(cfg *diagram.Config) string { return onOff(cfg.ShowCrossLinks) },
			toggle: func(cfg *diagram.Config) { cfg.ShowCrossLinks = !cfg.ShowCrossLinks },
		},
		{
			name:   "Lock positions",
			value:  func(cfg *diagram.Config) string { return onOff(cfg.LockPositions) },
			toggle: func(cfg *diagram.Config) { cfg.LockPositions = !cfg.LockPositions },
		},
		{
			name:   "Physics",
			value:  func(cfg *diagram.Config) string { return onOff(cfg.Physics) },
			toggle: func(cfg *diagram.Config) { cfg.Physics = !cfg.Physics },
		},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// =============================================================================
// Model
// =============================================================================

// editorModel is the bubbletea model for the config editor. It holds the
// working config; edits apply through the same validated operations the
// server uses, so a rejected edit never corrupts the config.
type editorModel struct {
	path   string
	cfg    diagram.Config
	fields []editField

	cursor  int
	editing bool
	input   string
	status  string
	isError bool

	dirty bool
	saved bool
}

func newEditorModel(path string, cfg diagram.Config) editorModel {
	return editorModel{
		path:   path,
		cfg:    cfg,
		fields: editFields(),
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.editing {
		return m.updateEditing(key)
	}
	return m.updateMenu(key)
}

func (m editorModel) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "enter":
		field := m.fields[m.cursor]
		if field.toggle != nil {
			field.toggle(&m.cfg)
			m.dirty = true
			m.saved = false
			m.setStatus(fmt.Sprintf("%s: %s", field.name, field.value(&m.cfg)), false)
			break
		}
		m.editing = true
		m.input = field.value(&m.cfg)
		m.status = ""
	case "s":
		if err := diagram.WriteFile(m.cfg, m.path); err != nil {
			m.setStatus(errors.UserMessage(err), true)
			break
		}
		m.saved = true
		m.dirty = false
		m.setStatus("Saved "+m.path, false)
	}
	return m, nil
}

func (m editorModel) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.editing = false
		m.status = ""
	case tea.KeyEnter:
		field := m.fields[m.cursor]
		if err := field.apply(&m.cfg, m.input); err != nil {
			m.setStatus(errors.UserMessage(err), true)
			break
		}
		m.editing = false
		m.dirty = true
		m.saved = false
		m.setStatus(field.name+" updated", false)
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(key.Runes)
		if key.Type == tea.KeySpace {
			m.input += " "
		}
	}
	return m, nil
}

func (m *editorModel) setStatus(msg string, isError bool) {
	m.status = msg
	m.isError = isError
}

func (m editorModel) View() string {
	var b strings.Builder

	title := m.path
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(editDimStyle.Render("↑/↓ navigate  ⏎ edit/toggle  s save  q quit"))
	b.WriteString("\n\n")

	for i, field := range m.fields {
		cursor := "  "
		style := editNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = editSelectedStyle
		}

		value := field.value(&m.cfg)
		if m.editing && i == m.cursor {
			value = editInputStyle.Render(m.input + "█")
		} else {
			value = editDimStyle.Render(truncate(value, 60))
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, style.Render(fmt.Sprintf("%-18s", field.name)), value))
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.isError {
			b.WriteString(editErrorStyle.Render(iconError + " " + m.status))
		} else {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
