// Package ui holds the interactive artifact picker behind
// `lineal browse`.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pickerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	pickerCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99"))
	pickerDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

// maxVisible caps how many rows the list shows at once.
const maxVisible = 15

// Model is the bubbletea model for the artifact picker. Typing narrows
// the list by substring; enter confirms the highlighted entry.
type Model struct {
	files   []string
	visible []string
	cursor  int
	input   textinput.Model
	choice  string
	aborted bool
}

// NewModel builds a picker over the given artifact paths.
func NewModel(files []string) Model {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Focus()

	return Model{
		files:   files,
		visible: files,
		input:   input,
	}
}

// Choice returns the selected path, or "" when the picker was aborted.
func (m Model) Choice() string {
	if m.aborted {
		return ""
	}
	return m.choice
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.cursor < len(m.visible) {
				m.choice = m.visible[m.cursor]
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *Model) refilter() {
	query := strings.ToLower(m.input.Value())
	if query == "" {
		m.visible = m.files
	} else {
		var visible []string
		for _, file := range m.files {
			if strings.Contains(strings.ToLower(filepath.Base(file)), query) {
				visible = append(visible, file)
			}
		}
		m.visible = visible
	}
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render("? Select an artifact"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(pickerDimStyle.Render("no matches"))
		b.WriteString("\n")
	}

	shown := m.visible
	if len(shown) > maxVisible {
		shown = shown[:maxVisible]
	}
	for i, file := range shown {
		cursor := " "
		if m.cursor == i {
			cursor = pickerCursorStyle.Render(">")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, filepath.Base(file)))
	}
	if len(m.visible) > maxVisible {
		b.WriteString(pickerDimStyle.Render(fmt.Sprintf("  … %d more", len(m.visible)-maxVisible)))
		b.WriteString("\n")
	}

	b.WriteString(pickerDimStyle.Render("\n(enter to select, esc to cancel)"))
	b.WriteString("\n")
	return b.String()
}

// PickArtifact runs the picker and returns the chosen path. An aborted
// pick returns "" and no error.
func PickArtifact(files []string) (string, error) {
	p := tea.NewProgram(NewModel(files))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.Choice(), nil
	}
	return "", nil
}
