package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmYes = key.NewBinding(key.WithKeys("y", "Y"))
	confirmNo  = key.NewBinding(key.WithKeys("n", "N", "esc"))
)

// ConfirmationModel is a one-line yes/no question that takes over the key
// input until it is answered. Any other key is swallowed.
type ConfirmationModel struct {
	active      bool
	message     string
	destructive bool
	onConfirm   func() tea.Cmd
	onCancel    func() tea.Cmd
}

func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Ask shows message. onConfirm and onCancel may be nil.
func (m *ConfirmationModel) Ask(message string, destructive bool, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.message = message
	m.destructive = destructive
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

func (m *ConfirmationModel) Active() bool {
	return m.active
}

func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	var next func() tea.Cmd
	switch {
	case key.Matches(msg, confirmYes):
		next = m.onConfirm
	case key.Matches(msg, confirmNo):
		next = m.onCancel
	default:
		return nil
	}

	m.active = false
	m.onConfirm, m.onCancel = nil, nil
	if next == nil {
		return nil
	}
	return next()
}

// View renders the question centered in width
func (m *ConfirmationModel) View(width int) string {
	if !m.active {
		return ""
	}
	line := m.message + " " + confirmOptions(m.destructive)
	if width > 0 && lipgloss.Width(line) < width {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(line)
	}
	return line
}

// confirmOptions renders the y/n hint. Destructive questions color yes red
// and no green.
func confirmOptions(destructive bool) string {
	yesColor, noColor := ColorSuccess, ColorDanger
	if destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true).Render("[y]es")
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true).Render("[n]o")
	return yes + " / " + no
}
