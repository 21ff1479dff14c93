package tui

import (
	"stock-alert-cockpit/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	hotColor     = lipgloss.Color("#EF4444")
	warnColor    = lipgloss.Color("#F59E0B")
	coldColor    = lipgloss.Color("#38BDF8")
	okColor      = lipgloss.Color("#10B981")
	borderColor  = lipgloss.Color("#374151")
	textColor    = lipgloss.Color("#F9FAFB")
	mutedColor   = lipgloss.Color("#6B7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	focusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(mutedColor)

	rowStyle = lipgloss.NewStyle().
			Foreground(textColor)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(borderColor)

	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	successStyle = lipgloss.NewStyle().Foreground(okColor)
	errorStyle   = lipgloss.NewStyle().Foreground(hotColor)
	warningStyle = lipgloss.NewStyle().Foreground(warnColor)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(mutedColor).Width(11)

	helpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	helpDescStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

func severityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityHot:
		return lipgloss.NewStyle().Foreground(hotColor).Bold(true)
	case domain.SeverityWarning:
		return lipgloss.NewStyle().Foreground(warnColor)
	default:
		return lipgloss.NewStyle().Foreground(coldColor)
	}
}
