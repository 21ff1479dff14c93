package tui

import (
	"fmt"
	"strings"

	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/watchlist"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateWatchlist(msg tea.KeyMsg) tea.Cmd {
	if m.editing {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			m.stopEditing()
			return nil
		case m.mode() == watchlist.ModeUpload && key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			return m.loadWatchlist(m.pathInput.Value())
		case m.mode() == watchlist.ModeManual && key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
			return m.loadWatchlist(m.textArea.Value())
		}
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("q"))):
		return m.quit()
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.modeIndex > 0 {
			m.modeIndex--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.modeIndex < len(watchlist.Modes)-1 {
			m.modeIndex++
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		if len(m.watchlist) > 0 {
			m.screen = screenDashboard
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		switch m.mode() {
		case watchlist.ModeSample:
			return m.loadWatchlist("")
		case watchlist.ModeUpload:
			m.editing = true
			return m.pathInput.Focus()
		case watchlist.ModeManual:
			m.editing = true
			return m.textArea.Focus()
		}
	}
	return nil
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode() {
	case watchlist.ModeUpload:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case watchlist.ModeManual:
		m.textArea, cmd = m.textArea.Update(msg)
	}
	return cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.pathInput.Blur()
	m.textArea.Blur()
}

// loadWatchlist resolves the active mode and moves to the dashboard. Only one
// mode contributes to the watchlist.
func (m *Model) loadWatchlist(input string) tea.Cmd {
	tickers, err := watchlist.Resolve(m.mode(), input)
	if err != nil {
		m.loadErr = err.Error()
		return nil
	}

	m.stopEditing()
	m.loadErr = ""
	m.watchlist = tickers
	m.screen = screenDashboard
	m.cursor = 0
	m.expanded = false
	m.focus = focusList

	cmd := m.startRefresh()
	m.status = fmt.Sprintf("Loaded %d tickers", len(tickers))
	return cmd
}

func (m *Model) viewWatchlist() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📈 Stock Alert Cockpit"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Watchlist source"))
	b.WriteString("\n")

	for i, mode := range watchlist.Modes {
		marker := "( )"
		style := rowStyle
		if i == m.modeIndex {
			marker = "(•)"
			style = selectedRowStyle
		}
		b.WriteString(style.Render(fmt.Sprintf(" %s %s ", marker, mode)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.mode() {
	case watchlist.ModeUpload:
		b.WriteString(mutedStyle.Render("Watchlist file (.txt or .csv)"))
		b.WriteString("\n")
		b.WriteString(m.pathInput.View())
	case watchlist.ModeManual:
		b.WriteString(mutedStyle.Render("Tickers, one per line"))
		b.WriteString("\n")
		b.WriteString(m.textArea.View())
	case watchlist.ModeSample:
		b.WriteString(mutedStyle.Render(strings.Join(domain.SampleWatchlist, ", ")))
	}
	b.WriteString("\n")

	if m.loadErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.loadErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.watchlistHelp())

	return panelStyle.Width(min(m.width-2, 72)).Render(b.String())
}

func (m *Model) watchlistHelp() string {
	var pairs [][2]string
	switch {
	case m.editing && m.mode() == watchlist.ModeManual:
		pairs = [][2]string{{"ctrl+s", "load"}, {"esc", "back"}}
	case m.editing:
		pairs = [][2]string{{"enter", "load"}, {"esc", "back"}}
	default:
		pairs = [][2]string{{"↑↓", "mode"}, {"enter", "select"}, {"q", "quit"}}
	}
	return renderHelp(pairs)
}

func renderHelp(pairs [][2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, helpKeyStyle.Render(p[0])+helpDescStyle.Render(" "+p[1]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(parts, helpDescStyle.Render(" │ ")))
}
