package tui

import (
	"fmt"
	"sort"
	"strings"

	"stock-alert-cockpit/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const messageWidth = 60

func (m *Model) updateDashboard(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, key.NewBinding(key.WithKeys("q"))) {
		return m.quit()
	}
	if m.refreshing {
		return nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		return m.startRefresh()
	case key.Matches(msg, key.NewBinding(key.WithKeys("w"))):
		m.screen = screenWatchlist
		return nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("c"))):
		m.cleanup()
		return nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		m.focus = (m.focus + 1) % 3
		m.optCursor = 0
		return nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("+", "="))):
		m.minScore = min(m.minScore+minScoreStep, maxMinScore)
		m.applyFilter()
		return nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("-", "_"))):
		m.minScore = max(m.minScore-minScoreStep, 0)
		m.applyFilter()
		return nil
	}

	if m.focus == focusList {
		m.updateList(msg)
	} else {
		m.updateToggles(msg)
	}
	return nil
}

func (m *Model) updateList(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.shown)-1 {
			m.cursor++
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if len(m.shown) > 0 {
			m.expanded = !m.expanded
		}
	}
}

func (m *Model) updateToggles(msg tea.KeyMsg) {
	n := len(m.sourceOpts)
	if m.focus == focusTickers {
		n = len(m.tickerOpts)
	}
	if n == 0 {
		return
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h"))):
		if m.optCursor > 0 {
			m.optCursor--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l"))):
		if m.optCursor < n-1 {
			m.optCursor++
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys(" ", "enter"))):
		if m.focus == focusSources {
			src := m.sourceOpts[m.optCursor]
			m.criteria.Sources[src] = !m.criteria.Sources[src]
		} else {
			t := m.tickerOpts[m.optCursor]
			m.criteria.Tickers[t] = !m.criteria.Tickers[t]
		}
		m.applyFilter()
	}
}

// cleanup releases the exchange clients once. Later refreshes report the
// filing sources as unavailable through their notices.
func (m *Model) cleanup() {
	if m.svc.Cleanup == nil {
		return
	}
	if m.cleaned {
		m.status = "Resources already cleaned up"
		return
	}
	m.svc.Cleanup()
	m.cleaned = true
	m.status = "Resources cleaned up successfully"
}

func (m *Model) viewDashboard() string {
	sections := []string{
		titleStyle.Render("📈 Stock Alert Cockpit") + mutedStyle.Render(fmt.Sprintf("  watchlist: %d tickers", len(m.watchlist))),
	}
	if m.status != "" {
		sections = append(sections, successStyle.Render("✓ "+m.status))
	}

	if m.refreshing {
		sections = append(sections, m.viewProgress())
	} else {
		sections = append(sections,
			lipgloss.JoinHorizontal(lipgloss.Top, m.viewFilters(), m.viewSourceStatus()),
			m.viewList(),
		)
		if m.expanded && m.cursor < len(m.shown) {
			sections = append(sections, m.viewDetail(m.shown[m.cursor]))
		}
	}
	if len(m.notices) > 0 && !m.refreshing {
		sections = append(sections, m.viewNotices())
	}
	sections = append(sections, m.dashboardHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) viewProgress() string {
	p := m.progress
	pct := 0.0
	if p.total > 0 {
		pct = float64(p.index) / float64(p.total)
	}
	label := "Fetching alert stream..."
	if p.ticker != "" {
		label = fmt.Sprintf("Processing %s... (%d/%d)", p.ticker, p.index, p.total)
	}
	return panelStyle.Render(label + "\n" + m.bar.ViewAs(pct))
}

func (m *Model) viewFilters() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Filters"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Min score"))
	b.WriteString(fmt.Sprintf("%d", m.minScore))
	b.WriteString("\n")

	sources := make([]string, len(m.sourceOpts))
	for i, s := range m.sourceOpts {
		sources[i] = m.toggleLabel(string(s), m.criteria.Sources[s], m.focus == focusSources && i == m.optCursor)
	}
	b.WriteString(labelStyle.Render("Sources"))
	b.WriteString(strings.Join(sources, " "))
	b.WriteString("\n")

	tickers := make([]string, len(m.tickerOpts))
	for i, t := range m.tickerOpts {
		tickers[i] = m.toggleLabel(t, m.criteria.Tickers[t], m.focus == focusTickers && i == m.optCursor)
	}
	b.WriteString(labelStyle.Render("Tickers"))
	b.WriteString(strings.Join(tickers, " "))

	style := panelStyle
	if m.focus != focusList {
		style = focusedPanelStyle
	}
	return style.Render(b.String())
}

func (m *Model) toggleLabel(name string, on, cursor bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	label := box + " " + name
	if cursor {
		return selectedRowStyle.Render(label)
	}
	return rowStyle.Render(label)
}

func (m *Model) viewSourceStatus() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Data sources"))

	exchanges := make([]string, 0, len(m.filings))
	for ex := range m.filings {
		exchanges = append(exchanges, ex)
	}
	sort.Strings(exchanges)
	for _, ex := range exchanges {
		b.WriteString("\n")
		if m.filings[ex] && !m.cleaned {
			b.WriteString(successStyle.Render("✓ " + ex + " available"))
		} else {
			b.WriteString(errorStyle.Render("✗ " + ex + " unavailable"))
		}
	}
	return panelStyle.Render(b.String())
}

func (m *Model) viewList() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Alerts (%d of %d)", len(m.shown), len(m.ranked))))
	b.WriteString("\n")

	if len(m.shown) == 0 {
		b.WriteString(mutedStyle.Render("No alerts match the current filters."))
	}

	visible := max(m.height-18, 5)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.shown))
	for i := start; i < end; i++ {
		a := m.shown[i]
		line := fmt.Sprintf("%s %-10s %-8s %4d  %s",
			a.Heatmap.Glyph(), a.LinkedTicker, a.Source, a.Score, truncate(a.Message, messageWidth))
		if i == m.cursor && m.focus == focusList {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(severityStyle(a.Heatmap).Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	style := panelStyle
	if m.focus == focusList {
		style = focusedPanelStyle
	}
	return style.Width(max(m.width-4, 40)).Render(b.String())
}

func (m *Model) viewDetail(a domain.AlertRecord) string {
	rows := [][2]string{
		{"Ticker", a.LinkedTicker},
		{"Source", string(a.Source)},
		{"Time", a.Timestamp},
		{"Score", fmt.Sprintf("%d %s", a.Score, a.Heatmap.Glyph())},
		{"Sentiment", fmt.Sprintf("%d", a.Sentiment)},
		{"Message", a.Message},
		{"Tags", strings.Join(a.Tags, ", ")},
	}
	if a.URL != "" && a.URL != "#" {
		rows = append(rows, [2]string{"URL", a.URL})
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(r[0]) + rowStyle.Render(r[1])
	}
	return panelStyle.Width(max(m.width-4, 40)).Render(strings.Join(lines, "\n"))
}

func (m *Model) viewNotices() string {
	lines := make([]string, len(m.notices))
	for i, n := range m.notices {
		if n.Level == domain.NoticeWarning {
			lines[i] = warningStyle.Render("⚠ " + n.Message)
		} else {
			lines[i] = mutedStyle.Render("ℹ " + n.Message)
		}
	}
	return panelStyle.Width(max(m.width-4, 40)).Render(strings.Join(lines, "\n"))
}

func (m *Model) dashboardHelp() string {
	pairs := [][2]string{
		{"r", "refresh"},
		{"w", "watchlist"},
		{"tab", "focus"},
		{"+/-", "min score"},
		{"enter", "details"},
	}
	if m.svc.Cleanup != nil {
		pairs = append(pairs, [2]string{"c", "cleanup"})
	}
	pairs = append(pairs, [2]string{"q", "quit"})
	return renderHelp(pairs)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
