package tui

import (
	"context"

	"stock-alert-cockpit/internal/alerts"
	"stock-alert-cockpit/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// progressMsg reports that the aggregator is about to process a ticker.
type progressMsg struct {
	index  int
	total  int
	ticker domain.Ticker
}

type refreshDoneMsg struct {
	result  alerts.Result
	filings map[string]bool
}

// startRefresh runs the pipeline in the background. Progress and the final
// result arrive on one channel that listen drains a message at a time.
func (m *Model) startRefresh() tea.Cmd {
	if m.svc.Alerts == nil || m.refreshing {
		return nil
	}

	ctx, cancel := context.WithCancel(m.baseCtx)
	events := make(chan tea.Msg, 16)
	m.cancel = cancel
	m.events = events
	m.refreshing = true
	m.progress = progressMsg{total: len(m.watchlist)}
	m.status = ""

	refresher := m.svc.Alerts
	tickers := append([]domain.Ticker(nil), m.watchlist...)

	go func() {
		defer close(events)
		send := func(msg tea.Msg) {
			select {
			case events <- msg:
			case <-ctx.Done():
			}
		}
		res := refresher.Refresh(ctx, tickers, alerts.RunOptions{
			Progress: func(index, total int, ticker domain.Ticker) {
				send(progressMsg{index: index, total: total, ticker: ticker})
			},
		})
		send(refreshDoneMsg{result: res, filings: refresher.FilingStatus()})
	}()

	return listen(events)
}

func listen(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) finishRefresh(msg refreshDoneMsg) {
	m.refreshing = false
	m.events = nil
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.ranked = msg.result.Alerts
	m.notices = msg.result.Notices
	m.filings = msg.filings

	m.criteria = alerts.DefaultCriteria(m.ranked, m.watchlist)
	m.sourceOpts = alerts.PresentSources(m.ranked)
	m.tickerOpts = uniqueTickers(m.watchlist)
	m.optCursor = 0
	m.applyFilter()
}

func (m *Model) applyFilter() {
	m.criteria.MinScore = m.minScore
	m.shown = alerts.Filter(m.ranked, m.criteria)
	if m.cursor >= len(m.shown) {
		m.cursor = max(len(m.shown)-1, 0)
	}
	if len(m.shown) == 0 {
		m.expanded = false
	}
}

func uniqueTickers(in []domain.Ticker) []domain.Ticker {
	seen := make(map[domain.Ticker]bool, len(in))
	out := make([]domain.Ticker, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
