package tui

import (
	"context"

	"stock-alert-cockpit/internal/alerts"
	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/watchlist"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Refresher runs one alert refresh. Implemented by alerts.Pipeline.
type Refresher interface {
	Refresh(ctx context.Context, watchlist []domain.Ticker, opts alerts.RunOptions) alerts.Result
	FilingStatus() map[string]bool
}

// Services are the collaborators of one dashboard session.
type Services struct {
	Alerts Refresher
	// Cleanup releases the exchange clients. Nil hides the cleanup key, which
	// is what remote sessions want since the clients are shared.
	Cleanup func()
	// Watchlist skips the watchlist screen when non-empty.
	Watchlist []domain.Ticker
}

type screen int

const (
	screenWatchlist screen = iota
	screenDashboard
)

// paneFocus is the dashboard pane receiving navigation keys.
type paneFocus int

const (
	focusList paneFocus = iota
	focusSources
	focusTickers
)

const (
	minScoreStep = 5
	maxMinScore  = 100
)

// Model is the alert dashboard. Every refresh recomputes from scratch and
// nothing is shared with other sessions.
type Model struct {
	svc    Services
	screen screen

	// Watchlist screen
	modeIndex int
	editing   bool
	pathInput textinput.Model
	textArea  textarea.Model
	loadErr   string

	watchlist []domain.Ticker

	// Refresh state
	baseCtx    context.Context
	cancel     context.CancelFunc
	refreshing bool
	events     chan tea.Msg
	bar        progress.Model
	progress   progressMsg

	// Last result
	ranked  []domain.AlertRecord
	notices []domain.Notice
	filings map[string]bool

	// Filters
	minScore   int
	criteria   alerts.Criteria
	sourceOpts []domain.Source
	tickerOpts []domain.Ticker
	shown      []domain.AlertRecord

	focus     paneFocus
	cursor    int
	optCursor int
	expanded  bool
	cleaned   bool
	status    string

	width  int
	height int
}

// NewModel builds a session model. It starts on the watchlist screen unless
// svc.Watchlist is set.
func NewModel(svc Services) *Model {
	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/watchlist.txt or .csv"
	pathInput.CharLimit = 512
	pathInput.Width = 48

	ta := textarea.New()
	ta.Placeholder = "One ticker per line, e.g.\nRELIANCE\nTCS"
	ta.ShowLineNumbers = false
	ta.SetWidth(40)
	ta.SetHeight(8)

	m := &Model{
		svc:       svc,
		pathInput: pathInput,
		textArea:  ta,
		baseCtx:   context.Background(),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		modeIndex: indexOfMode(watchlist.ModeSample),
		width:     100,
		height:    30,
	}
	if len(svc.Watchlist) > 0 {
		m.watchlist = append([]domain.Ticker(nil), svc.Watchlist...)
		m.screen = screenDashboard
	}
	return m
}

// SetSize sets the initial terminal size, used by SSH sessions before the
// first WindowSizeMsg.
func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
}

func (m *Model) Init() tea.Cmd {
	if m.screen == screenDashboard {
		return m.startRefresh()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case progressMsg:
		m.progress = msg
		return m, listen(m.events)

	case refreshDoneMsg:
		m.finishRefresh(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.screen == screenWatchlist {
			return m, m.updateWatchlist(msg)
		}
		return m, m.updateDashboard(msg)
	}

	if m.screen == screenWatchlist && m.editing {
		return m, m.updateInput(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.screen == screenWatchlist {
		return m.viewWatchlist()
	}
	return m.viewDashboard()
}

func (m *Model) quit() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	return tea.Quit
}

func (m *Model) mode() watchlist.Mode {
	return watchlist.Modes[m.modeIndex]
}

func indexOfMode(mode watchlist.Mode) int {
	for i, md := range watchlist.Modes {
		if md == mode {
			return i
		}
	}
	return 0
}
