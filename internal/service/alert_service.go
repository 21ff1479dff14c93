package service

import (
	"context"
	"errors"

	"stock-alert-cockpit/internal/alerts"
	"stock-alert-cockpit/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrBriefingDisabled is returned by Brief when no briefer is configured.
var ErrBriefingDisabled = errors.New("briefings disabled: OPENAI_API_KEY not set")

// AlertRefresher runs one alert refresh. Implemented by alerts.Pipeline.
type AlertRefresher interface {
	Refresh(ctx context.Context, watchlist []domain.Ticker, opts alerts.RunOptions) alerts.Result
	FilingStatus() map[string]bool
}

// Briefer summarises alerts. Implemented by advisor.BriefingService.
type Briefer interface {
	Brief(ctx context.Context, watchlist []domain.Ticker, alerts []domain.AlertRecord) (string, error)
}

// AlertQuery selects a watchlist and the filters applied to its alerts.
// Empty Sources or OnlyTickers keep the dashboard defaults.
type AlertQuery struct {
	Tickers     []domain.Ticker
	MinScore    int
	Sources     []domain.Source
	OnlyTickers []domain.Ticker
}

// AlertView is a filtered refresh result.
type AlertView struct {
	Watchlist []domain.Ticker      `json:"watchlist"`
	Alerts    []domain.AlertRecord `json:"alerts"`
	Total     int                  `json:"total"`
	Shown     int                  `json:"shown"`
	Notices   []domain.Notice      `json:"notices"`
	Filings   map[string]bool      `json:"filing_sources"`
}

// AlertService is the request-scoped entry point for the HTTP, bot and tool
// front ends. Each call recomputes from scratch.
type AlertService struct {
	tracer   trace.Tracer
	pipeline AlertRefresher
	briefer  Briefer
}

func NewAlertService(tracer trace.Tracer, pipeline AlertRefresher, briefer Briefer) *AlertService {
	return &AlertService{tracer: tracer, pipeline: pipeline, briefer: briefer}
}

// Query refreshes the watchlist and applies the filters. No tickers means the
// sample watchlist.
func (s *AlertService) Query(ctx context.Context, q AlertQuery) AlertView {
	ctx, span := s.tracer.Start(ctx, "alert-service.query")
	defer span.End()

	watchlist := q.Tickers
	if len(watchlist) == 0 {
		watchlist = append([]domain.Ticker(nil), domain.SampleWatchlist...)
	}

	res := s.pipeline.Refresh(ctx, watchlist, alerts.RunOptions{})
	criteria := alerts.DefaultCriteria(res.Alerts, watchlist)
	criteria.MinScore = q.MinScore
	if len(q.Sources) > 0 {
		criteria.Sources = make(map[domain.Source]bool, len(q.Sources))
		for _, src := range q.Sources {
			criteria.Sources[src] = true
		}
	}
	if len(q.OnlyTickers) > 0 {
		criteria.Tickers = make(map[domain.Ticker]bool, len(q.OnlyTickers))
		for _, t := range q.OnlyTickers {
			criteria.Tickers[t] = true
		}
	}

	shown := alerts.Filter(res.Alerts, criteria)
	notices := res.Notices
	if notices == nil {
		notices = []domain.Notice{}
	}
	span.SetAttributes(
		attribute.Int("alerts.total", len(res.Alerts)),
		attribute.Int("alerts.shown", len(shown)),
	)

	return AlertView{
		Watchlist: res.Watchlist,
		Alerts:    shown,
		Total:     len(res.Alerts),
		Shown:     len(shown),
		Notices:   notices,
		Filings:   s.pipeline.FilingStatus(),
	}
}

// Brief runs Query and asks the briefer to summarise the shown alerts.
func (s *AlertService) Brief(ctx context.Context, q AlertQuery) (string, AlertView, error) {
	ctx, span := s.tracer.Start(ctx, "alert-service.brief")
	defer span.End()

	if s.briefer == nil {
		return "", AlertView{}, ErrBriefingDisabled
	}
	view := s.Query(ctx, q)
	text, err := s.briefer.Brief(ctx, view.Watchlist, view.Alerts)
	if err != nil {
		span.RecordError(err)
		return "", view, err
	}
	return text, view, nil
}
