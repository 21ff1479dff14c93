package alerts

import (
	"context"

	"stock-alert-cockpit/internal/domain"
)

type newsStub struct {
	items map[domain.Ticker][]domain.NewsItem
	calls []domain.Ticker
}

func (s *newsStub) News(ctx context.Context, ticker domain.Ticker, notices domain.Notifier) []domain.NewsItem {
	s.calls = append(s.calls, ticker)
	return s.items[ticker]
}

type filingStub struct {
	exchange  string
	available bool
	items     map[domain.Ticker][]domain.Filing
	calls     int
}

func (s *filingStub) Exchange() string { return s.exchange }
func (s *filingStub) Available() bool  { return s.available }

func (s *filingStub) Filings(ctx context.Context, ticker domain.Ticker, notices domain.Notifier) []domain.Filing {
	s.calls++
	return s.items[ticker]
}

type streamStub struct {
	records []domain.StreamRecord
	notice  *domain.Notice
	calls   int
}

func (s *streamStub) Stream(ctx context.Context, notices domain.Notifier) []domain.StreamRecord {
	s.calls++
	if s.notice != nil {
		notices.Notify(*s.notice)
	}
	return s.records
}

func intPtr(v int) *int { return &v }
