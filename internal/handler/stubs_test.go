package handler

import (
	"context"
	"errors"

	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/service"

	"github.com/gin-gonic/gin"
)

type stubQuotes struct {
	quotes map[string]*domain.Quote
}

func (s *stubQuotes) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	if q, ok := s.quotes[ticker]; ok {
		return q, nil
	}
	return nil, errors.New("no quote for " + ticker)
}

func (s *stubQuotes) GetTrackedQuotes(ctx context.Context) []*domain.Quote {
	out := []*domain.Quote{}
	for _, t := range domain.TrackedStocks {
		if q, ok := s.quotes[t]; ok {
			out = append(out, q)
		}
	}
	return out
}

type stubAlerts struct {
	view      service.AlertView
	briefing  string
	briefErr  error
	lastQuery service.AlertQuery
}

func (s *stubAlerts) Query(ctx context.Context, q service.AlertQuery) service.AlertView {
	s.lastQuery = q
	return s.view
}

func (s *stubAlerts) Brief(ctx context.Context, q service.AlertQuery) (string, service.AlertView, error) {
	s.lastQuery = q
	if s.briefErr != nil {
		return "", service.AlertView{}, s.briefErr
	}
	return s.briefing, s.view, nil
}

func newTestRouter(quotes QuoteReader, alerts AlertReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(testTracer, quotes, alerts).RegisterRoutes(r)
	return r
}
