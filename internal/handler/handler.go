package handler

import (
	"context"

	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// QuoteReader is implemented by service.QuoteService.
type QuoteReader interface {
	GetQuote(ctx context.Context, ticker string) (*domain.Quote, error)
	GetTrackedQuotes(ctx context.Context) []*domain.Quote
}

// AlertReader is implemented by service.AlertService.
type AlertReader interface {
	Query(ctx context.Context, q service.AlertQuery) service.AlertView
	Brief(ctx context.Context, q service.AlertQuery) (string, service.AlertView, error)
}

type Handler struct {
	tracer trace.Tracer
	quotes QuoteReader
	alerts AlertReader
}

func New(tracer trace.Tracer, quotes QuoteReader, alerts AlertReader) *Handler {
	return &Handler{
		tracer: tracer,
		quotes: quotes,
		alerts: alerts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/api/stocks", h.GetStocks)
	r.GET("/api/stocks/:ticker", h.GetStock)
	r.GET("/api/alerts", h.GetAlerts)
	r.POST("/api/alerts/brief", h.BriefAlerts)
}
