package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stock-alert-cockpit/internal/advisor"
	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/service"
	"stock-alert-cockpit/internal/watchlist"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// BriefRequest is the body of POST /api/alerts/brief. Every field is optional.
type BriefRequest struct {
	Tickers     []string `json:"tickers"`
	MinScore    int      `json:"min_score"`
	Sources     []string `json:"sources"`
	OnlyTickers []string `json:"only_tickers"`
}

// GetAlerts godoc
// @Summary      Ranked alerts for a watchlist
// @Description  Runs one refresh over stream, news and filings, ranks by score and applies the filters
// @Tags         alerts
// @Produce      json
// @Param        tickers       query  string  false  "Comma separated watchlist (default: sample watchlist)"
// @Param        min_score     query  int     false  "Minimum score"  default(0)
// @Param        sources       query  string  false  "Comma separated sources: Stream, News, Filings"
// @Param        only_tickers  query  string  false  "Comma separated subset of the watchlist to show"
// @Success      200  {object}  service.AlertView
// @Failure      400  {object}  map[string]string
// @Router       /api/alerts [get]
func (h *Handler) GetAlerts(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-alerts")
	defer span.End()

	q, err := parseAlertQuery(c.Query("tickers"), c.Query("min_score"), c.Query("sources"), c.Query("only_tickers"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.Int("watchlist.size", len(q.Tickers)))

	c.JSON(http.StatusOK, h.alerts.Query(ctx, q))
}

// BriefAlerts godoc
// @Summary      LLM briefing over ranked alerts
// @Description  Same selection as GET /api/alerts, summarised by the configured model
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        request  body  BriefRequest  false  "Watchlist and filters"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/alerts/brief [post]
func (h *Handler) BriefAlerts(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.brief-alerts")
	defer span.End()

	var req BriefRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	sources, err := parseSources(req.Sources)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, view, err := h.alerts.Brief(ctx, service.AlertQuery{
		Tickers:     cleanTickers(req.Tickers),
		MinScore:    req.MinScore,
		Sources:     sources,
		OnlyTickers: cleanTickers(req.OnlyTickers),
	})
	if errors.Is(err, service.ErrBriefingDisabled) || errors.Is(err, advisor.ErrDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"briefing":  text,
		"watchlist": view.Watchlist,
		"shown":     view.Shown,
		"total":     view.Total,
		"notices":   view.Notices,
	})
}

func parseAlertQuery(tickers, minScore, sources, onlyTickers string) (service.AlertQuery, error) {
	q := service.AlertQuery{
		Tickers:     watchlist.ParseList(tickers),
		OnlyTickers: watchlist.ParseList(onlyTickers),
	}
	if minScore = strings.TrimSpace(minScore); minScore != "" {
		n, err := strconv.Atoi(minScore)
		if err != nil {
			return q, errors.New("min_score must be an integer")
		}
		q.MinScore = n
	}
	parsed, err := parseSources(watchlist.ParseList(sources))
	if err != nil {
		return q, err
	}
	q.Sources = parsed
	return q, nil
}

// parseSources matches source names case-insensitively.
func parseSources(names []string) ([]domain.Source, error) {
	var out []domain.Source
	for _, name := range names {
		matched := false
		for _, src := range domain.AllSources {
			if strings.EqualFold(name, string(src)) {
				out = append(out, src)
				matched = true
				break
			}
		}
		if !matched {
			return nil, errors.New("unknown source: " + name)
		}
	}
	return out, nil
}

func cleanTickers(in []string) []domain.Ticker {
	out := make([]domain.Ticker, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
