package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetStocks godoc
// @Summary      Quotes for the tracked stocks
// @Description  Returns the latest quote for every tracked stock. Stocks whose quote cannot be fetched are left out.
// @Tags         stocks
// @Produce      json
// @Success      200  {array}  domain.Quote
// @Router       /api/stocks [get]
func (h *Handler) GetStocks(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-stocks")
	defer span.End()

	quotes := h.quotes.GetTrackedQuotes(ctx)
	span.SetAttributes(attribute.Int("quotes.count", len(quotes)))
	c.JSON(http.StatusOK, quotes)
}

// GetStock godoc
// @Summary      Quote for one stock
// @Description  Returns the latest quote, or null when it cannot be fetched
// @Tags         stocks
// @Produce      json
// @Param        ticker  path  string  true  "Ticker (e.g., RELIANCE, TCS)"
// @Success      200  {object}  domain.Quote
// @Router       /api/stocks/{ticker} [get]
func (h *Handler) GetStock(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-stock")
	defer span.End()

	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	span.SetAttributes(attribute.String("ticker", ticker))

	quote, err := h.quotes.GetQuote(ctx, ticker)
	if err != nil {
		log.Printf("quote for %s unavailable: %v", ticker, err)
		span.RecordError(err)
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, quote)
}
