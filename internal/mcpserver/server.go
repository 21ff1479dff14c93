// Package mcpserver exposes the alert pipeline and quote service as MCP
// tools so assistants can query the watchlist directly.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const ServerName = "stock-alert-cockpit"

type QuoteReader interface {
	GetQuote(ctx context.Context, ticker string) (*domain.Quote, error)
}

type AlertReader interface {
	Query(ctx context.Context, q service.AlertQuery) service.AlertView
}

type AlertsInput struct {
	Tickers  []string `json:"tickers,omitempty" jsonschema:"watchlist tickers, e.g. TCS or RELIANCE; empty uses the sample watchlist"`
	MinScore int      `json:"min_score,omitempty" jsonschema:"drop alerts scoring below this value"`
	Sources  []string `json:"sources,omitempty" jsonschema:"restrict to these sources: Stream, News, Filings"`
}

type AlertsOutput struct {
	Watchlist []string             `json:"watchlist"`
	Alerts    []domain.AlertRecord `json:"alerts"`
	Total     int                  `json:"total"`
	Shown     int                  `json:"shown"`
	Notices   []string             `json:"notices"`
}

type QuoteInput struct {
	Ticker string `json:"ticker" jsonschema:"ticker symbol, e.g. INFY"`
}

type tools struct {
	tracer trace.Tracer
	quotes QuoteReader
	alerts AlertReader
}

// New builds the tool server. A nil quotes reader leaves get_quote out.
func New(tracer trace.Tracer, version string, quotes QuoteReader, alerts AlertReader) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	t := &tools{tracer: tracer, quotes: quotes, alerts: alerts}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_alerts",
		Description: "Score and rank news, exchange filings and stream alerts for a watchlist of Indian equities.",
	}, t.getAlerts)

	if quotes != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "get_quote",
			Description: "Latest price quote for one NSE ticker.",
		}, t.getQuote)
	}
	return server
}

func (t *tools) getAlerts(ctx context.Context, _ *mcp.CallToolRequest, in AlertsInput) (*mcp.CallToolResult, AlertsOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.get-alerts")
	defer span.End()

	sources, err := parseSources(in.Sources)
	if err != nil {
		return nil, AlertsOutput{}, err
	}

	var tickers []domain.Ticker
	for _, raw := range in.Tickers {
		if s := strings.TrimSpace(raw); s != "" {
			tickers = append(tickers, s)
		}
	}
	span.SetAttributes(attribute.Int("watchlist.size", len(tickers)))

	view := t.alerts.Query(ctx, service.AlertQuery{Tickers: tickers, MinScore: in.MinScore, Sources: sources})

	out := AlertsOutput{
		Watchlist: append([]string{}, view.Watchlist...),
		Alerts:    append([]domain.AlertRecord{}, view.Alerts...),
		Total:     view.Total,
		Shown:     view.Shown,
		Notices:   make([]string, 0, len(view.Notices)),
	}
	for _, n := range view.Notices {
		out.Notices = append(out.Notices, fmt.Sprintf("%s: %s", n.Level, n.Message))
	}
	return nil, out, nil
}

func (t *tools) getQuote(ctx context.Context, _ *mcp.CallToolRequest, in QuoteInput) (*mcp.CallToolResult, domain.Quote, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.get-quote")
	defer span.End()

	ticker := strings.ToUpper(strings.TrimSpace(in.Ticker))
	if ticker == "" {
		return nil, domain.Quote{}, errors.New("ticker is required")
	}
	span.SetAttributes(attribute.String("ticker", ticker))

	q, err := t.quotes.GetQuote(ctx, ticker)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Quote{}, fmt.Errorf("quote for %s: %w", ticker, err)
	}
	return nil, *q, nil
}

func parseSources(names []string) ([]domain.Source, error) {
	var out []domain.Source
	for _, name := range names {
		matched := false
		for _, src := range domain.AllSources {
			if strings.EqualFold(strings.TrimSpace(name), string(src)) {
				out = append(out, src)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unknown source %q", name)
		}
	}
	return out, nil
}
