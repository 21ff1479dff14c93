package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock-alert-cockpit/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultNewsBaseURL is the scanx news host.
const DefaultNewsBaseURL = "https://scanx.trade"

var (
	newsHeadlineKeys = []string{"headline", "title", "subject"}
	newsTimeKeys     = []string{"timestamp", "publishedAt", "published_at", "date", "time"}
	newsURLKeys      = []string{"url", "link"}
)

// ScanxNewsProvider looks up ticker news on the scanx news API.
type ScanxNewsProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewScanxNewsProvider(baseURL string, timeout time.Duration, tracer trace.Tracer) *ScanxNewsProvider {
	if baseURL == "" {
		baseURL = DefaultNewsBaseURL
	}
	return &ScanxNewsProvider{
		client:  newHTTPClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
	}
}

// FetchNews returns the news items published for ticker.
func (p *ScanxNewsProvider) FetchNews(ctx context.Context, ticker string) ([]domain.NewsItem, error) {
	ctx, span := p.tracer.Start(ctx, "scanx.fetch-news")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", ticker))

	endpoint := fmt.Sprintf("%s/api/news?ticker=%s", p.baseURL, url.QueryEscape(ticker))
	body, err := getBody(ctx, p.client, "scanx", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", ticker, err)
	}

	raw, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("parse news for %s: %w", ticker, err)
	}

	items := make([]domain.NewsItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, domain.NewsItem{
			Headline:  stringField(r, newsHeadlineKeys...),
			Timestamp: stringField(r, newsTimeKeys...),
			URL:       stringField(r, newsURLKeys...),
		})
	}
	return items, nil
}
