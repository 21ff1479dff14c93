package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock-alert-cockpit/internal/domain"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultQuoteSuffix maps a bare NSE ticker to the vendor's symbol.
const DefaultQuoteSuffix = ".NS"

const finnhubNewsWindow = 7 * 24 * time.Hour

// FinnhubProvider serves quotes and company news from Finnhub.
type FinnhubProvider struct {
	api    *finnhub.DefaultApiService
	suffix string
	tracer trace.Tracer
	now    func() time.Time
}

// FinnhubOptions tune the vendor client. Zero values use the defaults.
type FinnhubOptions struct {
	BaseURL string
	Suffix  string
	Timeout time.Duration
	Client  *http.Client
}

func NewFinnhubProvider(apiKey string, opts FinnhubOptions, tracer trace.Tracer) *FinnhubProvider {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	if opts.BaseURL != "" {
		cfg.Servers = finnhub.ServerConfigurations{{URL: strings.TrimRight(opts.BaseURL, "/")}}
	}
	if opts.Client != nil {
		cfg.HTTPClient = opts.Client
	} else {
		cfg.HTTPClient = newHTTPClient(opts.Timeout)
	}

	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultQuoteSuffix
	}
	return &FinnhubProvider{
		api:    finnhub.NewAPIClient(cfg).DefaultApi,
		suffix: suffix,
		tracer: tracer,
		now:    time.Now,
	}
}

func (p *FinnhubProvider) symbol(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if p.suffix == "-" || strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + p.suffix
}

// FetchQuote returns the latest quote for ticker. Finnhub answers unknown
// symbols with an all-zero quote, which is reported as an error. The SDK quote
// carries no timestamp, so LastUpdatedUnix is the fetch time.
func (p *FinnhubProvider) FetchQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	ctx, span := p.tracer.Start(ctx, "finnhub.fetch-quote")
	defer span.End()

	symbol := p.symbol(ticker)
	span.SetAttributes(attribute.String("symbol", symbol))

	q, _, err := p.api.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if q.GetC() == 0 && q.GetPc() == 0 {
		return nil, fmt.Errorf("no quote for %s", symbol)
	}

	return &domain.Quote{
		Ticker:          strings.ToUpper(strings.TrimSpace(ticker)),
		Price:           float64(q.GetC()),
		Change:          float64(q.GetD()),
		ChangePct:       float64(q.GetDp()),
		High:            float64(q.GetH()),
		Low:             float64(q.GetL()),
		Open:            float64(q.GetO()),
		PreviousClose:   float64(q.GetPc()),
		LastUpdatedUnix: p.now().Unix(),
	}, nil
}

// FetchNews returns company news for ticker over the last week.
func (p *FinnhubProvider) FetchNews(ctx context.Context, ticker string) ([]domain.NewsItem, error) {
	ctx, span := p.tracer.Start(ctx, "finnhub.fetch-news")
	defer span.End()

	symbol := p.symbol(ticker)
	span.SetAttributes(attribute.String("symbol", symbol))

	to := p.now().UTC()
	from := to.Add(-finnhubNewsWindow)
	res, _, err := p.api.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}

	items := make([]domain.NewsItem, 0, len(res))
	for _, n := range res {
		item := domain.NewsItem{
			Headline: sanitizeText(n.GetHeadline(), 0),
			URL:      n.GetUrl(),
		}
		if ts := n.GetDatetime(); ts > 0 {
			item.Timestamp = time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	return items, nil
}
