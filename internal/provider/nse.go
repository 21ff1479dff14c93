package provider

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"stock-alert-cockpit/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const DefaultNSEBaseURL = "https://www.nseindia.com"

const nseActionFallback = "Corporate Action"

var (
	nseAnnouncementSubjectKeys = []string{"headline", "subject", "desc", "attchmntText"}
	nseAnnouncementDateKeys    = []string{"date", "announcementDate", "an_dt", "sort_date"}
	nseAnnouncementURLKeys     = []string{"link", "url", "attchmntFile"}

	nseActionSubjectKeys = []string{"subject", "purpose"}
	nseActionDateKeys    = []string{"exDate", "date", "recDate"}
	nseActionURLKeys     = []string{"link", "url"}
)

// NSEClient reads corporate announcements from the NSE India API. The API
// rejects requests without the session cookies handed out by the home page,
// so Open warms the cookie jar before the client is used.
type NSEClient struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter

	mu sync.Mutex
}

// OpenNSE builds a client and performs the cookie warm-up request.
func OpenNSE(ctx context.Context, baseURL string, timeout time.Duration, tracer trace.Tracer) (*NSEClient, error) {
	if baseURL == "" {
		baseURL = DefaultNSEBaseURL
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("nse cookie jar: %w", err)
	}
	client := newHTTPClient(timeout)
	client.Jar = jar

	c := &NSEClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
		limiter: NewRateLimiter(3, time.Second),
	}
	if err := c.warmUp(ctx); err != nil {
		client.CloseIdleConnections()
		return nil, err
	}
	return c, nil
}

func (c *NSEClient) Exchange() string { return "NSE" }

func (c *NSEClient) warmUp(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "nse.warm-up")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("nse warm-up: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{API: "nse", Status: resp.StatusCode, Body: "warm-up rejected"}
	}
	return nil
}

// FetchFilings returns corporate announcements for the upper-cased symbol,
// falling back to corporate actions when there are none.
func (c *NSEClient) FetchFilings(ctx context.Context, ticker string) ([]domain.Filing, error) {
	ctx, span := c.tracer.Start(ctx, "nse.fetch-filings")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	span.SetAttributes(attribute.String("ticker", symbol))

	announcements, err := c.fetch(ctx, "/api/corporate-announcements?index=equities&symbol="+url.QueryEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("fetch nse announcements for %s: %w", symbol, err)
	}
	if len(announcements) > 0 {
		out := make([]domain.Filing, 0, len(announcements))
		for _, r := range announcements {
			out = append(out, domain.Filing{
				Exchange: "NSE",
				Subject:  stringField(r, nseAnnouncementSubjectKeys...),
				Date:     stringField(r, nseAnnouncementDateKeys...),
				URL:      stringField(r, nseAnnouncementURLKeys...),
			})
		}
		return out, nil
	}

	actions, err := c.fetch(ctx, "/api/corporates-corporateActions?index=equities&symbol="+url.QueryEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("fetch nse actions for %s: %w", symbol, err)
	}
	out := make([]domain.Filing, 0, len(actions))
	for _, r := range actions {
		subject := stringField(r, nseActionSubjectKeys...)
		if subject == "" {
			subject = nseActionFallback
		}
		out = append(out, domain.Filing{
			Exchange: "NSE",
			Subject:  subject,
			Date:     stringField(r, nseActionDateKeys...),
			URL:      stringField(r, nseActionURLKeys...),
		})
	}
	return out, nil
}

func (c *NSEClient) fetch(ctx context.Context, path string) ([]record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	body, err := getBody(ctx, client, "nse", c.baseURL+path, map[string]string{
		"User-Agent": browserUserAgent,
		"Referer":    c.baseURL + "/",
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords(body)
}

// Close releases idle connections and drops the session cookies.
func (c *NSEClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.client.CloseIdleConnections()
	c.client = &http.Client{Timeout: c.client.Timeout}
	log.Println("nse client closed")
}
