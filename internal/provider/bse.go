package provider

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"stock-alert-cockpit/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBSEBaseURL = "https://api.bseindia.com"
	bseReferer        = "https://www.bseindia.com/"
)

var (
	bseSubjectKeys = []string{"subject", "Purpose", "purpose", "headline"}
	bseDateKeys    = []string{"exDate", "Ex_date", "date", "BCRD_FROM"}
	bseURLKeys     = []string{"attachmentUrl", "ATTACHMENTNAME", "url", "link"}
)

// BSEClient reads corporate actions from the BSE India API. The scrip table
// used to resolve tickers is loaded on first use and kept for the process.
type BSEClient struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer

	mu     sync.Mutex
	scrips map[string]string
}

// OpenBSE validates the endpoint and returns a client. No request is made.
func OpenBSE(baseURL string, timeout time.Duration, tracer trace.Tracer) (*BSEClient, error) {
	if baseURL == "" {
		baseURL = DefaultBSEBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("bse base url: %w", err)
	}
	return &BSEClient{
		client:  newHTTPClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
	}, nil
}

func (c *BSEClient) Exchange() string { return "BSE" }

// FetchFilings resolves ticker to a scrip code and returns its corporate
// actions. An unknown ticker yields no filings and no error.
func (c *BSEClient) FetchFilings(ctx context.Context, ticker string) ([]domain.Filing, error) {
	ctx, span := c.tracer.Start(ctx, "bse.fetch-filings")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", ticker))

	code, err := c.scripCode(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, nil
	}
	span.SetAttributes(attribute.String("bse.scrip_code", code))

	endpoint := fmt.Sprintf("%s/BseIndiaAPI/api/DefaultData/w?Fdate=&Purposecode=&TDate=&ddlcategorys=E&ddlindustrys=&scripcode=%s&segment=0&strSearch=S",
		c.baseURL, url.QueryEscape(code))
	body, err := getBody(ctx, c.client, "bse", endpoint, c.headers())
	if err != nil {
		return nil, fmt.Errorf("fetch bse actions for %s: %w", ticker, err)
	}

	raw, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("parse bse actions for %s: %w", ticker, err)
	}

	filings := make([]domain.Filing, 0, len(raw))
	for _, r := range raw {
		filings = append(filings, domain.Filing{
			Exchange: "BSE",
			Subject:  stringField(r, bseSubjectKeys...),
			Date:     stringField(r, bseDateKeys...),
			URL:      stringField(r, bseURLKeys...),
		})
	}
	return filings, nil
}

func (c *BSEClient) scripCode(ctx context.Context, ticker string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scrips == nil {
		scrips, err := c.loadScrips(ctx)
		if err != nil {
			return "", err
		}
		c.scrips = scrips
	}
	return c.scrips[strings.ToUpper(strings.TrimSpace(ticker))], nil
}

func (c *BSEClient) loadScrips(ctx context.Context) (map[string]string, error) {
	endpoint := c.baseURL + "/BseIndiaAPI/api/ListofScripData/w?Group=&Scripcode=&industry=&segment=Equity&status=Active"
	body, err := getBody(ctx, c.client, "bse", endpoint, c.headers())
	if err != nil {
		return nil, fmt.Errorf("fetch bse scrip list: %w", err)
	}
	raw, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("parse bse scrip list: %w", err)
	}

	scrips := make(map[string]string, len(raw)*2)
	for _, r := range raw {
		code := strings.TrimSpace(stringField(r, "SCRIP_CD", "scrip_cd", "Scrip_Code"))
		if code == "" {
			continue
		}
		for _, name := range []string{stringField(r, "scrip_id", "Scrip_Id"), stringField(r, "Scrip_Name", "scrip_name")} {
			key := strings.ToUpper(strings.TrimSpace(name))
			if key == "" {
				continue
			}
			if _, taken := scrips[key]; !taken {
				scrips[key] = code
			}
		}
	}
	return scrips, nil
}

func (c *BSEClient) headers() map[string]string {
	return map[string]string{
		"User-Agent": browserUserAgent,
		"Referer":    bseReferer,
		"Origin":     strings.TrimRight(bseReferer, "/"),
	}
}

// Close releases idle connections and forgets the scrip table.
func (c *BSEClient) Close() {
	c.mu.Lock()
	c.scrips = nil
	c.mu.Unlock()
	c.client.CloseIdleConnections()
	log.Println("bse client closed")
}
