// Package source turns the error-returning upstream providers into adapters
// that never fail: every failure becomes an empty result plus a notice.
package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"stock-alert-cockpit/internal/alerts"
	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/provider"
)

// DefaultFilingsLimit caps filings per ticker per exchange.
const DefaultFilingsLimit = 5

// NewsProvider is implemented by provider.ScanxNewsProvider and
// provider.FinnhubProvider.
type NewsProvider interface {
	FetchNews(ctx context.Context, ticker string) ([]domain.NewsItem, error)
}

type StreamProvider interface {
	FetchStream(ctx context.Context) ([]domain.StreamRecord, error)
}

// FilingClient is an opened exchange client.
type FilingClient interface {
	Exchange() string
	FetchFilings(ctx context.Context, ticker string) ([]domain.Filing, error)
	Close()
}

// News adapts a NewsProvider.
type News struct {
	provider NewsProvider
}

func NewNews(p NewsProvider) *News {
	return &News{provider: p}
}

func (n *News) News(ctx context.Context, ticker domain.Ticker, notices domain.Notifier) []domain.NewsItem {
	if n == nil || n.provider == nil {
		return nil
	}
	items, err := n.provider.FetchNews(ctx, ticker)
	if err != nil {
		log.Printf("news lookup for %s failed: %v", ticker, err)
		domain.Warn(notices, fmt.Sprintf("News API unavailable for %s: %v", ticker, err))
		return nil
	}
	return items
}

// Stream adapts the local alert service. An unreachable service is expected
// in development and is reported as info rather than a warning.
type Stream struct {
	provider StreamProvider
}

func NewStream(p StreamProvider) *Stream {
	return &Stream{provider: p}
}

func (s *Stream) Stream(ctx context.Context, notices domain.Notifier) []domain.StreamRecord {
	if s == nil || s.provider == nil {
		return nil
	}
	records, err := s.provider.FetchStream(ctx)
	if err != nil {
		if errors.Is(err, provider.ErrStreamUnavailable) {
			domain.Info(notices, "Local alert API not available. Using sample data.")
			return nil
		}
		log.Printf("alert stream failed: %v", err)
		domain.Warn(notices, fmt.Sprintf("Error fetching alert stream: %v", err))
		return nil
	}
	return records
}

// Filings is the available variant of alerts.FilingSource. Once its client
// is released it reports itself unavailable and stops calling out.
type Filings struct {
	client   FilingClient
	limit    int
	released atomic.Bool
}

func NewFilings(client FilingClient, limit int) *Filings {
	if limit <= 0 {
		limit = DefaultFilingsLimit
	}
	return &Filings{client: client, limit: limit}
}

func (f *Filings) Exchange() string { return f.client.Exchange() }
func (f *Filings) Available() bool  { return !f.released.Load() }

func (f *Filings) Filings(ctx context.Context, ticker domain.Ticker, notices domain.Notifier) []domain.Filing {
	if f.released.Load() {
		domain.Warn(notices, fmt.Sprintf("%s data unavailable for %s: client released", f.client.Exchange(), ticker))
		return nil
	}
	filings, err := f.client.FetchFilings(ctx, ticker)
	if err != nil {
		log.Printf("%s filings for %s failed: %v", f.client.Exchange(), ticker, err)
		domain.Warn(notices, fmt.Sprintf("%s data unavailable for %s: %v", f.client.Exchange(), ticker, err))
		return nil
	}
	if len(filings) > f.limit {
		filings = filings[:f.limit]
	}
	return filings
}

// release marks the source unavailable and closes its client. Close failures
// are logged and swallowed.
func (f *Filings) release() {
	if f.released.Swap(true) {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("closing %s client: %v", f.client.Exchange(), r)
		}
	}()
	f.client.Close()
}

// Unavailable is the filing source used when an exchange client could not be
// opened at startup. It never calls out.
type Unavailable struct {
	exchange string
}

func NewUnavailable(exchange string) Unavailable {
	return Unavailable{exchange: exchange}
}

func (u Unavailable) Exchange() string { return u.exchange }
func (u Unavailable) Available() bool  { return false }

func (u Unavailable) Filings(context.Context, domain.Ticker, domain.Notifier) []domain.Filing {
	return nil
}

var (
	_ alerts.NewsSource   = (*News)(nil)
	_ alerts.StreamSource = (*Stream)(nil)
	_ alerts.FilingSource = (*Filings)(nil)
	_ alerts.FilingSource = Unavailable{}
)
