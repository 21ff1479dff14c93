package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// QuoteRefresher rewrites the quote cache. Implemented by service.QuoteService.
type QuoteRefresher interface {
	RefreshQuotes(ctx context.Context) error
}

// QuotePoller keeps the quote cache warm between API requests.
type QuotePoller struct {
	tracer       trace.Tracer
	quotes       QuoteRefresher
	pollInterval time.Duration
}

func NewQuotePoller(tracer trace.Tracer, quotes QuoteRefresher, pollInterval time.Duration) *QuotePoller {
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &QuotePoller{
		tracer:       tracer,
		quotes:       quotes,
		pollInterval: pollInterval,
	}
}

// Start polls until ctx is cancelled.
func (p *QuotePoller) Start(ctx context.Context) {
	log.Println("Quote poller starting...")
	p.pollLoop(ctx, "quotes", p.pollInterval, p.refresh)
	log.Println("Quote poller stopped")
}

func (p *QuotePoller) refresh(ctx context.Context) error {
	ctx, span := p.tracer.Start(ctx, "job.quote-poller.refresh")
	defer span.End()
	return p.quotes.RefreshQuotes(ctx)
}

func (p *QuotePoller) pollLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		log.Printf("poller %s initial run error: %v", name, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Printf("poller %s error: %v", name, err)
			}
		}
	}
}
