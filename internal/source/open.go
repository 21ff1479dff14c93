package source

import (
	"context"
	"log"
	"sync"
	"time"

	"stock-alert-cockpit/internal/alerts"
	"stock-alert-cockpit/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

// FilingOptions select and configure the exchange clients.
type FilingOptions struct {
	BSEEnabled bool
	BSEBaseURL string
	NSEEnabled bool
	NSEBaseURL string
	Timeout    time.Duration
	Limit      int
}

// Opener functions are swapped in tests.
var (
	openBSE = func(ctx context.Context, opts FilingOptions, tracer trace.Tracer) (FilingClient, error) {
		return provider.OpenBSE(opts.BSEBaseURL, opts.Timeout, tracer)
	}
	openNSE = func(ctx context.Context, opts FilingOptions, tracer trace.Tracer) (FilingClient, error) {
		return provider.OpenNSE(ctx, opts.NSEBaseURL, opts.Timeout, tracer)
	}
)

// OpenFilingSources resolves filing availability once. A disabled or failed
// exchange gets the unavailable variant for the rest of the process. The
// returned release func closes every opened client, after which those sources
// report unavailable and return nothing. It is safe to call more than once.
func OpenFilingSources(ctx context.Context, opts FilingOptions, tracer trace.Tracer) (bse, nse alerts.FilingSource, release func()) {
	var opened []*Filings

	open := func(exchange string, enabled bool, fn func(context.Context, FilingOptions, trace.Tracer) (FilingClient, error)) alerts.FilingSource {
		if !enabled {
			log.Printf("%s filings disabled", exchange)
			return NewUnavailable(exchange)
		}
		client, err := fn(ctx, opts, tracer)
		if err != nil {
			log.Printf("WARNING: %s filings unavailable: %v", exchange, err)
			return NewUnavailable(exchange)
		}
		src := NewFilings(client, opts.Limit)
		opened = append(opened, src)
		return src
	}

	bse = open("BSE", opts.BSEEnabled, openBSE)
	nse = open("NSE", opts.NSEEnabled, openNSE)

	var once sync.Once
	release = func() {
		once.Do(func() {
			for _, src := range opened {
				src.release()
			}
		})
	}
	return bse, nse, release
}
