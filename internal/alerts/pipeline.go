package alerts

import (
	"context"

	"stock-alert-cockpit/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StreamSource returns the pooled local alert feed for all tickers.
type StreamSource interface {
	Stream(ctx context.Context, notices domain.Notifier) []domain.StreamRecord
}

// Result is the outcome of one dashboard refresh.
type Result struct {
	Watchlist []domain.Ticker      `json:"watchlist"`
	Alerts    []domain.AlertRecord `json:"alerts"`
	Notices   []domain.Notice      `json:"notices"`
}

// Pipeline runs stream fetch, aggregation and ranking for one refresh.
type Pipeline struct {
	tracer     trace.Tracer
	stream     StreamSource
	aggregator *Aggregator
}

func NewPipeline(tracer trace.Tracer, stream StreamSource, aggregator *Aggregator) *Pipeline {
	return &Pipeline{tracer: tracer, stream: stream, aggregator: aggregator}
}

// Refresh recomputes the ranked alert list from scratch. Notices are collected
// into the result and also forwarded to opts.Notices when set.
func (p *Pipeline) Refresh(ctx context.Context, watchlist []domain.Ticker, opts RunOptions) Result {
	ctx, span := p.tracer.Start(ctx, "alerts.refresh")
	defer span.End()
	span.SetAttributes(attribute.Int("watchlist.size", len(watchlist)))

	var collected domain.NoticeLog
	notices := teeNotifier{&collected, opts.Notices}
	runOpts := RunOptions{Progress: opts.Progress, Notices: notices}

	var stream []domain.StreamRecord
	if len(watchlist) > 0 && p.stream != nil {
		stream = p.stream.Stream(ctx, notices)
	}

	aggregated := p.aggregator.Aggregate(ctx, watchlist, stream, runOpts)
	ranked := Rank(aggregated)
	span.SetAttributes(attribute.Int("alerts.count", len(ranked)))

	return Result{
		Watchlist: append([]domain.Ticker(nil), watchlist...),
		Alerts:    ranked,
		Notices:   collected.Notices(),
	}
}

// FilingStatus reports which exchanges have a usable filing source.
func (p *Pipeline) FilingStatus() map[string]bool {
	status := map[string]bool{}
	for _, src := range []FilingSource{p.aggregator.bse, p.aggregator.nse} {
		if src != nil {
			status[src.Exchange()] = src.Available()
		}
	}
	return status
}

type teeNotifier struct {
	primary domain.Notifier
	extra   domain.Notifier
}

func (t teeNotifier) Notify(n domain.Notice) {
	t.primary.Notify(n)
	if t.extra != nil {
		t.extra.Notify(n)
	}
}
