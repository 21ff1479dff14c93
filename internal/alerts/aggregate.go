package alerts

import (
	"context"
	"time"

	"stock-alert-cockpit/internal/domain"
)

const (
	defaultStreamSentiment = 50

	newsScore     = 70
	newsSentiment = 60
	newsFallback  = "No headline"

	filingScore     = 75
	filingSentiment = 70
	filingFallback  = "No subject"
)

// NewsSource looks up news for one ticker. Implementations never fail; they
// report problems through the notifier and return nothing.
type NewsSource interface {
	News(ctx context.Context, ticker domain.Ticker, notices domain.Notifier) []domain.NewsItem
}

// FilingSource looks up corporate filings on one exchange.
type FilingSource interface {
	Exchange() string
	Available() bool
	Filings(ctx context.Context, ticker domain.Ticker, notices domain.Notifier) []domain.Filing
}

// ProgressFunc observes aggregation progress. index is 1-based.
type ProgressFunc func(index, total int, ticker domain.Ticker)

type RunOptions struct {
	Progress ProgressFunc
	Notices  domain.Notifier
}

type Aggregator struct {
	news NewsSource
	bse  FilingSource
	nse  FilingSource
	now  func() time.Time
}

// NewAggregator wires the per-ticker sources. Nil sources contribute nothing.
func NewAggregator(news NewsSource, bse, nse FilingSource, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{news: news, bse: bse, nse: nse, now: now}
}

// Aggregate builds alerts for every ticker in watchlist order. Within a ticker
// stream matches come first, then news, then BSE and NSE filings.
func (a *Aggregator) Aggregate(ctx context.Context, watchlist []domain.Ticker, stream []domain.StreamRecord, opts RunOptions) []domain.AlertRecord {
	if len(watchlist) == 0 {
		domain.Warn(opts.Notices, "No tickers in watchlist")
		return []domain.AlertRecord{}
	}

	out := make([]domain.AlertRecord, 0, len(watchlist)*4)
	total := len(watchlist)
	for i, ticker := range watchlist {
		if opts.Progress != nil {
			opts.Progress(i+1, total, ticker)
		}

		for _, rec := range stream {
			if rec.LinkedTicker == ticker {
				out = append(out, streamAlert(rec))
			}
		}

		if a.news != nil {
			for _, item := range a.news.News(ctx, ticker, opts.Notices) {
				out = append(out, a.newsAlert(ticker, item))
			}
		}

		var filings []domain.Filing
		if a.bse != nil {
			filings = append(filings, a.bse.Filings(ctx, ticker, opts.Notices)...)
		}
		if a.nse != nil {
			filings = append(filings, a.nse.Filings(ctx, ticker, opts.Notices)...)
		}
		for _, f := range filings {
			out = append(out, a.filingAlert(ticker, f))
		}
	}
	return out
}

func streamAlert(rec domain.StreamRecord) domain.AlertRecord {
	sentiment := defaultStreamSentiment
	if rec.Sentiment != nil {
		sentiment = *rec.Sentiment
	}
	tags := append([]string{}, rec.Tags...)
	score := Score(tags, sentiment)

	var extra map[string]any
	if len(rec.Raw) > 0 {
		extra = make(map[string]any, len(rec.Raw))
		for k, v := range rec.Raw {
			extra[k] = v
		}
	}

	return domain.AlertRecord{
		LinkedTicker: rec.LinkedTicker,
		Timestamp:    rec.Timestamp,
		Source:       domain.SourceStream,
		Sentiment:    sentiment,
		Tags:         tags,
		Score:        score,
		Heatmap:      Heatmap(score),
		Message:      rec.Message,
		URL:          rec.URL,
		Extra:        extra,
	}
}

func (a *Aggregator) newsAlert(ticker domain.Ticker, item domain.NewsItem) domain.AlertRecord {
	return domain.AlertRecord{
		LinkedTicker: ticker,
		Timestamp:    orDefault(item.Timestamp, a.nowISO()),
		Source:       domain.SourceNews,
		Sentiment:    newsSentiment,
		Tags:         []string{"news"},
		Score:        newsScore,
		Heatmap:      domain.SeverityWarning,
		Message:      orDefault(item.Headline, newsFallback),
		URL:          item.URL,
	}
}

func (a *Aggregator) filingAlert(ticker domain.Ticker, f domain.Filing) domain.AlertRecord {
	return domain.AlertRecord{
		LinkedTicker: ticker,
		Timestamp:    orDefault(f.Date, a.nowISO()),
		Source:       domain.SourceFilings,
		Sentiment:    filingSentiment,
		Tags:         []string{"filing"},
		Score:        filingScore,
		Heatmap:      domain.SeverityHot,
		Message:      orDefault(f.Subject, filingFallback),
		URL:          f.URL,
	}
}

func (a *Aggregator) nowISO() string {
	return a.now().Format(time.RFC3339)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
