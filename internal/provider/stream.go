package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"stock-alert-cockpit/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultStreamURL is the local alert service the dashboard polls.
const DefaultStreamURL = "http://localhost:8000/alerts"

// ErrStreamUnavailable wraps transport and status failures of the local
// alert service, as opposed to a reachable service returning garbage.
var ErrStreamUnavailable = errors.New("alert stream unavailable")

var (
	streamTickerKeys    = []string{"linked_ticker", "ticker", "symbol"}
	streamTagKeys       = []string{"tags", "labels"}
	streamSentimentKeys = []string{"sentiment", "sentiment_score"}
	streamMessageKeys   = []string{"message", "headline", "title", "text"}
	streamTimeKeys      = []string{"timestamp", "time", "date", "created_at"}
	streamURLKeys       = []string{"url", "link"}
)

// StreamProvider reads the pooled alert feed from the local alert service.
type StreamProvider struct {
	client *http.Client
	url    string
	tracer trace.Tracer
}

func NewStreamProvider(url string, timeout time.Duration, tracer trace.Tracer) *StreamProvider {
	if url == "" {
		url = DefaultStreamURL
	}
	return &StreamProvider{
		client: newHTTPClient(timeout),
		url:    url,
		tracer: tracer,
	}
}

// FetchStream returns every record in the feed, normalized.
func (p *StreamProvider) FetchStream(ctx context.Context) ([]domain.StreamRecord, error) {
	ctx, span := p.tracer.Start(ctx, "stream.fetch")
	defer span.End()

	body, err := getBody(ctx, p.client, "alert stream", p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStreamUnavailable, err)
	}

	raw, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("parse alert stream: %w", err)
	}

	out := make([]domain.StreamRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalizeStreamRecord(r))
	}
	span.SetAttributes(attribute.Int("stream.records", len(out)))
	return out, nil
}

func normalizeStreamRecord(r record) domain.StreamRecord {
	rec := domain.StreamRecord{
		LinkedTicker: stringField(r, streamTickerKeys...),
		Tags:         stringsField(r, streamTagKeys...),
		Message:      stringField(r, streamMessageKeys...),
		Timestamp:    stringField(r, streamTimeKeys...),
		URL:          stringField(r, streamURLKeys...),
		Raw: withoutKeys(r, streamTickerKeys, streamTagKeys, streamSentimentKeys,
			streamMessageKeys, streamTimeKeys, streamURLKeys),
	}
	if s, ok := intField(r, streamSentimentKeys...); ok {
		rec.Sentiment = &s
	}
	return rec
}
