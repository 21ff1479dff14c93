package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"stock-alert-cockpit/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const quoteCacheTTL = 90 * time.Second

// ErrQuotesDisabled is returned when no quote vendor is configured.
var ErrQuotesDisabled = errors.New("quotes disabled: FINNHUB_API_KEY not set")

type QuoteProvider interface {
	FetchQuote(ctx context.Context, ticker string) (*domain.Quote, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// QuoteService serves quotes for the tracked stocks, caching them in Redis
// when a client is available.
type QuoteService struct {
	tracer   trace.Tracer
	provider QuoteProvider
	redis    RedisClient
	tracked  []string
}

func NewQuoteService(tracer trace.Tracer, provider QuoteProvider, redisClient RedisClient) *QuoteService {
	return &QuoteService{
		tracer:   tracer,
		provider: provider,
		redis:    redisClient,
		tracked:  domain.TrackedStocks,
	}
}

// Tracked returns the fixed ticker list served by GetTrackedQuotes.
func (s *QuoteService) Tracked() []string {
	return append([]string(nil), s.tracked...)
}

// GetQuote returns the cached quote for ticker, falling back to a live call.
func (s *QuoteService) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "quote-service.get-quote")
	defer span.End()

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	span.SetAttributes(attribute.String("ticker", ticker))
	if ticker == "" {
		return nil, fmt.Errorf("empty ticker")
	}
	if s.provider == nil {
		return nil, ErrQuotesDisabled
	}

	if s.redis != nil {
		cached, err := s.getQuoteCache(ctx, ticker)
		if err != nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	quote, err := s.provider.FetchQuote(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if s.redis != nil {
		if err := s.setQuoteCache(ctx, quote); err != nil {
			log.Printf("redis cache write error for %s: %v", ticker, err)
		}
	}
	return quote, nil
}

// GetQuotes returns quotes for every ticker that resolves; failures are
// logged and skipped.
func (s *QuoteService) GetQuotes(ctx context.Context, tickers []string) []*domain.Quote {
	ctx, span := s.tracer.Start(ctx, "quote-service.get-quotes")
	defer span.End()

	quotes := make([]*domain.Quote, 0, len(tickers))
	for _, t := range tickers {
		q, err := s.GetQuote(ctx, t)
		if err != nil {
			log.Printf("quote for %s unavailable: %v", t, err)
			continue
		}
		quotes = append(quotes, q)
	}
	span.SetAttributes(attribute.Int("quotes.count", len(quotes)))
	return quotes
}

// GetTrackedQuotes is GetQuotes over the tracked stock list.
func (s *QuoteService) GetTrackedQuotes(ctx context.Context) []*domain.Quote {
	return s.GetQuotes(ctx, s.tracked)
}

// RefreshQuotes fetches every tracked stock live and rewrites the cache.
func (s *QuoteService) RefreshQuotes(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "quote-service.refresh-quotes")
	defer span.End()

	if s.provider == nil {
		return ErrQuotesDisabled
	}

	var errs []error
	refreshed := 0
	for _, t := range s.tracked {
		q, err := s.provider.FetchQuote(ctx, t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
		if s.redis != nil {
			if err := s.setQuoteCache(ctx, q); err != nil {
				log.Printf("redis cache write error for %s: %v", t, err)
			}
		}
	}

	log.Printf("Refreshed quotes for %d/%d stocks", refreshed, len(s.tracked))
	if refreshed == 0 && len(errs) > 0 {
		return fmt.Errorf("refresh quotes: %w", errors.Join(errs...))
	}
	return nil
}

func (s *QuoteService) setQuoteCache(ctx context.Context, quote *domain.Quote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, "quote:"+quote.Ticker, data, quoteCacheTTL).Err()
}

func (s *QuoteService) getQuoteCache(ctx context.Context, ticker string) (*domain.Quote, error) {
	data, err := s.redis.Get(ctx, "quote:"+ticker).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var quote domain.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
