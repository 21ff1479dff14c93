// Package app wires the alert pipeline and quote service from configuration.
// Every binary builds one Stack at startup and defers its Release.
package app

import (
	"context"
	"log"
	"time"

	"stock-alert-cockpit/internal/advisor"
	"stock-alert-cockpit/internal/alerts"
	"stock-alert-cockpit/internal/cache"
	"stock-alert-cockpit/internal/config"
	"stock-alert-cockpit/internal/provider"
	"stock-alert-cockpit/internal/service"
	"stock-alert-cockpit/internal/source"

	"go.opentelemetry.io/otel/trace"
)

type Stack struct {
	Pipeline *alerts.Pipeline
	Alerts   *service.AlertService
	Quotes   *service.QuoteService
	// NewsProvider names the news backend actually in use.
	NewsProvider string
	// Release closes the exchange clients. Safe to call more than once.
	Release func()
}

var (
	openFilingSources = source.OpenFilingSources
	newOpenAIClient   = advisor.NewOpenAIClient
	now               = time.Now
)

// Build assembles the stack. Nothing here fails: unavailable collaborators
// degrade to disabled quotes, disabled briefings or unavailable filings.
func Build(ctx context.Context, cfg *config.Config, tracer trace.Tracer) *Stack {
	timeout := cfg.SourceTimeout()

	var finnhub *provider.FinnhubProvider
	if cfg.FinnhubAPIKey != "" {
		finnhub = provider.NewFinnhubProvider(cfg.FinnhubAPIKey, provider.FinnhubOptions{
			Suffix:  cfg.QuoteSymbolSuffix,
			Timeout: timeout,
		}, tracer)
	}

	var news source.NewsProvider
	newsName := "http"
	if cfg.NewsProvider == "finnhub" && finnhub != nil {
		news = finnhub
		newsName = "finnhub"
	} else {
		news = provider.NewScanxNewsProvider(cfg.NewsBaseURL, timeout, tracer)
	}
	log.Printf("News provider: %s", newsName)

	stream := source.NewStream(provider.NewStreamProvider(cfg.StreamURL, timeout, tracer))
	bse, nse, release := openFilingSources(ctx, source.FilingOptions{
		BSEEnabled: cfg.BSEEnabled,
		BSEBaseURL: cfg.BSEBaseURL,
		NSEEnabled: cfg.NSEEnabled,
		NSEBaseURL: cfg.NSEBaseURL,
		Timeout:    timeout,
		Limit:      cfg.FilingsLimit,
	}, tracer)

	aggregator := alerts.NewAggregator(source.NewNews(news), bse, nse, now)
	pipeline := alerts.NewPipeline(tracer, stream, aggregator)

	var quoteProvider service.QuoteProvider
	if finnhub != nil {
		quoteProvider = finnhub
	}
	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	quotes := service.NewQuoteService(tracer, quoteProvider, redisClient)

	var briefer service.Briefer
	if cfg.OpenAIAPIKey != "" {
		briefer = advisor.NewBriefingService(tracer, newOpenAIClient(cfg.OpenAIAPIKey), quotes, cfg.OpenAIModel, 0)
		log.Println("Alert briefings enabled")
	}

	return &Stack{
		Pipeline:     pipeline,
		Alerts:       service.NewAlertService(tracer, pipeline, briefer),
		Quotes:       quotes,
		NewsProvider: newsName,
		Release:      release,
	}
}
