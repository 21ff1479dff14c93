package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-alert-cockpit/internal/app"
	"stock-alert-cockpit/internal/bot"
	"stock-alert-cockpit/internal/cache"
	"stock-alert-cockpit/internal/config"
	"stock-alert-cockpit/internal/handler"
	"stock-alert-cockpit/internal/job"
	"stock-alert-cockpit/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "stock-alert-cockpit/docs"
)

const serviceName = "stock-alert-api"

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	buildStackFunc         = app.Build
	newQuotePollerFunc     = job.NewQuotePoller
	startPollerFunc        = func(p *job.QuotePoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = func(token string, quotes bot.QuoteReader, alerts bot.AlertReader) { bot.StartTelegramBot(token, quotes, alerts) }
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Stock Market Positions Alerts API
// @version         1.0
// @description     Ranked watchlist alerts from the local stream, news and exchange filings, plus stock quotes.

// @host      localhost:8000
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
		log.Printf("Warning: Redis unavailable, quotes will not be cached: %v", err)
	}
	defer cache.Close()

	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	stack := buildStackFunc(ctx, cfg, tracer)
	defer stack.Release()

	// Quote poller keeps the Redis cache warm for the tracked stocks
	if cfg.FinnhubAPIKey != "" {
		poller := newQuotePollerFunc(tracer, stack.Quotes, cfg.QuotePollInterval())
		startPollerFunc(poller, ctx)
	}

	startTelegramBotFunc(cfg.TelegramBotToken, stack.Quotes, stack.Alerts)

	h := handler.New(tracer, stack.Quotes, stack.Alerts)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(serviceName))
	r.Use(handler.CORS(append(cfg.CORSAllowedOrigins, cfg.FrontendURL)...))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Printf("listen: %s", err)
			select {
			case quit <- syscall.SIGTERM:
			default:
			}
		}
	}()

	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
