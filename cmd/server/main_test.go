package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"stock-alert-cockpit/internal/app"
	"stock-alert-cockpit/internal/bot"
	"stock-alert-cockpit/internal/config"
	"stock-alert-cockpit/internal/job"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type bootstrapRecord struct {
	released     bool
	pollerStarts int
	botToken     string
	router       *gin.Engine
}

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &bootstrapRecord{}
	restore := stubServerDeps(rec, &config.Config{HTTPPort: 8000, FinnhubAPIKey: "key", QuotePollSecs: 1, TelegramBotToken: "token"})
	defer restore()

	runMain(t)

	if !rec.released {
		t.Fatal("filing sources were not released")
	}
	if rec.pollerStarts != 1 {
		t.Fatalf("expected the quote poller to start, got %d", rec.pollerStarts)
	}
	if rec.botToken != "token" {
		t.Fatalf("expected the bot token to be passed, got %q", rec.botToken)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	rec.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected health route, got %d", w.Code)
	}
}

func TestMainWithoutQuoteKeySkipsPoller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &bootstrapRecord{}
	restore := stubServerDeps(rec, &config.Config{HTTPPort: 8000})
	defer restore()

	runMain(t)

	if rec.pollerStarts != 0 {
		t.Fatal("poller should not start without a quote key")
	}
	if !rec.released {
		t.Fatal("filing sources were not released")
	}
}

func runMain(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func stubServerDeps(rec *bootstrapRecord, cfg *config.Config) func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origBuildStack := buildStackFunc
	origStartPoller := startPollerFunc
	origStartTelegram := startTelegramBotFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config { return cfg }
	initRedisFunc = func(context.Context, string) error { return nil }
	initTracerFunc = func(ctx context.Context, service string) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	buildStackFunc = func(ctx context.Context, c *config.Config, tracer trace.Tracer) *app.Stack {
		stack := origBuildStack(ctx, &config.Config{
			StreamURL:         "http://127.0.0.1:1/alerts",
			NewsBaseURL:       "http://127.0.0.1:1",
			SourceTimeoutSecs: 1,
		}, tracer)
		stack.Release = func() { rec.released = true }
		return stack
	}
	startPollerFunc = func(*job.QuotePoller, context.Context) { rec.pollerStarts++ }
	startTelegramBotFunc = func(token string, _ bot.QuoteReader, _ bot.AlertReader) { rec.botToken = token }
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine {
		rec.router = gin.New()
		return rec.router
	}
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		buildStackFunc = origBuildStack
		startPollerFunc = origStartPoller
		startTelegramBotFunc = origStartTelegram
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}
