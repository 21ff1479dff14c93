package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stock-alert-cockpit/internal/app"
	"stock-alert-cockpit/internal/cache"
	"stock-alert-cockpit/internal/config"
	"stock-alert-cockpit/internal/mcpserver"
	"stock-alert-cockpit/pkg/tracing"

	"github.com/joho/godotenv"
)

const (
	serviceName = "stock-alert-mcp"
	version     = "1.0.0"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer
	buildStackFunc = app.Build
	serveFunc      = mcpserver.Serve
	notifyContext  = signal.NotifyContext
)

func main() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

func run() int {
	// stdout carries the stdio transport.
	log.SetOutput(os.Stderr)

	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.FinnhubAPIKey != "" {
		if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
			log.Printf("Warning: Redis unavailable, quotes will not be cached: %v", err)
		}
		defer cache.Close()
	}

	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		log.Printf("failed to initialize tracer: %v", err)
		return 1
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	stack := buildStackFunc(ctx, cfg, tracer)
	defer stack.Release()

	var quotes mcpserver.QuoteReader
	if cfg.FinnhubAPIKey != "" {
		quotes = stack.Quotes
	}
	server := mcpserver.New(tracer, version, quotes, stack.Alerts)

	log.Printf("MCP server starting on %s transport", cfg.MCPTransport)
	if err := serveFunc(ctx, server, cfg.MCPTransport, cfg.MCPHTTPBind, cfg.MCPHTTPPort); err != nil && ctx.Err() == nil {
		log.Printf("MCP server stopped: %v", err)
		return 1
	}
	return 0
}
