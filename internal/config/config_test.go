package config

import (
	"testing"
	"time"
)

var allKeys = []string{
	"HTTP_PORT", "STREAM_URL", "NEWS_PROVIDER", "NEWS_BASE_URL", "SOURCE_TIMEOUT_SECS",
	"FILINGS_LIMIT", "BSE_ENABLED", "BSE_BASE_URL", "NSE_ENABLED", "NSE_BASE_URL",
	"WATCHLIST_FILE", "FINNHUB_API_KEY", "QUOTE_SYMBOL_SUFFIX", "QUOTE_POLL_SECS",
	"REDIS_URL", "CORS_ALLOWED_ORIGINS", "FRONTEND_URL", "TELEGRAM_BOT_TOKEN",
	"OPENAI_API_KEY", "OPENAI_MODEL", "SSH_PORT", "SSH_HOST_KEY_PATH",
	"MCP_TRANSPORT", "MCP_HTTP_BIND", "MCP_HTTP_PORT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.HTTPPort != 8000 {
		t.Fatalf("expected default http port 8000, got %d", cfg.HTTPPort)
	}
	if cfg.StreamURL != "http://localhost:8000/alerts" || cfg.NewsBaseURL != "https://scanx.trade" {
		t.Fatalf("unexpected source defaults: %+v", cfg)
	}
	if cfg.NewsProvider != "http" {
		t.Fatalf("expected http news provider, got %s", cfg.NewsProvider)
	}
	if cfg.SourceTimeout() != 5*time.Second || cfg.FilingsLimit != 5 {
		t.Fatalf("unexpected adapter defaults: %v %d", cfg.SourceTimeout(), cfg.FilingsLimit)
	}
	if !cfg.BSEEnabled || !cfg.NSEEnabled {
		t.Fatal("exchanges should be enabled by default")
	}
	if cfg.RedisURL != "localhost:6379" || cfg.QuotePollInterval() != time.Minute || cfg.QuoteSymbolSuffix != ".NS" {
		t.Fatalf("unexpected quote defaults: %+v", cfg)
	}
	if cfg.SSHPort != 2222 || cfg.MCPTransport != "stdio" || cfg.MCPHTTPPort != 8090 {
		t.Fatalf("unexpected front end defaults: %+v", cfg)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected model default: %s", cfg.OpenAIModel)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no extra origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STREAM_URL", "http://alerts.local/alerts")
	t.Setenv("NEWS_PROVIDER", "FINNHUB")
	t.Setenv("FINNHUB_API_KEY", "key")
	t.Setenv("SOURCE_TIMEOUT_SECS", "2")
	t.Setenv("FILINGS_LIMIT", "3")
	t.Setenv("BSE_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("QUOTE_POLL_SECS", "120")
	t.Setenv("MCP_TRANSPORT", "http")

	cfg := Load()
	if cfg.HTTPPort != 9000 || cfg.StreamURL != "http://alerts.local/alerts" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.NewsProvider != "finnhub" {
		t.Fatalf("expected finnhub news provider, got %s", cfg.NewsProvider)
	}
	if cfg.SourceTimeout() != 2*time.Second || cfg.FilingsLimit != 3 {
		t.Fatalf("unexpected adapter settings: %+v", cfg)
	}
	if cfg.BSEEnabled || !cfg.NSEEnabled {
		t.Fatalf("unexpected exchange toggles: %v %v", cfg.BSEEnabled, cfg.NSEEnabled)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.QuotePollSecs != 120 || cfg.MCPTransport != "http" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "abc")
	t.Setenv("SOURCE_TIMEOUT_SECS", "-1")
	t.Setenv("NEWS_PROVIDER", "carrier-pigeon")
	t.Setenv("MCP_TRANSPORT", "grpc")

	cfg := Load()
	if cfg.HTTPPort != 8000 || cfg.SourceTimeoutSecs != 5 {
		t.Fatalf("invalid numbers should fall back, got %+v", cfg)
	}
	if cfg.NewsProvider != "http" || cfg.MCPTransport != "stdio" {
		t.Fatalf("invalid enums should fall back, got %s %s", cfg.NewsProvider, cfg.MCPTransport)
	}
}

func TestLoadFinnhubNewsWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEWS_PROVIDER", "finnhub")

	if cfg := Load(); cfg.NewsProvider != "http" {
		t.Fatalf("expected fallback to http news without a key, got %s", cfg.NewsProvider)
	}
}
