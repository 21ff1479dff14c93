package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort int

	StreamURL         string
	NewsProvider      string
	NewsBaseURL       string
	SourceTimeoutSecs int
	FilingsLimit      int
	BSEEnabled        bool
	BSEBaseURL        string
	NSEEnabled        bool
	NSEBaseURL        string
	WatchlistFile     string

	FinnhubAPIKey     string
	QuoteSymbolSuffix string
	QuotePollSecs     int
	RedisURL          string

	CORSAllowedOrigins []string
	FrontendURL        string

	TelegramBotToken string
	OpenAIAPIKey     string
	OpenAIModel      string

	SSHPort        int
	SSHHostKeyPath string

	MCPTransport string
	MCPHTTPBind  string
	MCPHTTPPort  int
}

func Load() *Config {
	cfg := &Config{
		StreamURL:        strings.TrimSpace(os.Getenv("STREAM_URL")),
		NewsBaseURL:      strings.TrimSpace(os.Getenv("NEWS_BASE_URL")),
		BSEBaseURL:       strings.TrimSpace(os.Getenv("BSE_BASE_URL")),
		NSEBaseURL:       strings.TrimSpace(os.Getenv("NSE_BASE_URL")),
		WatchlistFile:    strings.TrimSpace(os.Getenv("WATCHLIST_FILE")),
		FinnhubAPIKey:    os.Getenv("FINNHUB_API_KEY"),
		RedisURL:         os.Getenv("REDIS_URL"),
		FrontendURL:      strings.TrimSpace(os.Getenv("FRONTEND_URL")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}

	cfg.HTTPPort = 8000
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		} else {
			log.Printf("Warning: invalid HTTP_PORT=%q, defaulting to 8000", v)
		}
	}

	if cfg.StreamURL == "" {
		cfg.StreamURL = "http://localhost:8000/alerts"
	}
	if cfg.NewsBaseURL == "" {
		cfg.NewsBaseURL = "https://scanx.trade"
	}

	cfg.NewsProvider = strings.ToLower(strings.TrimSpace(os.Getenv("NEWS_PROVIDER")))
	if cfg.NewsProvider == "" {
		cfg.NewsProvider = "http"
	}
	if cfg.NewsProvider != "http" && cfg.NewsProvider != "finnhub" {
		log.Printf("Warning: unsupported NEWS_PROVIDER=%q, defaulting to http", cfg.NewsProvider)
		cfg.NewsProvider = "http"
	}
	if cfg.NewsProvider == "finnhub" && cfg.FinnhubAPIKey == "" {
		log.Println("Warning: NEWS_PROVIDER=finnhub without FINNHUB_API_KEY, defaulting to http")
		cfg.NewsProvider = "http"
	}

	cfg.SourceTimeoutSecs = 5
	if v := strings.TrimSpace(os.Getenv("SOURCE_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SourceTimeoutSecs = n
		}
	}

	cfg.FilingsLimit = 5
	if v := strings.TrimSpace(os.Getenv("FILINGS_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FilingsLimit = n
		}
	}

	cfg.BSEEnabled = !strings.EqualFold(strings.TrimSpace(os.Getenv("BSE_ENABLED")), "false")
	cfg.NSEEnabled = !strings.EqualFold(strings.TrimSpace(os.Getenv("NSE_ENABLED")), "false")

	if cfg.FinnhubAPIKey == "" {
		log.Println("Warning: FINNHUB_API_KEY not set, quote API will be disabled")
	}

	cfg.QuoteSymbolSuffix = os.Getenv("QUOTE_SYMBOL_SUFFIX")
	if cfg.QuoteSymbolSuffix == "" {
		cfg.QuoteSymbolSuffix = ".NS"
	}

	cfg.QuotePollSecs = 60
	if v := strings.TrimSpace(os.Getenv("QUOTE_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.QuotePollSecs = n
		}
	}

	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, briefings will be disabled")
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/id_ed25519"
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = 8090
	if v := strings.TrimSpace(os.Getenv("MCP_HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPHTTPPort = n
		}
	}

	return cfg
}

// SourceTimeout is the per-call budget for every upstream adapter.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.SourceTimeoutSecs) * time.Second
}

// QuotePollInterval is how often the quote cache is refreshed.
func (c *Config) QuotePollInterval() time.Duration {
	return time.Duration(c.QuotePollSecs) * time.Second
}
