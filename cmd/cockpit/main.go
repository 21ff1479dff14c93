package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"stock-alert-cockpit/internal/app"
	"stock-alert-cockpit/internal/config"
	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/tui"
	"stock-alert-cockpit/internal/watchlist"
	"stock-alert-cockpit/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

const serviceName = "stock-alert-cockpit"

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initTracerFunc = tracing.InitTracer
	buildStackFunc = app.Build
	logToFileFunc  = tea.LogToFile
	logPath        = filepath.Join(os.TempDir(), "stock-alert-cockpit.log")
	runProgramFunc = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

// run returns the exit code so deferred releases happen before os.Exit.
func run() int {
	loadEnvFunc()

	// The alt screen owns stdout, so logs go to a file.
	if f, err := logToFileFunc(logPath, "cockpit"); err == nil {
		defer f.Close()
	}

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		log.Printf("failed to initialize tracer: %v", err)
		return 1
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	stack := buildStackFunc(ctx, cfg, tracer)
	defer stack.Release()

	model := tui.NewModel(tui.Services{
		Alerts:    stack.Pipeline,
		Cleanup:   stack.Release,
		Watchlist: initialWatchlist(cfg.WatchlistFile),
	})
	if err := runProgramFunc(model); err != nil {
		log.Printf("dashboard exited with error: %v", err)
		return 1
	}
	return 0
}

func initialWatchlist(path string) []domain.Ticker {
	if path == "" {
		return nil
	}
	tickers, err := watchlist.LoadFile(path)
	if err != nil {
		log.Printf("Warning: could not load WATCHLIST_FILE %s: %v", path, err)
		return nil
	}
	return tickers
}
