package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"stock-alert-cockpit/internal/domain"
	"stock-alert-cockpit/internal/service"
	"stock-alert-cockpit/internal/watchlist"

	tele "gopkg.in/telebot.v3"
)

const (
	maxAlertsPerReply = 10
	maxMessageChars   = 4000
	commandTimeout    = 60 * time.Second
)

type QuoteReader interface {
	GetQuote(ctx context.Context, ticker string) (*domain.Quote, error)
}

type AlertReader interface {
	Query(ctx context.Context, q service.AlertQuery) service.AlertView
	Brief(ctx context.Context, q service.AlertQuery) (string, service.AlertView, error)
}

// Commands renders the replies for each bot command. It holds no telebot
// state so the replies can be exercised without a bot.
type Commands struct {
	quotes QuoteReader
	alerts AlertReader
}

func NewCommands(quotes QuoteReader, alerts AlertReader) *Commands {
	return &Commands{quotes: quotes, alerts: alerts}
}

func (c *Commands) Alerts(ctx context.Context, args []string) string {
	if c.alerts == nil {
		return "Alerts are not configured."
	}
	view := c.alerts.Query(ctx, service.AlertQuery{Tickers: tickersFromArgs(args)})
	return formatAlerts(view)
}

func (c *Commands) Quote(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return fmt.Sprintf("Usage: /quote TCS\nTracked: %s", strings.Join(domain.TrackedStocks, ", "))
	}
	if c.quotes == nil {
		return "Quotes are not configured."
	}
	ticker := strings.ToUpper(strings.TrimSpace(args[0]))
	q, err := c.quotes.GetQuote(ctx, ticker)
	if err != nil {
		return fmt.Sprintf("Error fetching quote for %s: %v", ticker, err)
	}
	return fmt.Sprintf(
		"%s\nPrice: %.2f\nChange: %+.2f (%+.2f%%)\nDay range: %.2f - %.2f\nPrev close: %.2f",
		q.Ticker, q.Price, q.Change, q.ChangePct, q.Low, q.High, q.PreviousClose,
	)
}

func (c *Commands) Brief(ctx context.Context, args []string) string {
	if c.alerts == nil {
		return "Alerts are not configured."
	}
	text, _, err := c.alerts.Brief(ctx, service.AlertQuery{Tickers: tickersFromArgs(args)})
	if errors.Is(err, service.ErrBriefingDisabled) {
		return "Briefings are disabled on this server."
	}
	if err != nil {
		return fmt.Sprintf("Error generating briefing: %v", err)
	}
	return truncate(text, maxMessageChars)
}

func formatAlerts(view service.AlertView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Watchlist: %s\n", strings.Join(view.Watchlist, ", "))
	if len(view.Alerts) == 0 {
		b.WriteString("No alerts right now.")
	} else {
		fmt.Fprintf(&b, "Top alerts (%d of %d):\n", min(len(view.Alerts), maxAlertsPerReply), view.Total)
		for i, a := range view.Alerts {
			if i == maxAlertsPerReply {
				break
			}
			fmt.Fprintf(&b, "%s %s [%s] %d: %s\n", a.Heatmap.Glyph(), a.LinkedTicker, a.Source, a.Score, truncate(a.Message, 120))
		}
	}
	for _, n := range view.Notices {
		if n.Level == domain.NoticeWarning {
			fmt.Fprintf(&b, "\n⚠️ %s", n.Message)
		}
	}
	return truncate(strings.TrimRight(b.String(), "\n"), maxMessageChars)
}

func tickersFromArgs(args []string) []domain.Ticker {
	return watchlist.ParseList(strings.Join(args, " "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// StartTelegramBot registers the command handlers and starts long polling in
// the background. An empty token skips startup.
func StartTelegramBot(token string, quotes QuoteReader, alerts AlertReader) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Printf("failed to create Telegram bot: %v", err)
		return
	}

	cmds := NewCommands(quotes, alerts)
	reply := func(run func(context.Context, []string) string) tele.HandlerFunc {
		return func(c tele.Context) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return c.Send(run(ctx, c.Args()))
		}
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	b.Handle("/alerts", reply(cmds.Alerts))
	b.Handle("/quote", reply(cmds.Quote))
	b.Handle("/brief", reply(cmds.Brief))

	log.Println("Telegram bot started")
	go b.Start()
}
