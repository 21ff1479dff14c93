package advisor

import (
	"fmt"
	"strings"
	"time"

	"stock-alert-cockpit/internal/domain"
)

const analystBrief = `You are an equities desk assistant for Indian markets (NSE/BSE). You receive a ranked list of alerts for the user's watchlist and write a short briefing.

Scoring:
- Stream alerts are scored sentiment x tag count; news scores 70, exchange filings 75.
- Heat tiers: Hot at 80 and above, Warning from 60, Cold below.

Rules:
- Lead with the hottest tickers and say why they are hot.
- Group by ticker. One or two lines per ticker.
- Quote only the alerts and prices given. Never invent numbers.
- Call out exchange filings (dividends, buybacks, board meetings) explicitly.
- If there are no alerts, say the watchlist is quiet.
- Plain text. You are read in a terminal or Telegram.`

func BuildSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString(analystBrief)
	sb.WriteString("\n\nBriefing time: ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	return sb.String()
}

// FormatAlertContext renders at most maxAlerts alerts and every quote.
func FormatAlertContext(alerts []domain.AlertRecord, quotes []*domain.Quote, maxAlerts int) string {
	var sb strings.Builder

	if len(quotes) > 0 {
		sb.WriteString("Quotes:\n")
		for _, q := range quotes {
			sb.WriteString(fmt.Sprintf("  %s: %.2f (%+.2f, %+.2f%%)\n", q.Ticker, q.Price, q.Change, q.ChangePct))
		}
	}

	if len(alerts) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		shown := alerts
		if maxAlerts > 0 && len(shown) > maxAlerts {
			shown = shown[:maxAlerts]
		}
		sb.WriteString(fmt.Sprintf("Alerts (top %d of %d):\n", len(shown), len(alerts)))
		for _, a := range shown {
			sb.WriteString(fmt.Sprintf("  [%s %d] %s %s: %s", a.Heatmap, a.Score, a.LinkedTicker, a.Source, a.Message))
			if a.Timestamp != "" {
				sb.WriteString(" @ " + a.Timestamp)
			}
			sb.WriteString("\n")
		}
	}

	if sb.Len() == 0 {
		return "No alerts for the watchlist."
	}
	return sb.String()
}
