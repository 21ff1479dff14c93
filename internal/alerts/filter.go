package alerts

import "stock-alert-cockpit/internal/domain"

// Criteria are the dashboard filters applied to a ranked alert list.
type Criteria struct {
	MinScore int
	Sources  map[domain.Source]bool
	Tickers  map[domain.Ticker]bool
}

// Filter keeps alerts meeting every criterion, preserving order.
func Filter(alerts []domain.AlertRecord, c Criteria) []domain.AlertRecord {
	out := make([]domain.AlertRecord, 0, len(alerts))
	for _, a := range alerts {
		if a.Score < c.MinScore {
			continue
		}
		if !c.Sources[a.Source] || !c.Tickers[a.LinkedTicker] {
			continue
		}
		out = append(out, a)
	}
	return out
}

// DefaultCriteria selects everything: min score 0, every source present in
// alerts, and the whole watchlist.
func DefaultCriteria(alerts []domain.AlertRecord, watchlist []domain.Ticker) Criteria {
	c := Criteria{
		Sources: make(map[domain.Source]bool, len(domain.AllSources)),
		Tickers: make(map[domain.Ticker]bool, len(watchlist)),
	}
	for _, a := range alerts {
		c.Sources[a.Source] = true
	}
	for _, t := range watchlist {
		c.Tickers[t] = true
	}
	return c
}

// PresentSources lists the distinct sources of alerts in canonical order.
func PresentSources(alerts []domain.AlertRecord) []domain.Source {
	seen := make(map[domain.Source]bool, len(domain.AllSources))
	for _, a := range alerts {
		seen[a.Source] = true
	}
	out := make([]domain.Source, 0, len(seen))
	for _, s := range domain.AllSources {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}
