package domain

// Ticker identifies one tradable instrument. Any non-blank line is accepted.
type Ticker = string

type Source string

const (
	SourceStream  Source = "Stream"
	SourceNews    Source = "News"
	SourceFilings Source = "Filings"
)

// AllSources lists the sources in the order the aggregator emits them.
var AllSources = []Source{SourceStream, SourceNews, SourceFilings}

// Severity is the heatmap tier derived from an alert score.
type Severity string

const (
	SeverityHot     Severity = "Hot"
	SeverityWarning Severity = "Warning"
	SeverityCold    Severity = "Cold"
)

// Glyph returns the symbol the dashboard renders for the tier.
func (s Severity) Glyph() string {
	switch s {
	case SeverityHot:
		return "🔥"
	case SeverityWarning:
		return "⚠️"
	default:
		return "🧊"
	}
}

// AlertRecord is the canonical scored alert shown on the dashboard.
type AlertRecord struct {
	LinkedTicker Ticker         `json:"linked_ticker"`
	Timestamp    string         `json:"timestamp"`
	Source       Source         `json:"source"`
	Sentiment    int            `json:"sentiment"`
	Tags         []string       `json:"tags"`
	Score        int            `json:"score"`
	Heatmap      Severity       `json:"heatmap"`
	Message      string         `json:"message"`
	URL          string         `json:"url"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// StreamRecord is one entry of the pooled local alert stream, normalized at
// the adapter boundary. Raw holds the keys that were not mapped to a field.
type StreamRecord struct {
	LinkedTicker Ticker
	Tags         []string
	Sentiment    *int
	Message      string
	Timestamp    string
	URL          string
	Raw          map[string]any
}

// NewsItem is a normalized news lookup result. Empty strings mean absent.
type NewsItem struct {
	Headline  string
	Timestamp string
	URL       string
}

// Filing is a normalized corporate filing from one exchange.
type Filing struct {
	Exchange string
	Subject  string
	Date     string
	URL      string
}

// SampleWatchlist is the built-in watchlist used by the sample mode.
var SampleWatchlist = []Ticker{"RELIANCE", "TCS", "INFOSYS", "HDFCBANK", "ICICIBANK"}
