package domain

// Quote represents the latest quote for a tracked stock.
type Quote struct {
	Ticker          string  `json:"ticker"`
	Price           float64 `json:"price"`
	Change          float64 `json:"change"`
	ChangePct       float64 `json:"change_pct"`
	High            float64 `json:"high"`
	Low             float64 `json:"low"`
	Open            float64 `json:"open"`
	PreviousClose   float64 `json:"previous_close"`
	LastUpdatedUnix int64   `json:"last_updated_unix"`
}

// TrackedStocks lists the tickers served by the quote API.
var TrackedStocks = []string{"RELIANCE", "TCS", "HDFCBANK", "INFY"}
