package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-alert-cockpit/internal/domain"
)

func TestGetStocksSkipsFailures(t *testing.T) {
	quotes := &stubQuotes{quotes: map[string]*domain.Quote{
		"RELIANCE": {Ticker: "RELIANCE", Price: 2900},
		"INFY":     {Ticker: "INFY", Price: 1500},
	}}
	r := newTestRouter(quotes, &stubAlerts{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stocks", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []domain.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 || got[0].Ticker != "RELIANCE" || got[1].Ticker != "INFY" {
		t.Fatalf("unexpected quotes: %+v", got)
	}
}

func TestGetStocksEmptyIsArray(t *testing.T) {
	r := newTestRouter(&stubQuotes{}, &stubAlerts{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stocks", nil)
	r.ServeHTTP(w, req)

	if w.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}

func TestGetStock(t *testing.T) {
	quotes := &stubQuotes{quotes: map[string]*domain.Quote{"TCS": {Ticker: "TCS", Price: 4100}}}
	r := newTestRouter(quotes, &stubAlerts{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stocks/tcs", nil)
	r.ServeHTTP(w, req)

	var got domain.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if w.Code != http.StatusOK || got.Price != 4100 {
		t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
	}
}

func TestGetStockFailureIsNull(t *testing.T) {
	r := newTestRouter(&stubQuotes{}, &stubAlerts{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stocks/NOPE", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "null" {
		t.Fatalf("expected 200 null, got %d %s", w.Code, w.Body.String())
	}
}
