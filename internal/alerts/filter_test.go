package alerts

import (
	"reflect"
	"testing"

	"stock-alert-cockpit/internal/domain"
)

func sampleAlerts() []domain.AlertRecord {
	return []domain.AlertRecord{
		{LinkedTicker: "TCS", Source: domain.SourceStream, Score: 100, Message: "a"},
		{LinkedTicker: "TCS", Source: domain.SourceFilings, Score: 75, Message: "b"},
		{LinkedTicker: "INFY", Source: domain.SourceNews, Score: 70, Message: "c"},
		{LinkedTicker: "INFY", Source: domain.SourceStream, Score: 40, Message: "d"},
	}
}

func messages(alerts []domain.AlertRecord) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Message)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{
			name: "defaults keep everything",
			c:    DefaultCriteria(sampleAlerts(), []domain.Ticker{"TCS", "INFY"}),
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "min score inclusive",
			c:    Criteria{MinScore: 70, Sources: map[domain.Source]bool{domain.SourceStream: true, domain.SourceNews: true, domain.SourceFilings: true}, Tickers: map[domain.Ticker]bool{"TCS": true, "INFY": true}},
			want: []string{"a", "b", "c"},
		},
		{
			name: "source subset",
			c:    Criteria{Sources: map[domain.Source]bool{domain.SourceStream: true}, Tickers: map[domain.Ticker]bool{"TCS": true, "INFY": true}},
			want: []string{"a", "d"},
		},
		{
			name: "ticker subset",
			c:    Criteria{Sources: map[domain.Source]bool{domain.SourceStream: true, domain.SourceNews: true, domain.SourceFilings: true}, Tickers: map[domain.Ticker]bool{"INFY": true}},
			want: []string{"c", "d"},
		},
		{
			name: "empty sets keep nothing",
			c:    Criteria{},
			want: []string{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := messages(Filter(sampleAlerts(), tc.c))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	c := Criteria{
		MinScore: 50,
		Sources:  map[domain.Source]bool{domain.SourceStream: true, domain.SourceNews: true},
		Tickers:  map[domain.Ticker]bool{"TCS": true, "INFY": true},
	}
	once := Filter(sampleAlerts(), c)
	twice := Filter(once, c)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter is not idempotent: %v vs %v", messages(once), messages(twice))
	}
}

func TestPresentSources(t *testing.T) {
	got := PresentSources(sampleAlerts()[1:3])
	want := []domain.Source{domain.SourceNews, domain.SourceFilings}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
