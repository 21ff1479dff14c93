package alerts

import (
	"testing"

	"stock-alert-cockpit/internal/domain"
)

func TestRankDescendingAndStable(t *testing.T) {
	in := []domain.AlertRecord{
		{Message: "news-1", Score: 70},
		{Message: "stream-hot", Score: 100},
		{Message: "filing-1", Score: 75},
		{Message: "news-2", Score: 70},
		{Message: "filing-2", Score: 75},
		{Message: "cold", Score: 10},
	}

	out := Rank(in)
	want := []string{"stream-hot", "filing-1", "filing-2", "news-1", "news-2", "cold"}
	for i, msg := range want {
		if out[i].Message != msg {
			t.Fatalf("position %d expected %s, got %s", i, msg, out[i].Message)
		}
	}
	if in[0].Message != "news-1" {
		t.Fatal("Rank must not reorder its input")
	}
}

func TestRankEmpty(t *testing.T) {
	if out := Rank(nil); len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
}
