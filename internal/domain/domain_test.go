package domain

import (
	"sync"
	"testing"
)

func TestSeverityGlyph(t *testing.T) {
	tests := map[Severity]string{
		SeverityHot:     "🔥",
		SeverityWarning: "⚠️",
		SeverityCold:    "🧊",
		Severity(""):    "🧊",
	}
	for sev, want := range tests {
		if got := sev.Glyph(); got != want {
			t.Fatalf("%q expected %s, got %s", sev, want, got)
		}
	}
}

func TestNoticeLogCollectsConcurrently(t *testing.T) {
	var log NoticeLog
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Warn(&log, "boom")
		}()
	}
	wg.Wait()

	if got := len(log.Notices()); got != 20 {
		t.Fatalf("expected 20 notices, got %d", got)
	}
}

func TestNilNotifierIsIgnored(t *testing.T) {
	Warn(nil, "dropped")
	Info(nil, "dropped")
}

func TestNotifierFunc(t *testing.T) {
	var got Notice
	Info(NotifierFunc(func(n Notice) { got = n }), "hello")
	if got.Level != NoticeInfo || got.Message != "hello" {
		t.Fatalf("unexpected notice: %+v", got)
	}
}
