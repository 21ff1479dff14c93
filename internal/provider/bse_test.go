package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newBSEServer(t *testing.T, scripLoads *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != bseReferer {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/BseIndiaAPI/api/ListofScripData/w":
			atomic.AddInt32(scripLoads, 1)
			w.Write([]byte(`[{"SCRIP_CD":"532540","scrip_id":"TCS","Scrip_Name":"Tata Consultancy Services Ltd"}]`))
		case "/BseIndiaAPI/api/DefaultData/w":
			if r.URL.Query().Get("scripcode") != "532540" {
				t.Fatalf("unexpected scrip code: %s", r.URL.RawQuery)
			}
			w.Write([]byte(`[
				{"Purpose":"Interim Dividend - Rs. - 11.0000","Ex_date":"17 Oct 2026"},
				{"subject":"Buy Back","exDate":"01 Sep 2026","attachmentUrl":"https://bse/att.pdf"}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestBSEClientFetchFilings(t *testing.T) {
	t.Parallel()

	var loads int32
	srv := newBSEServer(t, &loads)
	defer srv.Close()

	c, err := OpenBSE(srv.URL, time.Second, testTracer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	filings, err := c.FetchFilings(context.Background(), "tcs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filings) != 2 {
		t.Fatalf("expected 2 filings, got %d", len(filings))
	}
	if filings[0].Subject != "Interim Dividend - Rs. - 11.0000" || filings[0].Date != "17 Oct 2026" || filings[0].Exchange != "BSE" {
		t.Fatalf("unexpected first filing: %+v", filings[0])
	}
	if filings[1].Subject != "Buy Back" || filings[1].URL != "https://bse/att.pdf" {
		t.Fatalf("unexpected second filing: %+v", filings[1])
	}

	if _, err := c.FetchFilings(context.Background(), "TATA CONSULTANCY SERVICES LTD"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected scrip table to load once, loaded %d times", got)
	}
}

func TestBSEClientUnknownTicker(t *testing.T) {
	t.Parallel()

	var loads int32
	srv := newBSEServer(t, &loads)
	defer srv.Close()

	c, err := OpenBSE(srv.URL, time.Second, testTracer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filings, err := c.FetchFilings(context.Background(), "NOPE")
	if err != nil || len(filings) != 0 {
		t.Fatalf("expected no filings and no error, got %v %v", filings, err)
	}
}

func TestBSEClientScripListFailureRetries(t *testing.T) {
	t.Parallel()

	var calls int32
	c, err := OpenBSE("http://example", time.Second, testTracer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(http.StatusBadGateway, "bad gateway"), nil
	})}

	for i := 0; i < 2; i++ {
		if _, err := c.FetchFilings(context.Background(), "TCS"); err == nil {
			t.Fatal("expected error when the scrip list is unavailable")
		}
	}
	if calls != 2 {
		t.Fatalf("a failed scrip load should be retried, got %d calls", calls)
	}
}

func TestOpenBSERejectsBadURL(t *testing.T) {
	if _, err := OpenBSE("::not a url", time.Second, testTracer); err == nil {
		t.Fatal("expected error for invalid base url")
	}
}
