package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockPulse/internal/domain/repository"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {
        "quote": [{
          "open":   [100.0, null, 102.0],
          "high":   [101.0, null, 103.0],
          "low":    [ 99.0, null, 101.0],
          "close":  [100.5, null, 102.5],
          "volume": [1000,  null, 2000]
        }]
      }
    }],
    "error": null
  }
}`

func TestFetchBarsSkipsNulls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("unexpected interval %q", r.URL.Query().Get("interval"))
		}
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("expected User-Agent header")
		}
		w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	from := time.Unix(1699900000, 0)
	to := time.Unix(1700300000, 0)

	bars, err := c.FetchBars(context.Background(), "AAPL", from, to, repository.TF1d)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars (null skipped), got %d", len(bars))
	}
	if bars[0].Close != 100.5 || bars[1].Close != 102.5 {
		t.Fatalf("unexpected closes: %+v", bars)
	}
	if !bars[0].Bucket.Before(bars[1].Bucket) {
		t.Fatal("bars not ascending")
	}
}

func TestFetchBarsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchBars(context.Background(), "NOPE", time.Now().Add(-24*time.Hour), time.Now(), repository.TF1d)
	if err == nil {
		t.Fatal("expected error for api error payload")
	}
}

func TestAliasSymbol(t *testing.T) {
	if got := aliasSymbol("spx"); got != "^GSPC" {
		t.Fatalf("expected ^GSPC, got %s", got)
	}
	if got := aliasSymbol("AAPL"); got != "AAPL" {
		t.Fatalf("expected passthrough, got %s", got)
	}
}
