package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockPulse/internal/domain/repository"
)

func TestFetchBarsDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("function") != "TIME_SERIES_DAILY" {
			t.Errorf("unexpected function %q", r.URL.Query().Get("function"))
		}
		w.Write([]byte(`{
			"Time Series (Daily)": {
				"2024-01-03": {"1. open":"102","2. high":"104","3. low":"101","4. close":"103","5. volume":"3000"},
				"2024-01-02": {"1. open":"100","2. high":"102","3. low":"99","4. close":"101","5. volume":"2000"}
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	bars, err := c.FetchBars(context.Background(), "aapl", from, to, repository.TF1d)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !bars[0].Bucket.Before(bars[1].Bucket) {
		t.Fatal("bars not ascending")
	}
	if bars[0].Symbol != "AAPL" {
		t.Fatalf("expected normalized symbol, got %s", bars[0].Symbol)
	}
}

func TestFetchBarsRejectsHourly(t *testing.T) {
	c := NewClient("http://unused", "k", time.Second)
	if _, err := c.FetchBars(context.Background(), "AAPL", time.Now(), time.Now(), repository.TF1h); err == nil {
		t.Fatal("expected error for hourly timeframe")
	}
}

func TestFetchBarsRateLimitNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	if _, err := c.FetchBars(context.Background(), "AAPL", time.Now().Add(-48*time.Hour), time.Now(), repository.TF1d); err == nil {
		t.Fatal("expected rate limit error")
	}
}

func TestFetchNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"feed": [
				{"title":"Apple ships","url":"https://x/1","time_published":"20240102T133000","summary":"s","source":"Wire"},
				{"title":"Apple dips","url":"https://x/2","time_published":"20240102T140000","summary":"s2","source":"Wire"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	articles, err := c.Fetch(context.Background(), "AAPL", 1)
	if err != nil {
		t.Fatalf("fetch news: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected limit applied, got %d articles", len(articles))
	}
	if articles[0].PublishedAt.IsZero() {
		t.Fatal("expected parsed publish time")
	}
}
