package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	httpc "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

const timePublishedLayout = "20060102T150405"

// Client talks to the Alpha Vantage query API. It serves as the OHLCV
// fallback provider (TIME_SERIES_DAILY) and as a news source
// (NEWS_SENTIMENT).
type Client struct {
	http    *httpc.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}
	return &Client{
		http:    httpc.NewClient(httpc.WithTimeout(timeout)),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (c *Client) Name() string { return "alphavantage" }

type dailyResponse struct {
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
}

// FetchBars fetches daily OHLCV via TIME_SERIES_DAILY. Alpha Vantage has no
// hourly series on the free tier, so non-daily timeframes are rejected and
// failover stops at this provider's error.
func (c *Client) FetchBars(ctx context.Context, symbol string, from, to time.Time, tf repository.Timeframe) ([]models.Bar, error) {
	if tf != repository.TF1d {
		return nil, fmt.Errorf("alphavantage: unsupported timeframe %s", tf)
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("alphavantage: api key not configured")
	}

	outputSize := "compact"
	if to.Sub(from) > 100*24*time.Hour {
		outputSize = "full"
	}

	var resp dailyResponse
	err := c.http.SendAndParse(ctx, &httpc.RequestOptions{
		Method: httpc.MethodGet,
		URL:    c.baseURL + "/query",
		QueryParams: map[string][]string{
			"function":   {"TIME_SERIES_DAILY"},
			"symbol":     {util.NormalizeSymbol(symbol)},
			"outputsize": {outputSize},
			"apikey":     {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch %s: %w", symbol, err)
	}

	if resp.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error for %s: %s", symbol, resp.ErrorMessage)
	}
	if resp.Note != "" {
		return nil, fmt.Errorf("alphavantage rate limited: %s", resp.Note)
	}
	if len(resp.TimeSeries) == 0 {
		return nil, fmt.Errorf("alphavantage: no data for %s", symbol)
	}

	norm := util.NormalizeSymbol(symbol)
	bars := make([]models.Bar, 0, len(resp.TimeSeries))
	for day, fields := range resp.TimeSeries {
		bucket, perr := time.Parse("2006-01-02", day)
		if perr != nil {
			continue
		}
		if bucket.Before(from) || bucket.After(to) {
			continue
		}
		bar, ok := parseDailyFields(norm, bucket, fields)
		if !ok {
			continue
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("alphavantage: no bars in window for %s", symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Bucket.Before(bars[j].Bucket) })
	return bars, nil
}

func parseDailyFields(symbol string, bucket time.Time, fields map[string]string) (models.Bar, bool) {
	o, err1 := strconv.ParseFloat(fields["1. open"], 64)
	h, err2 := strconv.ParseFloat(fields["2. high"], 64)
	l, err3 := strconv.ParseFloat(fields["3. low"], 64)
	cl, err4 := strconv.ParseFloat(fields["4. close"], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return models.Bar{}, false
	}
	v, _ := strconv.ParseFloat(fields["5. volume"], 64)
	return models.Bar{
		Bucket: bucket,
		Symbol: symbol,
		Open:   o,
		High:   h,
		Low:    l,
		Close:  cl,
		Volume: v,
	}, true
}

type newsResponse struct {
	ErrorMessage string        `json:"Error Message"`
	Information  string        `json:"Information"`
	Feed         []feedArticle `json:"feed"`
}

type feedArticle struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	TimePublished string `json:"time_published"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
}

// Fetch returns recent articles for a symbol via NEWS_SENTIMENT.
func (c *Client) Fetch(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("alphavantage: api key not configured")
	}

	var resp newsResponse
	err := c.http.SendAndParse(ctx, &httpc.RequestOptions{
		Method: httpc.MethodGet,
		URL:    c.baseURL + "/query",
		QueryParams: map[string][]string{
			"function": {"NEWS_SENTIMENT"},
			"tickers":  {util.NormalizeSymbol(symbol)},
			"limit":    {strconv.Itoa(limit)},
			"apikey":   {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("alphavantage news %s: %w", symbol, err)
	}
	if resp.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error: %s", resp.ErrorMessage)
	}

	articles := make([]models.NewsArticle, 0, len(resp.Feed))
	for _, a := range resp.Feed {
		if a.Title == "" {
			continue
		}
		published, _ := time.Parse(timePublishedLayout, a.TimePublished)
		articles = append(articles, models.NewsArticle{
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source,
			Summary:     a.Summary,
			PublishedAt: published,
		})
		if len(articles) >= limit {
			break
		}
	}
	return articles, nil
}
