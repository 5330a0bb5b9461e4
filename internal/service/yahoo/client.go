package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	httpc "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

// symbolAliases maps common index shorthands to Yahoo tickers.
var symbolAliases = map[string]string{
	"SPX":    "^GSPC",
	"SPX500": "^GSPC",
	"SP500":  "^GSPC",
	"NDX":    "^NDX",
	"DJI":    "^DJI",
	"VIX":    "^VIX",
}

// Client fetches bars from the Yahoo Finance v8 chart API.
type Client struct {
	http    *httpc.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &Client{
		http:    httpc.NewClient(httpc.WithTimeout(timeout)),
		baseURL: baseURL,
	}
}

func (c *Client) Name() string { return "yahoo" }

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchBars fetches OHLCV bars covering [from, to]. Null entries in the Yahoo
// arrays (holidays, halts) are skipped, not zero-filled.
func (c *Client) FetchBars(ctx context.Context, symbol string, from, to time.Time, tf repository.Timeframe) ([]models.Bar, error) {
	rng := rangeForWindow(to.Sub(from))
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(aliasSymbol(symbol)))

	var chart chartResponse
	err := c.http.SendAndParse(ctx, &httpc.RequestOptions{
		Method: httpc.MethodGet,
		URL:    u,
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"interval": {string(tf)},
			"range":    {rng},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote arrays for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	norm := util.NormalizeSymbol(symbol)
	bars := make([]models.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		bucket := time.Unix(ts, 0).UTC()
		if bucket.Before(from) || bucket.After(to) {
			continue
		}
		var vol float64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		bars = append(bars, models.Bar{
			Bucket: bucket,
			Symbol: norm,
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: vol,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Bucket.Before(bars[j].Bucket) })
	return bars, nil
}

func aliasSymbol(symbol string) string {
	if mapped, ok := symbolAliases[util.NormalizeSymbol(symbol)]; ok {
		return mapped
	}
	return symbol
}

// rangeForWindow picks the smallest Yahoo range string covering d.
func rangeForWindow(d time.Duration) string {
	day := 24 * time.Hour
	switch {
	case d <= day:
		return "1d"
	case d <= 5*day:
		return "5d"
	case d <= 31*day:
		return "1mo"
	case d <= 93*day:
		return "3mo"
	case d <= 186*day:
		return "6mo"
	case d <= 366*day:
		return "1y"
	case d <= 2*366*day:
		return "2y"
	case d <= 5*366*day:
		return "5y"
	default:
		return "max"
	}
}
