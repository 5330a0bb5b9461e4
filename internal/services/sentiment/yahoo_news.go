package sentiment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/util"

	"github.com/PuerkitoBio/goquery"
)

// YahooNews scrapes recent headlines from the Yahoo Finance quote news page.
// It is a best-effort secondary source next to the Alpha Vantage feed.
type YahooNews struct {
	client  *http.Client
	baseURL string
}

func NewYahooNews(baseURL string, timeout time.Duration) *YahooNews {
	if baseURL == "" {
		baseURL = "https://finance.yahoo.com"
	}
	return &YahooNews{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (y *YahooNews) Name() string { return "yahoo_news" }

// Fetch scrapes up to limit headlines for the symbol.
func (y *YahooNews) Fetch(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	u := fmt.Sprintf("%s/quote/%s/news", y.baseURL, util.NormalizeSymbol(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo news request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo news fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo news: status %d for %s", resp.StatusCode, symbol)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo news parse: %w", err)
	}

	now := time.Now().UTC()
	var articles []models.NewsArticle
	doc.Find("div[data-test-locator='StreamItem'], li.stream-item").Each(func(i int, s *goquery.Selection) {
		if len(articles) >= limit {
			return
		}
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("a").First().Text())
		}
		if title == "" {
			return
		}

		href, ok := s.Find("a").First().Attr("href")
		if !ok {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = y.baseURL + href
		}

		articles = append(articles, models.NewsArticle{
			Title:       title,
			URL:         href,
			Source:      "Yahoo Finance",
			Summary:     strings.TrimSpace(s.Find("p").First().Text()),
			PublishedAt: now,
		})
	})

	if len(articles) == 0 {
		return nil, fmt.Errorf("yahoo news: no headlines found for %s", symbol)
	}
	return articles, nil
}
