package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockPulse/internal/domain/models"

	"github.com/stretchr/testify/suite"
)

type SentimentTestSuite struct {
	suite.Suite
}

func TestSentimentSuite(t *testing.T) {
	suite.Run(t, new(SentimentTestSuite))
}

func (s *SentimentTestSuite) TestModelClientScore() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/sentiment/score", r.URL.Path)
		s.Equal(http.MethodPost, r.Method)
		w.Write([]byte(`{"results":[{"label":"positive","score":0.8},{"label":"negative","score":-0.6}]}`))
	}))
	defer srv.Close()

	c := NewModelClient(srv.URL, 2*time.Second)
	scores, err := c.Score(context.Background(), []string{"good news", "bad news"})
	s.Require().NoError(err)
	s.Len(scores, 2)
	s.Equal("positive", scores[0].Label)
	s.InDelta(-0.6, scores[1].Score, 1e-9)
}

func (s *SentimentTestSuite) TestModelClientCountMismatch() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"label":"neutral","score":0}]}`))
	}))
	defer srv.Close()

	c := NewModelClient(srv.URL, time.Second)
	_, err := c.Score(context.Background(), []string{"a", "b"})
	s.Error(err)
}

func (s *SentimentTestSuite) TestModelClientRetriesThenFails() {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewModelClient(srv.URL, time.Second)
	_, err := c.Score(context.Background(), []string{"a"})
	s.Error(err)
	s.Equal(3, calls) // initial attempt + 2 retries
}

func (s *SentimentTestSuite) TestModelClientEmptyInput() {
	c := NewModelClient("http://unused", time.Second)
	scores, err := c.Score(context.Background(), nil)
	s.NoError(err)
	s.Nil(scores)
}

func (s *SentimentTestSuite) TestAggregateWeightedMean() {
	articles := []models.NewsArticle{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	scores := []models.SentimentScore{
		{Label: "positive", Score: 0.9},
		{Label: "positive", Score: 0.6},
		{Label: "negative", Score: -0.1},
	}

	agg, err := Aggregate("AAPL", articles, scores)
	s.Require().NoError(err)
	s.Equal("AAPL", agg.Symbol)
	s.Equal(2, agg.Counts["positive"])
	s.Equal(1, agg.Counts["negative"])
	s.Equal("positive", agg.Label)
	s.Greater(agg.Score, 0.5)
	s.Len(agg.Articles, 3)
}

func (s *SentimentTestSuite) TestAggregateMismatch() {
	_, err := Aggregate("AAPL", []models.NewsArticle{{Title: "a"}}, nil)
	s.Error(err)
}

func (s *SentimentTestSuite) TestLabelFor() {
	s.Equal("positive", labelFor(0.3))
	s.Equal("negative", labelFor(-0.3))
	s.Equal("neutral", labelFor(0.05))
}

func (s *SentimentTestSuite) TestYahooNewsScrape() {
	page := `<html><body>
		<div data-test-locator="StreamItem">
			<a href="/news/apple-1.html"><h3>Apple hits record</h3></a>
			<p>Shares climbed.</p>
		</div>
		<div data-test-locator="StreamItem">
			<a href="https://example.com/2"><h3>Apple dips</h3></a>
		</div>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	y := NewYahooNews(srv.URL, time.Second)
	articles, err := y.Fetch(context.Background(), "aapl", 10)
	s.Require().NoError(err)
	s.Len(articles, 2)
	s.Equal("Apple hits record", articles[0].Title)
	s.Equal(srv.URL+"/news/apple-1.html", articles[0].URL)
}

func (s *SentimentTestSuite) TestYahooNewsEmptyPage() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body></body></html>`))
	}))
	defer srv.Close()

	y := NewYahooNews(srv.URL, time.Second)
	_, err := y.Fetch(context.Background(), "AAPL", 10)
	s.Error(err)
}
