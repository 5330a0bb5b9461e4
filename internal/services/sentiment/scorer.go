// Package sentiment scores news headlines via an external model service and
// aggregates them per symbol.
package sentiment

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	httpc "StockPulse/pkg/http"
)

// ModelClient scores headlines against a FinBERT-style model service.
type ModelClient struct {
	http    *httpc.Client
	baseURL string
	retries int
}

func NewModelClient(baseURL string, timeout time.Duration) *ModelClient {
	return &ModelClient{
		http:    httpc.NewClient(httpc.WithTimeout(timeout)),
		baseURL: baseURL,
		retries: 2,
	}
}

type scoreRequest struct {
	Texts []string `json:"texts"`
}

type scoreResponse struct {
	Results []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	} `json:"results"`
}

// Score classifies each headline. The model service returns one result per
// input, in order; a count mismatch is an upstream bug and surfaces as an
// error rather than misattributed scores.
func (c *ModelClient) Score(ctx context.Context, headlines []string) ([]models.SentimentScore, error) {
	if len(headlines) == 0 {
		return nil, nil
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("sentiment: model service url not configured")
	}

	var resp scoreResponse
	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		err = c.http.SendAndParse(ctx, &httpc.RequestOptions{
			Method:  httpc.MethodPost,
			URL:     c.baseURL + "/sentiment/score",
			Headers: map[string]string{"Content-Type": "application/json"},
			Body:    scoreRequest{Texts: headlines},
		}, &resp)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("sentiment model service: %w", err)
	}

	if len(resp.Results) != len(headlines) {
		return nil, fmt.Errorf("sentiment: got %d results for %d headlines", len(resp.Results), len(headlines))
	}

	out := make([]models.SentimentScore, len(resp.Results))
	for i, r := range resp.Results {
		out[i] = models.SentimentScore{Label: r.Label, Score: r.Score}
	}
	return out, nil
}
