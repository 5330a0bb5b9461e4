package sentiment

import (
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
)

// Aggregate folds per-headline scores into a symbol-level summary. Scores are
// weighted by the model's confidence magnitude so strongly-classified
// headlines dominate.
func Aggregate(symbol string, articles []models.NewsArticle, scores []models.SentimentScore) (*models.AggregateSentiment, error) {
	if len(articles) != len(scores) {
		return nil, fmt.Errorf("sentiment aggregate: %d articles, %d scores", len(articles), len(scores))
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("sentiment aggregate: no scored articles for %s", symbol)
	}

	counts := make(map[string]int)
	scored := make([]models.ScoredArticle, len(articles))
	var weighted, weightSum float64
	for i, sc := range scores {
		counts[sc.Label]++
		scored[i] = models.ScoredArticle{Article: articles[i], Sentiment: sc}

		w := sc.Score
		if w < 0 {
			w = -w
		}
		if w == 0 {
			w = 1e-6
		}
		weighted += sc.Score * w
		weightSum += w
	}

	mean := weighted / weightSum
	return &models.AggregateSentiment{
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
		Score:     mean,
		Label:     labelFor(mean),
		Counts:    counts,
		Articles:  scored,
	}, nil
}

func labelFor(score float64) string {
	switch {
	case score > 0.15:
		return "positive"
	case score < -0.15:
		return "negative"
	default:
		return "neutral"
	}
}
