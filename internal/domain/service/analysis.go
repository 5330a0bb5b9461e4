package service

import (
	"context"

	"StockPulse/internal/domain/models"
)

// SentimentScorer classifies headlines via the external model service.
type SentimentScorer interface {
	Score(ctx context.Context, headlines []string) ([]models.SentimentScore, error)
}

// NewsSource fetches recent articles for a symbol.
type NewsSource interface {
	Name() string
	Fetch(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error)
}

// Predictor produces class predictions for a symbol from its latest bars.
// horizon <= 0 uses the model's trained horizon.
type Predictor interface {
	Predict(ctx context.Context, symbol string, horizon int) (*models.Prediction, error)
}
