package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/domain/models"
	dservice "StockPulse/internal/domain/service"
	"StockPulse/internal/service/cache"
	"StockPulse/internal/services/predict"
)

type failingNewsSource struct{}

func (failingNewsSource) Name() string { return "failing" }

func (failingNewsSource) Fetch(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	return nil, fmt.Errorf("scrape blocked")
}

type noopScorer struct{}

func (noopScorer) Score(ctx context.Context, headlines []string) ([]models.SentimentScore, error) {
	return nil, fmt.Errorf("model service unconfigured")
}

type stubPredictor struct {
	pred *models.Prediction
}

func (s stubPredictor) Predict(ctx context.Context, symbol string, horizon int) (*models.Prediction, error) {
	return s.pred, nil
}

// Quote and indicators succeed while prediction (no trained model) and
// sentiment (dead source) fail; the response must carry partial results with
// per-component errors.
func TestSignalsPartialFailure(t *testing.T) {
	l := testLogger(t)
	market := newMarketUC(t, &fakeProvider{name: "p", bars: dailyBars(120, 100)})
	analysis := NewAnalysisUseCase(market)
	train := NewTrainUseCase(market, predict.NewRegistry(), nil, nil, nopMetrics{}, l, predict.DefaultTrainConfig())
	news := NewNewsUseCase(
		[]dservice.NewsSource{failingNewsSource{}},
		noopScorer{}, cache.NewTTLCache(), nopMetrics{}, l, time.Minute)

	uc := NewSignalsUseCase(market, analysis, train, news, l)
	res, err := uc.GetSignals(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", res.Symbol)
	assert.NotNil(t, res.Quote)
	assert.NotNil(t, res.Indicators)
	assert.Nil(t, res.Prediction)
	assert.Nil(t, res.Sentiment)
	assert.Contains(t, res.Errors, "prediction")
	assert.Contains(t, res.Errors, "sentiment")
}

// Any Predictor implementation can back the prediction component.
func TestSignalsUsesPredictor(t *testing.T) {
	l := testLogger(t)
	market := newMarketUC(t, &fakeProvider{name: "p", bars: dailyBars(120, 100)})
	analysis := NewAnalysisUseCase(market)
	news := NewNewsUseCase(
		[]dservice.NewsSource{failingNewsSource{}},
		noopScorer{}, cache.NewTTLCache(), nopMetrics{}, l, time.Minute)
	pred := &models.Prediction{Symbol: "AAPL", Class: "up", Confidence: 0.8}

	uc := NewSignalsUseCase(market, analysis, stubPredictor{pred: pred}, news, l)
	res, err := uc.GetSignals(context.Background(), "AAPL")
	require.NoError(t, err)

	require.NotNil(t, res.Prediction)
	assert.Equal(t, "up", res.Prediction.Class)
	assert.NotContains(t, res.Errors, "prediction")
}
