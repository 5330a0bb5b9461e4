package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	dservice "StockPulse/internal/domain/service"
	"StockPulse/internal/service/cache"
	"StockPulse/internal/services/sentiment"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// NewsUseCase fetches headlines from an ordered source chain and scores them
// through the external sentiment model.
type NewsUseCase struct {
	sources []dservice.NewsSource
	scorer  dservice.SentimentScorer
	cache   cache.BytesCache
	metrics drepo.Metrics
	l       *logger.Logger
	newsTTL time.Duration
}

func NewNewsUseCase(
	sources []dservice.NewsSource,
	scorer dservice.SentimentScorer,
	c cache.BytesCache,
	metrics drepo.Metrics,
	l *logger.Logger,
	newsTTL time.Duration,
) *NewsUseCase {
	if newsTTL <= 0 {
		newsTTL = 15 * time.Minute
	}
	return &NewsUseCase{
		sources: sources,
		scorer:  scorer,
		cache:   c,
		metrics: metrics,
		l:       l,
		newsTTL: newsTTL,
	}
}

// GetNews returns recent headlines for a symbol from the first source that
// succeeds.
func (uc *NewsUseCase) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	symbol = util.NormalizeSymbol(symbol)

	key := fmt.Sprintf("news:%s:%d", symbol, limit)
	if b, ok, err := uc.cache.GetBytes(key); err == nil && ok {
		var articles []models.NewsArticle
		if err := json.Unmarshal(b, &articles); err == nil {
			uc.metrics.RecordCache("news", "hit")
			return articles, nil
		}
	}
	uc.metrics.RecordCache("news", "miss")

	var lastErr error
	for _, src := range uc.sources {
		articles, err := src.Fetch(ctx, symbol, limit)
		if err != nil {
			uc.metrics.RecordFetch(src.Name(), "error")
			uc.l.Warn("news source failed",
				logger.String("source", src.Name()),
				logger.String("symbol", symbol),
				logger.Error(err))
			lastErr = err
			continue
		}
		if len(articles) == 0 {
			uc.metrics.RecordFetch(src.Name(), "empty")
			lastErr = fmt.Errorf("%s returned no articles for %s", src.Name(), symbol)
			continue
		}
		uc.metrics.RecordFetch(src.Name(), "success")

		if b, err := json.Marshal(articles); err == nil {
			_ = uc.cache.SetBytes(key, b, uc.newsTTL)
		}
		return articles, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no news sources configured")
	}
	return nil, fmt.Errorf("%w: news for %s: %v", ErrUpstream, symbol, lastErr)
}

// GetSentiment scores recent headlines and aggregates them to a symbol-level
// sentiment.
func (uc *NewsUseCase) GetSentiment(ctx context.Context, symbol string, limit int) (*models.AggregateSentiment, error) {
	symbol = util.NormalizeSymbol(symbol)

	key := fmt.Sprintf("sentiment:%s:%d", symbol, limit)
	if b, ok, err := uc.cache.GetBytes(key); err == nil && ok {
		var agg models.AggregateSentiment
		if err := json.Unmarshal(b, &agg); err == nil {
			uc.metrics.RecordCache("sentiment", "hit")
			return &agg, nil
		}
	}
	uc.metrics.RecordCache("sentiment", "miss")

	articles, err := uc.GetNews(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}

	headlines := make([]string, len(articles))
	for i, a := range articles {
		headlines[i] = a.Title
	}

	start := time.Now()
	scores, err := uc.scorer.Score(ctx, headlines)
	if err != nil {
		uc.metrics.RecordError("sentiment_score")
		return nil, fmt.Errorf("score headlines: %w", err)
	}
	uc.metrics.RecordLatency("sentiment_score", time.Since(start).Seconds())

	agg, err := sentiment.Aggregate(symbol, articles, scores)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(agg); err == nil {
		_ = uc.cache.SetBytes(key, b, uc.newsTTL)
	}
	return agg, nil
}
