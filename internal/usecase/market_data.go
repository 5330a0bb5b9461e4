package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/service/cache"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// ErrUpstream marks failures of every configured upstream source. Handlers
// map it to 502 instead of 500.
var ErrUpstream = errors.New("all upstream sources failed")

// MarketDataUseCase serves quotes and historical bars through a layered
// cache backed by an ordered chain of upstream providers.
type MarketDataUseCase struct {
	providers  []drepo.BarProvider
	cache      cache.BytesCache
	store      drepo.BarStore // optional; nil disables persistence
	metrics    drepo.Metrics
	l          *logger.Logger
	quoteTTL   time.Duration
	historyTTL time.Duration
}

func NewMarketDataUseCase(
	providers []drepo.BarProvider,
	c cache.BytesCache,
	store drepo.BarStore,
	metrics drepo.Metrics,
	l *logger.Logger,
	quoteTTL, historyTTL time.Duration,
) *MarketDataUseCase {
	if quoteTTL <= 0 {
		quoteTTL = 30 * time.Second
	}
	if historyTTL <= 0 {
		historyTTL = 10 * time.Minute
	}
	return &MarketDataUseCase{
		providers:  providers,
		cache:      c,
		store:      store,
		metrics:    metrics,
		l:          l,
		quoteTTL:   quoteTTL,
		historyTTL: historyTTL,
	}
}

// GetHistory returns bars for the symbol over a Yahoo-style range token.
// limit > 0 keeps only the most recent limit bars.
func (uc *MarketDataUseCase) GetHistory(ctx context.Context, symbol, rng, interval string, limit int) ([]models.Bar, error) {
	symbol = util.NormalizeSymbol(symbol)
	tf := drepo.NormalizeTimeframe(interval)

	key := fmt.Sprintf("bars:%s:%s:%s", symbol, tf, rng)
	if b, ok, err := uc.cache.GetBytes(key); err == nil && ok {
		var bars []models.Bar
		if err := json.Unmarshal(b, &bars); err == nil {
			uc.metrics.RecordCache("history", "hit")
			return trimBars(bars, limit), nil
		}
	}
	uc.metrics.RecordCache("history", "miss")

	to := time.Now().UTC()
	from := to.Add(-util.RangeDuration(rng, 31*24*time.Hour))
	from, to = util.AlignFromTo(from, to, interval)

	bars, err := uc.fetchWithFailover(ctx, symbol, from, to, tf)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(bars); err == nil {
		if err := uc.cache.SetBytes(key, b, uc.historyTTL); err != nil {
			uc.l.Warn("history cache write failed", logger.String("key", key), logger.Error(err))
		}
	}

	uc.persistBars(bars, tf)

	return trimBars(bars, limit), nil
}

// GetQuote derives a snapshot quote from the two most recent daily bars.
func (uc *MarketDataUseCase) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = util.NormalizeSymbol(symbol)

	key := "quote:" + symbol
	if b, ok, err := uc.cache.GetBytes(key); err == nil && ok {
		var q models.Quote
		if err := json.Unmarshal(b, &q); err == nil {
			uc.metrics.RecordCache("quote", "hit")
			return &q, nil
		}
	}
	uc.metrics.RecordCache("quote", "miss")

	// A 10-day window survives weekends and market holidays.
	to := time.Now().UTC()
	from := to.Add(-10 * 24 * time.Hour)

	bars, err := uc.fetchWithFailover(ctx, symbol, from, to, drepo.TF1d)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no recent bars for %s", symbol)
	}

	last := bars[len(bars)-1]
	q := &models.Quote{
		Symbol:    symbol,
		Price:     last.Close,
		PrevClose: last.Open,
		Volume:    last.Volume,
		Timestamp: last.Bucket,
	}
	if len(bars) >= 2 {
		q.PrevClose = bars[len(bars)-2].Close
	}
	q.Change = q.Price - q.PrevClose
	if q.PrevClose != 0 {
		q.ChangePercent = q.Change / q.PrevClose * 100
	}

	if b, err := json.Marshal(q); err == nil {
		if err := uc.cache.SetBytes(key, b, uc.quoteTTL); err != nil {
			uc.l.Warn("quote cache write failed", logger.String("key", key), logger.Error(err))
		}
	}

	uc.metrics.RecordLastPrice(symbol, q.Price)
	return q, nil
}

// GetLatestBars returns the most recent n bars for model input, preferring
// the bar store and falling back to the provider chain.
func (uc *MarketDataUseCase) GetLatestBars(ctx context.Context, symbol string, n int, tf drepo.Timeframe) ([]models.Bar, error) {
	symbol = util.NormalizeSymbol(symbol)

	if uc.store != nil {
		bars, err := uc.store.GetLatestNBars(ctx, symbol, n, tf)
		if err == nil && len(bars) >= n {
			return bars, nil
		}
	}

	// Daily bars: fetch enough calendar days to cover n trading days.
	to := time.Now().UTC()
	lookback := time.Duration(n) * 36 * time.Hour
	if tf == drepo.TF1h {
		lookback = time.Duration(n) * 4 * time.Hour
	}
	bars, err := uc.fetchWithFailover(ctx, symbol, to.Add(-lookback), to, tf)
	if err != nil {
		return nil, err
	}
	uc.persistBars(bars, tf)
	return trimBars(bars, n), nil
}

// GetBarsSince returns bars covering [from, now] for training and backtests.
func (uc *MarketDataUseCase) GetBarsSince(ctx context.Context, symbol string, from time.Time, tf drepo.Timeframe) ([]models.Bar, error) {
	symbol = util.NormalizeSymbol(symbol)
	to := time.Now().UTC()

	bars, err := uc.fetchWithFailover(ctx, symbol, from, to, tf)
	if err != nil {
		return nil, err
	}
	uc.persistBars(bars, tf)
	return bars, nil
}

func (uc *MarketDataUseCase) fetchWithFailover(ctx context.Context, symbol string, from, to time.Time, tf drepo.Timeframe) ([]models.Bar, error) {
	var lastErr error
	for _, p := range uc.providers {
		start := time.Now()
		bars, err := p.FetchBars(ctx, symbol, from, to, tf)
		uc.metrics.RecordLatency("fetch_"+p.Name(), time.Since(start).Seconds())
		if err != nil {
			uc.metrics.RecordFetch(p.Name(), "error")
			uc.l.Warn("provider fetch failed",
				logger.String("provider", p.Name()),
				logger.String("symbol", symbol),
				logger.Error(err))
			lastErr = err
			continue
		}
		if len(bars) == 0 {
			uc.metrics.RecordFetch(p.Name(), "empty")
			lastErr = fmt.Errorf("%s returned no bars for %s", p.Name(), symbol)
			continue
		}
		uc.metrics.RecordFetch(p.Name(), "success")
		return bars, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no providers configured")
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, symbol, lastErr)
}

// persistBars writes fetched bars to the bar store in the background.
// Persistence is best effort and never blocks or fails a read.
func (uc *MarketDataUseCase) persistBars(bars []models.Bar, tf drepo.Timeframe) {
	if uc.store == nil || len(bars) == 0 {
		return
	}
	go func(bars []models.Bar) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.store.StoreBatch(ctx, bars, tf); err != nil {
			uc.metrics.RecordError("bar_persist")
			uc.l.Warn("bar persist failed",
				logger.String("symbol", bars[0].Symbol),
				logger.Int("bars", len(bars)),
				logger.Error(err))
		}
	}(bars)
}

func trimBars(bars []models.Bar, limit int) []models.Bar {
	if limit > 0 && len(bars) > limit {
		return bars[len(bars)-limit:]
	}
	return bars
}
