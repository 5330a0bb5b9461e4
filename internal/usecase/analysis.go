package usecase

import (
	"context"
	"fmt"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/indicators"
	"StockPulse/pkg/util"
)

// AnalysisUseCase computes the indicator snapshot for a symbol from its
// recent history.
type AnalysisUseCase struct {
	market *MarketDataUseCase
}

func NewAnalysisUseCase(market *MarketDataUseCase) *AnalysisUseCase {
	return &AnalysisUseCase{market: market}
}

// GetIndicators fetches history for the range/interval and computes the
// indicator set at the latest bar. Indicators still inside their warmup
// window surface ErrInsufficientData instead of a fabricated value.
func (uc *AnalysisUseCase) GetIndicators(ctx context.Context, symbol, rng, interval string) (*models.IndicatorSet, error) {
	symbol = util.NormalizeSymbol(symbol)

	bars, err := uc.market.GetHistory(ctx, symbol, rng, interval, 0)
	if err != nil {
		return nil, err
	}
	return ComputeIndicators(symbol, bars)
}

// ComputeIndicators builds the full indicator snapshot from bars sorted
// ascending by time.
func ComputeIndicators(symbol string, bars []models.Bar) (*models.IndicatorSet, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars for %s: %w", symbol, indicators.ErrInsufficientData)
	}

	closes := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	rsi, err := indicators.RSI(closes, 14)
	if err != nil {
		return nil, err
	}
	macd, err := indicators.MACD(closes, 12, 26, 9)
	if err != nil {
		return nil, err
	}
	boll, err := indicators.Bollinger(closes, 20, 2)
	if err != nil {
		return nil, err
	}
	atr, err := indicators.ATR(highs, lows, closes, 14)
	if err != nil {
		return nil, err
	}
	sma20, err := indicators.SMA(closes, 20)
	if err != nil {
		return nil, err
	}
	sma50, err := indicators.SMA(closes, 50)
	if err != nil {
		return nil, err
	}
	rets, err := indicators.LogReturns(closes)
	if err != nil {
		return nil, err
	}
	vol, err := indicators.RealizedVol(rets, 252)
	if err != nil {
		return nil, err
	}

	last := len(bars) - 1
	set := &models.IndicatorSet{
		Symbol:      symbol,
		Timestamp:   bars[last].Bucket,
		Close:       bars[last].Close,
		RealizedVol: vol,
		Bars:        len(bars),
	}

	if set.RSI, err = indicators.Latest(rsi); err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	if set.MACD, err = indicators.Latest(macd.Line); err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	if set.MACDSignal, err = indicators.Latest(macd.Signal); err != nil {
		return nil, fmt.Errorf("macd signal: %w", err)
	}
	if set.MACDHistogram, err = indicators.Latest(macd.Histogram); err != nil {
		return nil, fmt.Errorf("macd histogram: %w", err)
	}
	if set.BollingerMid, err = indicators.Latest(boll.Middle); err != nil {
		return nil, fmt.Errorf("bollinger: %w", err)
	}
	if set.BollingerUp, err = indicators.Latest(boll.Upper); err != nil {
		return nil, fmt.Errorf("bollinger upper: %w", err)
	}
	if set.BollingerLow, err = indicators.Latest(boll.Lower); err != nil {
		return nil, fmt.Errorf("bollinger lower: %w", err)
	}
	set.Bandwidth = boll.Bandwidth(last)
	set.PercentB = boll.PercentB(last, bars[last].Close)
	if set.ATR, err = indicators.Latest(atr); err != nil {
		return nil, fmt.Errorf("atr: %w", err)
	}
	if set.SMA20, err = indicators.Latest(sma20); err != nil {
		return nil, fmt.Errorf("sma20: %w", err)
	}
	if set.SMA50, err = indicators.Latest(sma50); err != nil {
		return nil, fmt.Errorf("sma50: %w", err)
	}

	return set, nil
}
