package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"StockPulse/internal/backtest"
	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/services/predict"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// BacktestUseCase runs strategy simulations over fetched history.
type BacktestUseCase struct {
	market   *MarketDataUseCase
	registry *predict.Registry
	metrics  drepo.Metrics
	l        *logger.Logger
}

func NewBacktestUseCase(market *MarketDataUseCase, registry *predict.Registry, metrics drepo.Metrics, l *logger.Logger) *BacktestUseCase {
	return &BacktestUseCase{market: market, registry: registry, metrics: metrics, l: l}
}

// Run fetches daily bars for the requested range and simulates the strategy.
func (uc *BacktestUseCase) Run(ctx context.Context, req *models.BacktestRequest) (*models.BacktestResult, error) {
	symbol := util.NormalizeSymbol(req.Symbol)

	strat, err := uc.buildStrategy(symbol, req.Strategy)
	if err != nil {
		return nil, err
	}

	bars, err := uc.market.GetHistory(ctx, symbol, req.Range, "1d", 0)
	if err != nil {
		return nil, err
	}

	cfg := backtest.Config{
		Symbol:         symbol,
		InitialCapital: decimal.NewFromFloat(req.InitialCapital),
		CommissionRate: decimal.NewFromFloat(req.CommissionRate),
		SlippageBps:    decimal.NewFromFloat(req.SlippageBps),
		StopLossPct:    req.StopLossPct,
		TakeProfitPct:  req.TakeProfitPct,
	}

	start := time.Now()
	result, err := backtest.Run(bars, cfg, strat)
	if err != nil {
		uc.metrics.RecordError("backtest")
		return nil, err
	}
	uc.metrics.RecordLatency("backtest", time.Since(start).Seconds())

	uc.l.Info("backtest complete",
		logger.String("symbol", symbol),
		logger.String("strategy", strat.Name()),
		logger.Int("bars", len(bars)),
		logger.Int("trades", len(result.Trades)),
		logger.Float64("total_return", result.TotalReturn))
	return result, nil
}

func (uc *BacktestUseCase) buildStrategy(symbol, name string) (backtest.Strategy, error) {
	switch name {
	case "rsi_cross":
		return backtest.NewRSICross(), nil
	case "classifier":
		model, err := uc.registry.Get(symbol)
		if err != nil {
			return nil, fmt.Errorf("classifier strategy for %s: %w", symbol, err)
		}
		return &backtest.ClassifierStrategy{Model: model}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}
