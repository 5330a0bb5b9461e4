// Package backtest simulates long-only trading over historical bars.
package backtest

import (
	"fmt"
	"time"

	"StockPulse/internal/domain/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config holds simulation parameters.
type Config struct {
	Symbol         string
	InitialCapital decimal.Decimal
	CommissionRate decimal.Decimal // fraction of notional per fill
	SlippageBps    decimal.Decimal // applied against the trader on every fill
	StopLossPct    float64         // 0 disables
	TakeProfitPct  float64         // 0 disables
}

// Action is a strategy decision.
type Action int

const (
	Hold Action = iota
	Buy
	Sell
)

// Signal is a strategy decision with the confidence driving position sizing.
type Signal struct {
	Action     Action
	Confidence float64
}

// Strategy sees the bars up to and including the current one, never future
// bars.
type Strategy interface {
	Name() string
	OnBar(bars []models.Bar) (Signal, error)
}

var bpsDivisor = decimal.NewFromInt(10000)

type position struct {
	qty        decimal.Decimal
	entryPrice decimal.Decimal
	entryTime  time.Time
	entryComm  decimal.Decimal
	stopPrice  decimal.Decimal
	takePrice  decimal.Decimal
}

// Run executes the strategy over ascending bars. Signals computed on bar t
// fill at bar t+1 open, slippage-adjusted. Stops and take-profits are checked
// intrabar against low/high with stop precedence.
func Run(bars []models.Bar, cfg Config, strat Strategy) (*models.BacktestResult, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("backtest: need at least 2 bars, have %d", len(bars))
	}
	if cfg.InitialCapital.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("backtest: initial capital must be positive")
	}
	for i := 1; i < len(bars); i++ {
		if bars[i].Bucket.Before(bars[i-1].Bucket) {
			return nil, fmt.Errorf("backtest: bars not ascending at index %d", i)
		}
	}

	cash := cfg.InitialCapital
	var pos *position
	var trades []models.BacktestTrade
	curve := make([]models.EquityPoint, 0, len(bars))
	var pendingSignal *Signal

	for t := 0; t < len(bars); t++ {
		bar := bars[t]

		// 1. Fill the signal computed on the previous bar at this bar's open.
		if pendingSignal != nil {
			sig := *pendingSignal
			pendingSignal = nil

			switch sig.Action {
			case Buy:
				if pos == nil {
					equity := cash // flat, so equity == cash
					frac := sizeFraction(sig.Confidence)
					if frac > 0 {
						fillPrice := slip(decimal.NewFromFloat(bar.Open), cfg.SlippageBps, true)
						budget := equity.Mul(decimal.NewFromFloat(frac))
						p, newCash := openLong(cash, budget, fillPrice, cfg, bar.Bucket)
						if p != nil {
							pos, cash = p, newCash
						}
					}
				}
			case Sell:
				if pos != nil {
					fillPrice := slip(decimal.NewFromFloat(bar.Open), cfg.SlippageBps, false)
					cash = closeLong(&trades, pos, fillPrice, bar.Bucket, cash, cfg, "signal")
					pos = nil
				}
			}
		}

		// 2. Intrabar stop / take-profit, stop first.
		if pos != nil {
			low := decimal.NewFromFloat(bar.Low)
			high := decimal.NewFromFloat(bar.High)
			if !pos.stopPrice.IsZero() && low.LessThanOrEqual(pos.stopPrice) {
				fillPrice := slip(pos.stopPrice, cfg.SlippageBps, false)
				cash = closeLong(&trades, pos, fillPrice, bar.Bucket, cash, cfg, "stop_loss")
				pos = nil
			} else if !pos.takePrice.IsZero() && high.GreaterThanOrEqual(pos.takePrice) {
				fillPrice := slip(pos.takePrice, cfg.SlippageBps, false)
				cash = closeLong(&trades, pos, fillPrice, bar.Bucket, cash, cfg, "take_profit")
				pos = nil
			}
		}

		// 3. Mark equity at the close.
		equity := cash
		if pos != nil {
			equity = equity.Add(pos.qty.Mul(decimal.NewFromFloat(bar.Close)))
		}
		curve = append(curve, models.EquityPoint{Time: bar.Bucket, Equity: equity})

		// 4. Ask the strategy, to execute next bar.
		if t < len(bars)-1 {
			sig, err := strat.OnBar(bars[:t+1])
			if err != nil {
				return nil, fmt.Errorf("backtest: strategy %s at bar %d: %w", strat.Name(), t, err)
			}
			if sig.Action != Hold {
				pendingSignal = &sig
			}
		}
	}

	// Liquidate any open position at the final close.
	last := bars[len(bars)-1]
	if pos != nil {
		fillPrice := slip(decimal.NewFromFloat(last.Close), cfg.SlippageBps, false)
		cash = closeLong(&trades, pos, fillPrice, last.Bucket, cash, cfg, "end_of_data")
		pos = nil
		curve[len(curve)-1].Equity = cash
	}

	result := &models.BacktestResult{
		ID:             uuid.NewString(),
		Symbol:         cfg.Symbol,
		Strategy:       strat.Name(),
		StartTime:      bars[0].Bucket,
		EndTime:        last.Bucket,
		InitialCapital: cfg.InitialCapital,
		FinalEquity:    cash,
		TradeCount:     len(trades),
		Trades:         trades,
		EquityCurve:    curve,
	}
	computeStats(result)
	return result, nil
}

// sizeFraction maps signal confidence to the equity fraction committed.
func sizeFraction(confidence float64) float64 {
	switch {
	case confidence > 0.75:
		return 0.25
	case confidence > 0.6:
		return 0.15
	case confidence > 0.5:
		return 0.10
	default:
		return 0
	}
}

// slip moves the price against the trader: up on buys, down on sells.
func slip(price, bps decimal.Decimal, isBuy bool) decimal.Decimal {
	adj := price.Mul(bps).Div(bpsDivisor)
	if isBuy {
		return price.Add(adj)
	}
	return price.Sub(adj)
}

func openLong(cash, budget, fillPrice decimal.Decimal, cfg Config, when time.Time) (*position, decimal.Decimal) {
	if budget.GreaterThan(cash) {
		budget = cash
	}
	// Solve qty so that notional + commission <= budget.
	denom := fillPrice.Mul(decimal.NewFromInt(1).Add(cfg.CommissionRate))
	if denom.LessThanOrEqual(decimal.Zero) {
		return nil, cash
	}
	qty := budget.Div(denom)
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, cash
	}

	notional := qty.Mul(fillPrice)
	comm := notional.Mul(cfg.CommissionRate)
	newCash := cash.Sub(notional).Sub(comm)
	if newCash.IsNegative() {
		return nil, cash
	}

	p := &position{
		qty:        qty,
		entryPrice: fillPrice,
		entryTime:  when,
		entryComm:  comm,
	}
	if cfg.StopLossPct > 0 {
		p.stopPrice = fillPrice.Mul(decimal.NewFromFloat(1 - cfg.StopLossPct))
	}
	if cfg.TakeProfitPct > 0 {
		p.takePrice = fillPrice.Mul(decimal.NewFromFloat(1 + cfg.TakeProfitPct))
	}
	return p, newCash
}

func closeLong(trades *[]models.BacktestTrade, pos *position, fillPrice decimal.Decimal, when time.Time, cash decimal.Decimal, cfg Config, reason string) decimal.Decimal {
	notional := pos.qty.Mul(fillPrice)
	comm := notional.Mul(cfg.CommissionRate)
	totalComm := pos.entryComm.Add(comm)
	pnl := notional.Sub(pos.qty.Mul(pos.entryPrice)).Sub(totalComm)

	*trades = append(*trades, models.BacktestTrade{
		Symbol:     cfg.Symbol,
		EntryTime:  pos.entryTime,
		ExitTime:   when,
		EntryPrice: pos.entryPrice,
		ExitPrice:  fillPrice,
		Quantity:   pos.qty,
		PnL:        pnl,
		Commission: totalComm,
		ExitReason: reason,
	})
	return cash.Add(notional).Sub(comm)
}
