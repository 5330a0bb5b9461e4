package backtest

import (
	"math"

	"StockPulse/internal/domain/models"
)

const tradingDaysPerYear = 252.0

// computeStats fills the derived metrics on a finished result.
func computeStats(r *models.BacktestResult) {
	initial, _ := r.InitialCapital.Float64()
	final, _ := r.FinalEquity.Float64()
	if initial > 0 {
		r.TotalReturn = final/initial - 1
	}

	days := r.EndTime.Sub(r.StartTime).Hours() / 24
	if days >= 1 && initial > 0 && final > 0 {
		r.AnnualizedReturn = math.Pow(final/initial, 365/days) - 1
	}

	r.MaxDrawdown = maxDrawdown(r.EquityCurve)
	r.SharpeRatio = sharpe(r.EquityCurve)

	var wins int
	var grossProfit, grossLoss float64
	for _, t := range r.Trades {
		pnl, _ := t.PnL.Float64()
		if pnl > 0 {
			wins++
			grossProfit += pnl
		} else {
			grossLoss += -pnl
		}
	}
	if len(r.Trades) > 0 {
		r.WinRate = float64(wins) / float64(len(r.Trades))
	}
	// Undefined without a losing trade; left nil so the result stays
	// JSON-encodable instead of carrying +Inf.
	if grossLoss > 0 {
		pf := grossProfit / grossLoss
		r.ProfitFactor = &pf
	}
}

func maxDrawdown(curve []models.EquityPoint) float64 {
	var peak, maxDD float64
	for _, p := range curve {
		eq, _ := p.Equity.Float64()
		if eq > peak {
			peak = eq
		}
		if peak > 0 {
			dd := (peak - eq) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// sharpe is the annualized mean/stddev of per-bar equity returns, assuming a
// zero risk-free rate.
func sharpe(curve []models.EquityPoint) float64 {
	if len(curve) < 3 {
		return 0
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev, _ := curve[i-1].Equity.Float64()
		cur, _ := curve[i].Equity.Float64()
		if prev <= 0 {
			return 0
		}
		returns = append(returns, cur/prev-1)
	}

	var mean float64
	for _, v := range returns {
		mean += v
	}
	mean /= float64(len(returns))

	var ss float64
	for _, v := range returns {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(len(returns)))
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}
