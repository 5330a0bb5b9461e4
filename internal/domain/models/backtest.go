package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BacktestTrade is one round trip (or a forced liquidation at the end).
type BacktestTrade struct {
	Symbol     string          `json:"symbol"`
	EntryTime  time.Time       `json:"entry_time"`
	ExitTime   time.Time       `json:"exit_time"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	ExitPrice  decimal.Decimal `json:"exit_price"`
	Quantity   decimal.Decimal `json:"quantity"`
	PnL        decimal.Decimal `json:"pnl"`
	Commission decimal.Decimal `json:"commission"`
	ExitReason string          `json:"exit_reason"` // "signal", "stop_loss", "take_profit", "end_of_data"
}

// EquityPoint is one sample of the equity curve.
type EquityPoint struct {
	Time   time.Time       `json:"time"`
	Equity decimal.Decimal `json:"equity"`
}

// BacktestResult holds the outcome of a simulation run.
type BacktestResult struct {
	ID               string          `json:"id"`
	Symbol           string          `json:"symbol"`
	Strategy         string          `json:"strategy"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          time.Time       `json:"end_time"`
	InitialCapital   decimal.Decimal `json:"initial_capital"`
	FinalEquity      decimal.Decimal `json:"final_equity"`
	TotalReturn      float64         `json:"total_return"`
	AnnualizedReturn float64         `json:"annualized_return"`
	MaxDrawdown      float64         `json:"max_drawdown"`
	WinRate          float64         `json:"win_rate"`
	ProfitFactor     *float64        `json:"profit_factor,omitempty"`
	SharpeRatio      float64         `json:"sharpe_ratio"`
	TradeCount       int             `json:"trade_count"`
	Trades           []BacktestTrade `json:"trades"`
	EquityCurve      []EquityPoint   `json:"equity_curve"`
}
