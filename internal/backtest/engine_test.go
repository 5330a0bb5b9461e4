package backtest

import (
	"encoding/json"
	"testing"
	"time"

	"StockPulse/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

// scripted emits preset signals keyed by bar index.
type scripted struct {
	signals map[int]Signal
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) OnBar(bars []models.Bar) (Signal, error) {
	if sig, ok := s.signals[len(bars)-1]; ok {
		return sig, nil
	}
	return Signal{Action: Hold}, nil
}

func mkBars(ohlc [][4]float64) []models.Bar {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(ohlc))
	for i, v := range ohlc {
		bars[i] = models.Bar{
			Bucket: t0.AddDate(0, 0, i),
			Symbol: "TEST",
			Open:   v[0],
			High:   v[1],
			Low:    v[2],
			Close:  v[3],
			Volume: 1000,
		}
	}
	return bars
}

func baseConfig() Config {
	return Config{
		Symbol:         "TEST",
		InitialCapital: decimal.NewFromInt(10000),
		CommissionRate: decimal.Zero,
		SlippageBps:    decimal.Zero,
	}
}

func (s *EngineTestSuite) TestBuyFillsAtNextOpen() {
	bars := mkBars([][4]float64{
		{100, 101, 99, 100},
		{100, 112, 99, 110}, // fill here at open 100
		{110, 112, 108, 110},
		{110, 112, 108, 110}, // sell signal on bar 2 fills here at open 110
		{110, 112, 108, 110},
	})
	strat := &scripted{signals: map[int]Signal{
		0: {Action: Buy, Confidence: 0.8}, // 25% bucket
		2: {Action: Sell, Confidence: 1},
	}}

	res, err := Run(bars, baseConfig(), strat)
	s.Require().NoError(err)
	s.Require().Len(res.Trades, 1)

	tr := res.Trades[0]
	s.True(tr.EntryPrice.Equal(decimal.NewFromInt(100)), "entry %s", tr.EntryPrice)
	s.True(tr.ExitPrice.Equal(decimal.NewFromInt(110)), "exit %s", tr.ExitPrice)
	s.Equal("signal", tr.ExitReason)

	// 25% of 10000 at 100 = 25 shares; pnl = 25 * 10 = 250.
	s.True(tr.Quantity.Equal(decimal.NewFromInt(25)), "qty %s", tr.Quantity)
	s.True(res.FinalEquity.Equal(decimal.NewFromInt(10250)), "final %s", res.FinalEquity)
	s.InDelta(0.025, res.TotalReturn, 1e-9)
}

func (s *EngineTestSuite) TestConfidenceBuckets() {
	s.InDelta(0.25, sizeFraction(0.8), 1e-9)
	s.InDelta(0.15, sizeFraction(0.7), 1e-9)
	s.InDelta(0.10, sizeFraction(0.55), 1e-9)
	s.InDelta(0.0, sizeFraction(0.5), 1e-9)
}

func (s *EngineTestSuite) TestSlippageMovesAgainstTrader() {
	buy := slip(decimal.NewFromInt(100), decimal.NewFromInt(10), true)
	sell := slip(decimal.NewFromInt(100), decimal.NewFromInt(10), false)
	s.True(buy.GreaterThan(decimal.NewFromInt(100)))
	s.True(sell.LessThan(decimal.NewFromInt(100)))
	s.True(buy.Equal(decimal.RequireFromString("100.1")), "buy %s", buy)
}

func (s *EngineTestSuite) TestStopLossTakesPrecedence() {
	bars := mkBars([][4]float64{
		{100, 101, 99, 100},
		{100, 101, 99, 100}, // entry at 100
		{100, 120, 90, 100}, // hits both stop (95) and tp (110): stop wins
		{100, 101, 99, 100},
	})
	cfg := baseConfig()
	cfg.StopLossPct = 0.05
	cfg.TakeProfitPct = 0.10

	strat := &scripted{signals: map[int]Signal{0: {Action: Buy, Confidence: 0.8}}}
	res, err := Run(bars, cfg, strat)
	s.Require().NoError(err)
	s.Require().Len(res.Trades, 1)
	s.Equal("stop_loss", res.Trades[0].ExitReason)
	s.True(res.Trades[0].ExitPrice.Equal(decimal.NewFromInt(95)), "exit %s", res.Trades[0].ExitPrice)
}

func (s *EngineTestSuite) TestTakeProfit() {
	bars := mkBars([][4]float64{
		{100, 101, 99, 100},
		{100, 101, 99, 100},  // entry at 100
		{100, 115, 98, 112},  // tp at 110 hit, stop (95) not
		{112, 113, 111, 112},
	})
	cfg := baseConfig()
	cfg.StopLossPct = 0.05
	cfg.TakeProfitPct = 0.10

	strat := &scripted{signals: map[int]Signal{0: {Action: Buy, Confidence: 0.8}}}
	res, err := Run(bars, cfg, strat)
	s.Require().NoError(err)
	s.Require().Len(res.Trades, 1)
	s.Equal("take_profit", res.Trades[0].ExitReason)
	s.True(res.Trades[0].ExitPrice.Equal(decimal.NewFromInt(110)))
}

func (s *EngineTestSuite) TestEndOfDataLiquidation() {
	bars := mkBars([][4]float64{
		{100, 101, 99, 100},
		{100, 101, 99, 100},
		{100, 106, 99, 105},
	})
	strat := &scripted{signals: map[int]Signal{0: {Action: Buy, Confidence: 0.8}}}
	res, err := Run(bars, baseConfig(), strat)
	s.Require().NoError(err)
	s.Require().Len(res.Trades, 1)
	s.Equal("end_of_data", res.Trades[0].ExitReason)
	s.True(res.Trades[0].ExitPrice.Equal(decimal.NewFromInt(105)))
}

func (s *EngineTestSuite) TestCommissionReducesPnL() {
	bars := mkBars([][4]float64{
		{100, 101, 99, 100},
		{100, 101, 99, 100},
		{100, 111, 99, 110},
		{110, 111, 109, 110},
	})
	cfg := baseConfig()
	cfg.CommissionRate = decimal.RequireFromString("0.001")

	strat := &scripted{signals: map[int]Signal{
		0: {Action: Buy, Confidence: 0.8},
		2: {Action: Sell, Confidence: 1},
	}}
	res, err := Run(bars, cfg, strat)
	s.Require().NoError(err)
	s.Require().Len(res.Trades, 1)
	s.True(res.Trades[0].Commission.GreaterThan(decimal.Zero))
	// Never spend more than available cash.
	s.True(res.FinalEquity.GreaterThan(decimal.Zero))
}

func (s *EngineTestSuite) TestCashNeverNegativeAndEquityConsistent() {
	bars := mkBars([][4]float64{
		{100, 101, 99, 100},
		{100, 101, 99, 101},
		{101, 102, 100, 102},
		{102, 103, 101, 103},
		{103, 104, 102, 104},
	})
	cfg := baseConfig()
	cfg.CommissionRate = decimal.RequireFromString("0.002")

	strat := &scripted{signals: map[int]Signal{
		0: {Action: Buy, Confidence: 0.9},
		1: {Action: Buy, Confidence: 0.9}, // ignored: already long
	}}
	res, err := Run(bars, cfg, strat)
	s.Require().NoError(err)
	for _, p := range res.EquityCurve {
		s.True(p.Equity.GreaterThan(decimal.Zero))
	}
	s.Len(res.EquityCurve, len(bars))
}

func (s *EngineTestSuite) TestRejectsUnorderedBars() {
	bars := mkBars([][4]float64{{100, 101, 99, 100}, {100, 101, 99, 100}})
	bars[1].Bucket = bars[0].Bucket.AddDate(0, 0, -1)
	_, err := Run(bars, baseConfig(), NewRSICross())
	s.Error(err)
}

func (s *EngineTestSuite) TestStatsWinRateProfitFactor() {
	res := &models.BacktestResult{
		InitialCapital: decimal.NewFromInt(1000),
		FinalEquity:    decimal.NewFromInt(1100),
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Trades: []models.BacktestTrade{
			{PnL: decimal.NewFromInt(200)},
			{PnL: decimal.NewFromInt(-100)},
		},
		EquityCurve: []models.EquityPoint{
			{Equity: decimal.NewFromInt(1000)},
			{Equity: decimal.NewFromInt(1200)},
			{Equity: decimal.NewFromInt(1080)},
			{Equity: decimal.NewFromInt(1100)},
		},
	}
	computeStats(res)
	s.InDelta(0.5, res.WinRate, 1e-9)
	s.Require().NotNil(res.ProfitFactor)
	s.InDelta(2.0, *res.ProfitFactor, 1e-9)
	s.InDelta(0.1, res.TotalReturn, 1e-9)
	s.InDelta(0.1, res.MaxDrawdown, 1e-9)
	s.Greater(res.AnnualizedReturn, 0.09)
}

// A run that only closes winners has no gross loss, so profit factor is
// undefined; the result must omit it and still serialize.
func (s *EngineTestSuite) TestStatsWinningOnlyRunSerializes() {
	res := &models.BacktestResult{
		InitialCapital: decimal.NewFromInt(1000),
		FinalEquity:    decimal.NewFromInt(1300),
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Trades: []models.BacktestTrade{
			{PnL: decimal.NewFromInt(200)},
			{PnL: decimal.NewFromInt(100)},
		},
		EquityCurve: []models.EquityPoint{
			{Equity: decimal.NewFromInt(1000)},
			{Equity: decimal.NewFromInt(1200)},
			{Equity: decimal.NewFromInt(1300)},
		},
	}
	computeStats(res)
	s.Nil(res.ProfitFactor)
	s.InDelta(1.0, res.WinRate, 1e-9)

	b, err := json.Marshal(res)
	s.Require().NoError(err)
	s.NotContains(string(b), "profit_factor")
}

func (s *EngineTestSuite) TestRSICrossGeneratesBuyAfterOversoldRecovery() {
	// Force a deep drop then a recovery; RSI must cross up through 30.
	ohlc := make([][4]float64, 0, 40)
	price := 100.0
	for i := 0; i < 20; i++ {
		price -= 2
		ohlc = append(ohlc, [4]float64{price + 1, price + 2, price - 1, price})
	}
	for i := 0; i < 10; i++ {
		price += 3
		ohlc = append(ohlc, [4]float64{price - 1, price + 1, price - 2, price})
	}
	bars := mkBars(ohlc)

	strat := NewRSICross()
	sawBuy := false
	for t := strat.Period + 2; t <= len(bars); t++ {
		sig, err := strat.OnBar(bars[:t])
		s.Require().NoError(err)
		if sig.Action == Buy {
			sawBuy = true
			s.Greater(sig.Confidence, 0.5)
			break
		}
	}
	s.True(sawBuy, "expected a buy signal on RSI recovery")
}
