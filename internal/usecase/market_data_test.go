package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/service/cache"
	"StockPulse/pkg/logger"
)

type fakeProvider struct {
	name  string
	bars  []models.Bar
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) FetchBars(ctx context.Context, symbol string, from, to time.Time, tf drepo.Timeframe) ([]models.Bar, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.bars, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string)        {}
func (nopMetrics) RecordCache(string, string)        {}
func (nopMetrics) RecordError(string)                {}
func (nopMetrics) RecordLastPrice(string, float64)   {}
func (nopMetrics) RecordLatency(string, float64)     {}
func (nopMetrics) RecordPrediction(string)           {}
func (nopMetrics) RecordTrainJob(string)             {}
func (nopMetrics) RecordTickIngested(string, string) {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func dailyBars(n int, startClose float64) []models.Bar {
	bars := make([]models.Bar, n)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := startClose + float64(i)
		bars[i] = models.Bar{
			Bucket: day.AddDate(0, 0, i),
			Symbol: "AAPL",
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

func newMarketUC(t *testing.T, providers ...drepo.BarProvider) *MarketDataUseCase {
	t.Helper()
	return NewMarketDataUseCase(providers, cache.NewTTLCache(), nil, nopMetrics{}, testLogger(t), time.Minute, time.Minute)
}

func TestGetHistoryFailsOverToSecondProvider(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: fmt.Errorf("rate limited")}
	secondary := &fakeProvider{name: "secondary", bars: dailyBars(5, 100)}
	uc := newMarketUC(t, primary, secondary)

	bars, err := uc.GetHistory(context.Background(), "aapl", "1mo", "1d", 0)
	require.NoError(t, err)
	assert.Len(t, bars, 5)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestGetHistoryAllProvidersFailed(t *testing.T) {
	uc := newMarketUC(t, &fakeProvider{name: "p1", err: fmt.Errorf("down")})

	_, err := uc.GetHistory(context.Background(), "AAPL", "1mo", "1d", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGetHistoryServesSecondCallFromCache(t *testing.T) {
	p := &fakeProvider{name: "p", bars: dailyBars(5, 100)}
	uc := newMarketUC(t, p)

	_, err := uc.GetHistory(context.Background(), "AAPL", "1mo", "1d", 0)
	require.NoError(t, err)
	_, err = uc.GetHistory(context.Background(), "AAPL", "1mo", "1d", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls, "second call must hit the cache")
}

func TestGetHistoryLimitKeepsMostRecent(t *testing.T) {
	p := &fakeProvider{name: "p", bars: dailyBars(10, 100)}
	uc := newMarketUC(t, p)

	bars, err := uc.GetHistory(context.Background(), "AAPL", "1mo", "1d", 3)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.InDelta(t, 109, bars[2].Close, 1e-9)
}

func TestGetQuoteDerivesChangeFromPrevClose(t *testing.T) {
	p := &fakeProvider{name: "p", bars: dailyBars(5, 100)}
	uc := newMarketUC(t, p)

	q, err := uc.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.InDelta(t, 104, q.Price, 1e-9)
	assert.InDelta(t, 103, q.PrevClose, 1e-9)
	assert.InDelta(t, 1, q.Change, 1e-9)
	assert.InDelta(t, 100.0/103, q.ChangePercent, 1e-6)
}

func TestGetQuoteNoBars(t *testing.T) {
	uc := newMarketUC(t, &fakeProvider{name: "p", bars: nil})

	_, err := uc.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)
}
