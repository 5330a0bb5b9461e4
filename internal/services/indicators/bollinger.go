package indicators

import (
	"fmt"
	"math"
)

// BollingerResult holds the aligned Bollinger Bands series.
type BollingerResult struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// Bollinger computes Bollinger Bands: middle SMA with upper/lower bands at
// k standard deviations (population). Valid from index period-1.
func Bollinger(closes []float64, period int, k float64) (*BollingerResult, error) {
	if period <= 0 {
		return nil, fmt.Errorf("bollinger period %d: %w", period, ErrInvalidPeriod)
	}
	if k <= 0 {
		return nil, fmt.Errorf("bollinger k %f: %w", k, ErrInvalidPeriod)
	}
	if len(closes) < period {
		return nil, insufficient("bollinger", period, len(closes))
	}

	mid, err := SMA(closes, period)
	if err != nil {
		return nil, err
	}

	upper := warmup(len(closes), period-1)
	lower := warmup(len(closes), period-1)
	for i := period - 1; i < len(closes); i++ {
		sigma := stdDev(closes[i-period+1 : i+1])
		upper[i] = mid[i] + k*sigma
		lower[i] = mid[i] - k*sigma
	}
	return &BollingerResult{Middle: mid, Upper: upper, Lower: lower}, nil
}

// Bandwidth is (upper-lower)/middle at index i.
func (b *BollingerResult) Bandwidth(i int) float64 {
	if math.IsNaN(b.Middle[i]) || b.Middle[i] == 0 {
		return math.NaN()
	}
	return (b.Upper[i] - b.Lower[i]) / b.Middle[i]
}

// PercentB is the position of close within the bands at index i:
// 0 at the lower band, 1 at the upper. Degenerate (flat) bands yield 0.5.
func (b *BollingerResult) PercentB(i int, close float64) float64 {
	if math.IsNaN(b.Upper[i]) || math.IsNaN(b.Lower[i]) {
		return math.NaN()
	}
	width := b.Upper[i] - b.Lower[i]
	if width == 0 {
		return 0.5
	}
	return (close - b.Lower[i]) / width
}
