package indicators

import (
	"fmt"
	"math"
)

// ATR computes the Average True Range with Wilder smoothing.
// out[i] is valid for i >= period.
func ATR(high, low, close []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("atr period %d: %w", period, ErrInvalidPeriod)
	}
	n := len(close)
	if len(high) != n || len(low) != n {
		return nil, fmt.Errorf("atr: series length mismatch h=%d l=%d c=%d", len(high), len(low), n)
	}
	if n < period+1 {
		return nil, insufficient("atr", period+1, n)
	}

	out := warmup(n, period)

	var sum float64
	for i := 1; i <= period; i++ {
		sum += trueRange(high[i], low[i], close[i-1])
	}
	prev := sum / float64(period)
	out[period] = prev

	for i := period + 1; i < n; i++ {
		tr := trueRange(high[i], low[i], close[i-1])
		prev = (prev*float64(period-1) + tr) / float64(period)
		out[i] = prev
	}
	return out, nil
}

// trueRange is max(h-l, |h-prevClose|, |l-prevClose|).
func trueRange(h, l, prevClose float64) float64 {
	return math.Max(h-l, math.Max(math.Abs(h-prevClose), math.Abs(l-prevClose)))
}
