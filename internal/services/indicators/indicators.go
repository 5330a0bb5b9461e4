// Package indicators implements standard technical indicators over OHLCV
// series. Series functions return slices aligned to the input; entries inside
// the warmup window are NaN and must not be interpreted as values.
package indicators

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientData indicates the series is shorter than the indicator
	// warmup window.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidPeriod indicates a non-positive or nonsensical period.
	ErrInvalidPeriod = errors.New("invalid period")
)

func insufficient(name string, need, have int) error {
	return fmt.Errorf("%s: need %d points, have %d: %w", name, need, have, ErrInsufficientData)
}

// SMA computes the simple moving average. out[i] is valid for i >= period-1.
func SMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("sma period %d: %w", period, ErrInvalidPeriod)
	}
	if len(values) < period {
		return nil, insufficient("sma", period, len(values))
	}

	out := warmup(len(values), period-1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMA computes the exponential moving average seeded with the SMA of the
// first period values. out[i] is valid for i >= period-1.
func EMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("ema period %d: %w", period, ErrInvalidPeriod)
	}
	if len(values) < period {
		return nil, insufficient("ema", period, len(values))
	}

	out := warmup(len(values), period-1)
	var seed float64
	for _, v := range values[:period] {
		seed += v
	}
	seed /= float64(period)
	out[period-1] = seed

	k := 2.0 / float64(period+1)
	prev := seed
	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = prev
	}
	return out, nil
}

// LogReturns computes ln(p_t / p_{t-1}); the result has len(closes)-1
// entries.
func LogReturns(closes []float64) ([]float64, error) {
	if len(closes) < 2 {
		return nil, insufficient("log returns", 2, len(closes))
	}
	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return nil, fmt.Errorf("log returns: non-positive price at index %d", i)
		}
		out[i-1] = math.Log(closes[i] / closes[i-1])
	}
	return out, nil
}

// RealizedVol computes the annualized standard deviation of returns.
// periodsPerYear is 252 for daily bars.
func RealizedVol(returns []float64, periodsPerYear float64) (float64, error) {
	if len(returns) < 2 {
		return 0, insufficient("realized vol", 2, len(returns))
	}
	return stdDev(returns) * math.Sqrt(periodsPerYear), nil
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// Latest returns the final entry of a series, erroring on NaN warmup values.
func Latest(series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, insufficient("latest", 1, 0)
	}
	v := series[len(series)-1]
	if math.IsNaN(v) {
		return 0, fmt.Errorf("latest: series still in warmup: %w", ErrInsufficientData)
	}
	return v, nil
}

func warmup(n, upto int) []float64 {
	out := make([]float64, n)
	for i := 0; i < upto && i < n; i++ {
		out[i] = math.NaN()
	}
	return out
}
