// Package features turns bar series into classifier feature vectors.
package features

import (
	"fmt"
	"math"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/indicators"
)

// Warmup is the number of leading bars consumed before the first feature
// vector can be produced (bounded by the MACD signal warmup plus lags).
const Warmup = 40

const volWindow = 20

// Names lists the feature vector layout, in order.
var Names = []string{
	"ret_1",
	"ret_5",
	"ret_10",
	"rsi_14",
	"macd_hist",
	"percent_b",
	"bandwidth",
	"atr_ratio",
	"volume_ratio",
	"realized_vol",
}

// Matrix holds one feature vector per bar starting at StartIndex in the
// source series.
type Matrix struct {
	X          [][]float64
	StartIndex int
}

// Extract computes feature vectors for every bar from Warmup onward.
func Extract(bars []models.Bar) (*Matrix, error) {
	if len(bars) <= Warmup {
		return nil, fmt.Errorf("features: need more than %d bars, have %d: %w",
			Warmup, len(bars), indicators.ErrInsufficientData)
	}

	n := len(bars)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
		volumes[i] = b.Volume
	}

	rsi, err := indicators.RSI(closes, 14)
	if err != nil {
		return nil, err
	}
	macd, err := indicators.MACD(closes, 12, 26, 9)
	if err != nil {
		return nil, err
	}
	boll, err := indicators.Bollinger(closes, 20, 2.0)
	if err != nil {
		return nil, err
	}
	atr, err := indicators.ATR(highs, lows, closes, 14)
	if err != nil {
		return nil, err
	}
	volSMA, err := indicators.SMA(volumes, volWindow)
	if err != nil {
		return nil, err
	}
	returns, err := indicators.LogReturns(closes)
	if err != nil {
		return nil, err
	}

	X := make([][]float64, 0, n-Warmup)
	for i := Warmup; i < n; i++ {
		if closes[i] <= 0 {
			return nil, fmt.Errorf("features: non-positive close at index %d", i)
		}

		volRatio := 1.0
		if volSMA[i] > 0 {
			volRatio = volumes[i] / volSMA[i]
		}

		// returns[j] is the return INTO bar j+1.
		rv, err := indicators.RealizedVol(returns[i-volWindow:i], 252)
		if err != nil {
			return nil, err
		}

		row := []float64{
			math.Log(closes[i] / closes[i-1]),
			math.Log(closes[i] / closes[i-5]),
			math.Log(closes[i] / closes[i-10]),
			rsi[i],
			macd.Histogram[i],
			boll.PercentB(i, closes[i]),
			boll.Bandwidth(i),
			atr[i] / closes[i],
			volRatio,
			rv,
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("features: invalid %s at index %d", Names[j], i)
			}
		}
		X = append(X, row)
	}

	return &Matrix{X: X, StartIndex: Warmup}, nil
}

// Stats captures per-feature mean and standard deviation from training data.
type Stats struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Fit computes z-score statistics over a training matrix.
func Fit(X [][]float64) (*Stats, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("features: empty matrix")
	}
	d := len(X[0])
	mean := make([]float64, d)
	std := make([]float64, d)

	for _, row := range X {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(X))
	}
	for _, row := range X {
		for j, v := range row {
			dv := v - mean[j]
			std[j] += dv * dv
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / float64(len(X)))
		if std[j] == 0 {
			std[j] = 1 // constant feature, leave centered
		}
	}
	return &Stats{Mean: mean, Std: std}, nil
}

// Apply z-scores a single vector with previously fitted stats.
func (s *Stats) Apply(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("features: dimension mismatch %d != %d", len(row), len(s.Mean))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out, nil
}

// ApplyAll z-scores a matrix.
func (s *Stats) ApplyAll(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		z, err := s.Apply(row)
		if err != nil {
			return nil, err
		}
		out[i] = z
	}
	return out, nil
}
