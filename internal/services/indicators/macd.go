package indicators

import (
	"fmt"
	"math"
)

// MACDResult holds the aligned MACD series.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the Moving Average Convergence Divergence. The line is valid
// from index slow-1; signal and histogram from index slow+signalPeriod-2.
func MACD(closes []float64, fast, slow, signalPeriod int) (*MACDResult, error) {
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 {
		return nil, fmt.Errorf("macd periods %d/%d/%d: %w", fast, slow, signalPeriod, ErrInvalidPeriod)
	}
	if fast >= slow {
		return nil, fmt.Errorf("macd fast %d >= slow %d: %w", fast, slow, ErrInvalidPeriod)
	}
	need := slow + signalPeriod - 1
	if len(closes) < need {
		return nil, insufficient("macd", need, len(closes))
	}

	fastEMA, err := EMA(closes, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMA(closes, slow)
	if err != nil {
		return nil, err
	}

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal line is an EMA over the valid portion of the MACD line.
	validLine := line[slow-1:]
	sigValid, err := EMA(validLine, signalPeriod)
	if err != nil {
		return nil, err
	}

	signal := warmup(len(closes), len(closes))
	histogram := warmup(len(closes), len(closes))
	for i, v := range sigValid {
		idx := slow - 1 + i
		signal[idx] = v
		if !math.IsNaN(v) {
			histogram[idx] = line[idx] - v
		}
	}
	return &MACDResult{Line: line, Signal: signal, Histogram: histogram}, nil
}
