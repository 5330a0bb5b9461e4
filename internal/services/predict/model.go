// Package predict implements a multinomial logistic regression classifier
// over bar features, with a per-symbol in-process model registry.
package predict

import (
	"errors"
	"fmt"
	"math"
	"time"

	"StockPulse/internal/services/features"
)

// Class labels by forward-return threshold, in weight-row order.
var Classes = []string{"down", "flat", "up"}

// ErrModelNotFound indicates no trained model exists for the symbol.
var ErrModelNotFound = errors.New("model not found")

// Model is a trained multinomial logistic regression classifier.
type Model struct {
	Symbol      string          `json:"symbol"`
	Weights     [][]float64     `json:"weights"` // per class; last entry is the bias
	Stats       *features.Stats `json:"stats"`
	HorizonBars int             `json:"horizon_bars"`
	TrainedAt   time.Time       `json:"trained_at"`
	Samples     int             `json:"samples"`
	ValAccuracy float64         `json:"val_accuracy"`
}

// Probabilities returns the per-class probability map for one raw (un-scaled)
// feature vector, plus the argmax class and its probability.
func (m *Model) Probabilities(raw []float64) (map[string]float64, string, float64, error) {
	z, err := m.Stats.Apply(raw)
	if err != nil {
		return nil, "", 0, err
	}

	logits := make([]float64, len(m.Weights))
	for c, w := range m.Weights {
		if len(w) != len(z)+1 {
			return nil, "", 0, fmt.Errorf("predict: weight dimension %d != %d", len(w), len(z)+1)
		}
		v := w[len(z)] // bias
		for j, x := range z {
			v += w[j] * x
		}
		logits[c] = v
	}

	probs := softmax(logits)
	out := make(map[string]float64, len(Classes))
	best, bestP := "", -1.0
	for c, name := range Classes {
		out[name] = probs[c]
		if probs[c] > bestP {
			best, bestP = name, probs[c]
		}
	}
	return out, best, bestP, nil
}

func softmax(logits []float64) []float64 {
	maxv := logits[0]
	for _, v := range logits[1:] {
		if v > maxv {
			maxv = v
		}
	}
	out := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		out[i] = math.Exp(v - maxv)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
