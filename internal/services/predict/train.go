package predict

import (
	"fmt"
	"math"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/features"
)

// TrainConfig controls one training run.
type TrainConfig struct {
	HorizonBars    int     // forward-return horizon
	FlatThreshold  float64 // |forward return| below this is "flat"
	Epochs         int
	LearningRate   float64
	L2             float64
	ValidationPart float64 // trailing fraction held out chronologically
	BatchSize      int
}

// DefaultTrainConfig mirrors the service configuration defaults.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		HorizonBars:    1,
		FlatThreshold:  0.005,
		Epochs:         200,
		LearningRate:   0.05,
		L2:             1e-4,
		ValidationPart: 0.2,
		BatchSize:      32,
	}
}

// minTrainSamples keeps runs with too little history from producing a model
// whose validation accuracy is noise.
const minTrainSamples = 60

// Train fits a multinomial logistic regression on the bar series. The split
// is chronological: the trailing ValidationPart of samples is held out, so
// the model never sees bars after its validation window.
func Train(symbol string, bars []models.Bar, cfg TrainConfig) (*Model, error) {
	if cfg.HorizonBars <= 0 {
		return nil, fmt.Errorf("train: horizon must be positive, got %d", cfg.HorizonBars)
	}
	if cfg.Epochs <= 0 || cfg.LearningRate <= 0 {
		return nil, fmt.Errorf("train: epochs and learning rate must be positive")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}

	m, err := features.Extract(bars)
	if err != nil {
		return nil, err
	}

	// Label sample i by the forward log return over HorizonBars.
	usable := len(m.X) - cfg.HorizonBars
	if usable < minTrainSamples {
		return nil, fmt.Errorf("train %s: %d usable samples, need %d", symbol, usable, minTrainSamples)
	}

	X := m.X[:usable]
	y := make([]int, usable)
	for i := 0; i < usable; i++ {
		barIdx := m.StartIndex + i
		fwd := math.Log(bars[barIdx+cfg.HorizonBars].Close / bars[barIdx].Close)
		switch {
		case fwd > cfg.FlatThreshold:
			y[i] = 2 // up
		case fwd < -cfg.FlatThreshold:
			y[i] = 0 // down
		default:
			y[i] = 1 // flat
		}
	}

	split := usable - int(float64(usable)*cfg.ValidationPart)
	if split <= 0 || split >= usable {
		split = usable * 4 / 5
	}
	XTrain, yTrain := X[:split], y[:split]
	XVal, yVal := X[split:], y[split:]

	stats, err := features.Fit(XTrain)
	if err != nil {
		return nil, err
	}
	ZTrain, err := stats.ApplyAll(XTrain)
	if err != nil {
		return nil, err
	}

	weights := fit(ZTrain, yTrain, cfg)

	model := &Model{
		Symbol:      symbol,
		Weights:     weights,
		Stats:       stats,
		HorizonBars: cfg.HorizonBars,
		TrainedAt:   time.Now().UTC(),
		Samples:     usable,
	}

	correct := 0
	for i, row := range XVal {
		_, class, _, perr := model.Probabilities(row)
		if perr != nil {
			return nil, perr
		}
		if classIndex(class) == yVal[i] {
			correct++
		}
	}
	if len(XVal) > 0 {
		model.ValAccuracy = float64(correct) / float64(len(XVal))
	}
	return model, nil
}

// fit runs mini-batch gradient descent on softmax cross-entropy with L2.
func fit(Z [][]float64, y []int, cfg TrainConfig) [][]float64 {
	d := len(Z[0])
	k := len(Classes)
	w := make([][]float64, k)
	for c := range w {
		w[c] = make([]float64, d+1)
	}

	n := len(Z)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for start := 0; start < n; start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > n {
				end = n
			}
			grad := make([][]float64, k)
			for c := range grad {
				grad[c] = make([]float64, d+1)
			}

			for i := start; i < end; i++ {
				logits := make([]float64, k)
				for c := 0; c < k; c++ {
					v := w[c][d]
					for j, x := range Z[i] {
						v += w[c][j] * x
					}
					logits[c] = v
				}
				p := softmax(logits)
				for c := 0; c < k; c++ {
					delta := p[c]
					if c == y[i] {
						delta -= 1
					}
					for j, x := range Z[i] {
						grad[c][j] += delta * x
					}
					grad[c][d] += delta
				}
			}

			batch := float64(end - start)
			for c := 0; c < k; c++ {
				for j := 0; j <= d; j++ {
					g := grad[c][j] / batch
					if j < d {
						g += cfg.L2 * w[c][j] // bias is not regularized
					}
					w[c][j] -= cfg.LearningRate * g
				}
			}
		}
	}
	return w
}

func classIndex(name string) int {
	for i, c := range Classes {
		if c == name {
			return i
		}
	}
	return -1
}
