package backtest

import (
	"errors"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/features"
	"StockPulse/internal/services/indicators"
	"StockPulse/internal/services/predict"
)

// RSICross buys when RSI crosses up out of the oversold zone and sells when
// it crosses down out of the overbought zone.
type RSICross struct {
	Period     int
	Oversold   float64
	Overbought float64
}

func NewRSICross() *RSICross {
	return &RSICross{Period: 14, Oversold: 30, Overbought: 70}
}

func (s *RSICross) Name() string { return "rsi_cross" }

func (s *RSICross) OnBar(bars []models.Bar) (Signal, error) {
	if len(bars) < s.Period+2 {
		return Signal{Action: Hold}, nil
	}
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	rsi, err := indicators.RSI(closes, s.Period)
	if err != nil {
		if errors.Is(err, indicators.ErrInsufficientData) {
			return Signal{Action: Hold}, nil
		}
		return Signal{}, err
	}

	prev, cur := rsi[len(rsi)-2], rsi[len(rsi)-1]
	switch {
	case prev < s.Oversold && cur >= s.Oversold:
		// Deeper oversold readings carry more conviction.
		conf := 0.55 + (s.Oversold-prev)/100
		if conf > 0.85 {
			conf = 0.85
		}
		return Signal{Action: Buy, Confidence: conf}, nil
	case prev > s.Overbought && cur <= s.Overbought:
		return Signal{Action: Sell, Confidence: 1}, nil
	default:
		return Signal{Action: Hold}, nil
	}
}

// ClassifierStrategy replays a trained model bar-by-bar. The model only ever
// sees the bars up to the current one.
type ClassifierStrategy struct {
	Model *predict.Model
}

func (s *ClassifierStrategy) Name() string { return "classifier" }

func (s *ClassifierStrategy) OnBar(bars []models.Bar) (Signal, error) {
	if len(bars) <= features.Warmup {
		return Signal{Action: Hold}, nil
	}
	m, err := features.Extract(bars)
	if err != nil {
		if errors.Is(err, indicators.ErrInsufficientData) {
			return Signal{Action: Hold}, nil
		}
		return Signal{}, err
	}

	_, class, conf, err := s.Model.Probabilities(m.X[len(m.X)-1])
	if err != nil {
		return Signal{}, err
	}
	switch class {
	case "up":
		return Signal{Action: Buy, Confidence: conf}, nil
	case "down":
		return Signal{Action: Sell, Confidence: conf}, nil
	default:
		return Signal{Action: Hold}, nil
	}
}
