package models

import "time"

// IndicatorSet is the full indicator snapshot for a symbol at the latest bar.
type IndicatorSet struct {
	Symbol        string    `json:"symbol"`
	Timestamp     time.Time `json:"timestamp"`
	Close         float64   `json:"close"`
	RSI           float64   `json:"rsi"`
	MACD          float64   `json:"macd"`
	MACDSignal    float64   `json:"macd_signal"`
	MACDHistogram float64   `json:"macd_histogram"`
	BollingerMid  float64   `json:"bollinger_mid"`
	BollingerUp   float64   `json:"bollinger_upper"`
	BollingerLow  float64   `json:"bollinger_lower"`
	Bandwidth     float64   `json:"bollinger_bandwidth"`
	PercentB      float64   `json:"percent_b"`
	ATR           float64   `json:"atr"`
	SMA20         float64   `json:"sma_20"`
	SMA50         float64   `json:"sma_50"`
	RealizedVol   float64   `json:"realized_vol"`
	Bars          int       `json:"bars"`
}

// Prediction is the classifier output for a symbol.
type Prediction struct {
	Symbol        string             `json:"symbol"`
	Timestamp     time.Time          `json:"timestamp"`
	Class         string             `json:"class"` // "down", "flat", "up"
	Probabilities map[string]float64 `json:"probabilities"`
	Confidence    float64            `json:"confidence"`
	HorizonBars   int                `json:"horizon_bars"`
	Model         ModelInfo          `json:"model"`
}

// ModelInfo describes the trained model behind a prediction.
type ModelInfo struct {
	TrainedAt          time.Time `json:"trained_at"`
	Samples            int       `json:"samples"`
	ValidationAccuracy float64   `json:"validation_accuracy"`
	Features           []string  `json:"features"`
}

// AggregateSignals is the consolidated per-symbol view: indicators,
// prediction, and sentiment, with per-component errors for partial failures.
type AggregateSignals struct {
	Symbol     string              `json:"symbol"`
	Timestamp  time.Time           `json:"timestamp"`
	Quote      *Quote              `json:"quote,omitempty"`
	Indicators *IndicatorSet       `json:"indicators,omitempty"`
	Prediction *Prediction         `json:"prediction,omitempty"`
	Sentiment  *AggregateSentiment `json:"sentiment,omitempty"`
	Errors     map[string]string   `json:"errors,omitempty"`
}
