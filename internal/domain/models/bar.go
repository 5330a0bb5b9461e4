package models

import "time"

// Bar represents an OHLCV record at a given resolution.
type Bar struct {
	Bucket time.Time `json:"bucket"`
	Symbol string    `json:"symbol"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote is a point-in-time snapshot derived from the most recent bars.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	PrevClose     float64   `json:"prev_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        float64   `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
	Provider      string    `json:"provider"`
}

// StockView is the combined quote/bars/indicator snapshot for one symbol.
// Indicators are omitted when the requested range is too short to compute
// them.
type StockView struct {
	Symbol     string        `json:"symbol"`
	Quote      *Quote        `json:"quote"`
	Bars       []Bar         `json:"bars"`
	Indicators *IndicatorSet `json:"indicators,omitempty"`
}

// Tick is a single trade print from the live stream.
type Tick struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}
