package models

import "time"

// Training job lifecycle states.
const (
	JobStatusQueued  = "queued"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// TrainJob tracks one classifier training run.
type TrainJob struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Status       string    `json:"status"`
	LookbackDays int       `json:"lookback_days"`
	HorizonBars  int       `json:"horizon_bars"`
	Epochs       int       `json:"epochs"`
	Error        string    `json:"error,omitempty"`
	Accuracy     float64   `json:"accuracy,omitempty"`
	Samples      int       `json:"samples,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
