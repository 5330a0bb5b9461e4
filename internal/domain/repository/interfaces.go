package repository

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
)

// BarProvider fetches historical bars from an upstream market data source.
type BarProvider interface {
	Name() string
	FetchBars(ctx context.Context, symbol string, from, to time.Time, tf Timeframe) ([]models.Bar, error)
}

// BarStore persists and serves historical bars.
type BarStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreBatch(ctx context.Context, bars []models.Bar, tf Timeframe) error
	GetBars(ctx context.Context, symbol string, from, to time.Time, tf Timeframe) ([]models.Bar, error)
	GetLatestNBars(ctx context.Context, symbol string, n int, tf Timeframe) ([]models.Bar, error)
	Health(ctx context.Context) error
	Close() error
}

// TickStore persists live trade ticks.
type TickStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, t *models.Tick) error
	StoreBatch(ctx context.Context, ticks []*models.Tick) error
	Health(ctx context.Context) error
	Close() error
}

// Publisher sends ticks to a message broker.
type Publisher interface {
	Publish(ctx context.Context, t *models.Tick) error
	PublishBatch(ctx context.Context, ticks []*models.Tick) error
	Close() error
}

// MarketStream is a live quote feed.
type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Tick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// JobStore records training job status.
type JobStore interface {
	Put(ctx context.Context, job *models.TrainJob) error
	Get(ctx context.Context, id string) (*models.TrainJob, error)
}

// Metrics records domain-level observations.
type Metrics interface {
	RecordFetch(provider, outcome string)
	RecordCache(layer, outcome string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordPrediction(class string)
	RecordTrainJob(status string)
	RecordTickIngested(backend, symbol string)
}
