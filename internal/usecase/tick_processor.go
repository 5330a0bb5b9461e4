package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
)

var (
	errNoPublisher = errors.New("kafka backend selected but no publisher configured")
	errNoTickStore = errors.New("clickhouse backend selected but no tick store configured")
)

// TickProcessor routes live ticks to the configured backend.
type TickProcessor struct {
	pub     drepo.Publisher
	store   drepo.TickStore
	metrics drepo.Metrics
	backend string
}

func NewTickProcessor(pub drepo.Publisher, store drepo.TickStore, metrics drepo.Metrics, backend string) *TickProcessor {
	return &TickProcessor{pub: pub, store: store, metrics: metrics, backend: backend}
}

// Process routes a single tick to the configured backend.
func (p *TickProcessor) Process(ctx context.Context, t *models.Tick) error {
	if t == nil {
		return fmt.Errorf("tick is nil")
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		if p.pub == nil {
			err = errNoPublisher
			break
		}
		err = p.pub.Publish(ctx, t)
	case "clickhouse":
		if p.store == nil {
			err = errNoTickStore
			break
		}
		err = p.store.Store(ctx, t)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process tick: %w", err)
	}

	p.metrics.RecordTickIngested(p.backend, t.Symbol)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch routes multiple ticks in a batch.
func (p *TickProcessor) ProcessBatch(ctx context.Context, ticks []*models.Tick) error {
	if len(ticks) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		if p.pub == nil {
			err = errNoPublisher
			break
		}
		err = p.pub.PublishBatch(ctx, ticks)
	case "clickhouse":
		if p.store == nil {
			err = errNoTickStore
			break
		}
		err = p.store.StoreBatch(ctx, ticks)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, t := range ticks {
		p.metrics.RecordTickIngested(p.backend, t.Symbol)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (p *TickProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
