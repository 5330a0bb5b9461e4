package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/domain/models"
)

type fakePublisher struct {
	published []*models.Tick
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, t *models.Tick) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, t)
	return nil
}

func (p *fakePublisher) PublishBatch(ctx context.Context, ticks []*models.Tick) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, ticks...)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeTickStore struct {
	stored []*models.Tick
}

func (s *fakeTickStore) Init(ctx context.Context) error { return nil }

func (s *fakeTickStore) Store(ctx context.Context, t *models.Tick) error {
	s.stored = append(s.stored, t)
	return nil
}

func (s *fakeTickStore) StoreBatch(ctx context.Context, ticks []*models.Tick) error {
	s.stored = append(s.stored, ticks...)
	return nil
}

func (s *fakeTickStore) Health(ctx context.Context) error { return nil }
func (s *fakeTickStore) Close() error                     { return nil }

func sampleTick(sym string) *models.Tick {
	return &models.Tick{Symbol: sym, Price: 187.5, Volume: 100, Timestamp: time.Now()}
}

func TestTickProcessorRoutesToKafka(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeTickStore{}
	p := NewTickProcessor(pub, store, nopMetrics{}, "kafka")

	require.NoError(t, p.Process(context.Background(), sampleTick("AAPL")))
	assert.Len(t, pub.published, 1)
	assert.Empty(t, store.stored)
}

func TestTickProcessorRoutesToClickHouse(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeTickStore{}
	p := NewTickProcessor(pub, store, nopMetrics{}, "clickhouse")

	require.NoError(t, p.Process(context.Background(), sampleTick("AAPL")))
	assert.Len(t, store.stored, 1)
	assert.Empty(t, pub.published)
}

func TestTickProcessorRejectsUnknownBackend(t *testing.T) {
	p := NewTickProcessor(&fakePublisher{}, &fakeTickStore{}, nopMetrics{}, "postgres")
	assert.Error(t, p.Process(context.Background(), sampleTick("AAPL")))
}

func TestTickProcessorNilTick(t *testing.T) {
	p := NewTickProcessor(&fakePublisher{}, &fakeTickStore{}, nopMetrics{}, "kafka")
	assert.Error(t, p.Process(context.Background(), nil))
}

// A misconfigured deployment can select a backend whose sink was never
// built; the processor must return an error, not dereference a nil sink.
func TestTickProcessorNilSinkErrors(t *testing.T) {
	p := NewTickProcessor(&fakePublisher{}, nil, nopMetrics{}, "clickhouse")
	assert.Error(t, p.Process(context.Background(), sampleTick("AAPL")))
	assert.Error(t, p.ProcessBatch(context.Background(), []*models.Tick{sampleTick("AAPL")}))

	p = NewTickProcessor(nil, &fakeTickStore{}, nopMetrics{}, "kafka")
	assert.Error(t, p.Process(context.Background(), sampleTick("AAPL")))
	assert.Error(t, p.ProcessBatch(context.Background(), []*models.Tick{sampleTick("AAPL")}))
}

func TestTickProcessorPropagatesPublishError(t *testing.T) {
	pub := &fakePublisher{err: fmt.Errorf("broker down")}
	p := NewTickProcessor(pub, &fakeTickStore{}, nopMetrics{}, "kafka")
	assert.Error(t, p.Process(context.Background(), sampleTick("AAPL")))
}

func TestTickProcessorBatch(t *testing.T) {
	pub := &fakePublisher{}
	p := NewTickProcessor(pub, &fakeTickStore{}, nopMetrics{}, "kafka")

	ticks := []*models.Tick{sampleTick("AAPL"), sampleTick("MSFT")}
	require.NoError(t, p.ProcessBatch(context.Background(), ticks))
	assert.Len(t, pub.published, 2)

	require.NoError(t, p.ProcessBatch(context.Background(), nil))
}
