package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

type recordingProc struct {
	mu    sync.Mutex
	ticks []*models.Tick
	fail  bool
}

func (p *recordingProc) Process(ctx context.Context, t *models.Tick) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("downstream down")
	}
	p.ticks = append(p.ticks, t)
	return nil
}

func (p *recordingProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ticks)
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string)        {}
func (nopMetrics) RecordCache(string, string)        {}
func (nopMetrics) RecordError(string)                {}
func (nopMetrics) RecordLastPrice(string, float64)   {}
func (nopMetrics) RecordLatency(string, float64)     {}
func (nopMetrics) RecordPrediction(string)           {}
func (nopMetrics) RecordTrainJob(string)             {}
func (nopMetrics) RecordTickIngested(string, string) {}

func tick(sym string) *models.Tick {
	return &models.Tick{Symbol: sym, Price: 100, Volume: 1, Timestamp: time.Now()}
}

func TestPipelineForwards(t *testing.T) {
	proc := &recordingProc{}
	p := NewRealtimePipeline(proc, nopMetrics{}, WithMaxTPS(1000))

	if err := p.Process(context.Background(), tick("AAPL")); err != nil {
		t.Fatalf("process: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("expected 1 tick forwarded, got %d", proc.count())
	}
}

func TestPipelineRejectsInvalid(t *testing.T) {
	p := NewRealtimePipeline(&recordingProc{}, nopMetrics{})
	if err := p.Process(context.Background(), &models.Tick{Symbol: ""}); err == nil {
		t.Fatal("expected validation error")
	}
	if err := p.Process(context.Background(), nil); err == nil {
		t.Fatal("expected nil tick error")
	}
}

func TestPipelineThrottlesPerSymbol(t *testing.T) {
	proc := &recordingProc{}
	p := NewRealtimePipeline(proc, nopMetrics{}, WithMaxTPS(1))

	_ = p.Process(context.Background(), tick("AAPL"))
	_ = p.Process(context.Background(), tick("AAPL")) // throttled
	_ = p.Process(context.Background(), tick("MSFT")) // separate symbol budget

	if proc.count() != 2 {
		t.Fatalf("expected 2 forwarded (1 throttled), got %d", proc.count())
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &recordingProc{fail: true}
	p := NewRealtimePipeline(proc, nopMetrics{}, WithMaxTPS(1000), WithBufferSize(4))

	if err := p.Process(context.Background(), tick("AAPL")); err == nil {
		t.Fatal("expected downstream error")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("expected 1 buffered tick, got %d", len(p.bufCh))
	}

	// Recover downstream and let the flusher drain the buffer.
	proc.mu.Lock()
	proc.fail = false
	proc.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	deadline := time.After(2 * time.Second)
	for proc.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("buffered tick never flushed")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
