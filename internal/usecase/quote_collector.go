package usecase

import (
	"context"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	mid "StockPulse/internal/middleware"
)

// QuoteCollector reads live ticks from the market stream and pushes them
// through the realtime pipeline.
type QuoteCollector struct {
	stream  drepo.MarketStream
	proc    *TickProcessor
	metrics drepo.Metrics
	pipe    *mid.RealtimePipeline
}

func NewQuoteCollector(stream drepo.MarketStream, proc *TickProcessor, metrics drepo.Metrics, pipe *mid.RealtimePipeline) *QuoteCollector {
	return &QuoteCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the market stream is connected.
func (c *QuoteCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *QuoteCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	tickCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, tickCh, errCh)
	return nil
}

// consume forwards ticks until the stream drops, then reconnects and
// re-acquires the channels. The read loop closes both channels on failure.
func (c *QuoteCollector) consume(ctx context.Context, tickCh <-chan *models.Tick, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				c.metrics.RecordError("stream")
			}
		case t, ok := <-tickCh:
			if !ok {
				if ctx.Err() != nil {
					return
				}
				if err := c.stream.Reconnect(ctx); err != nil {
					c.metrics.RecordError("stream_reconnect")
					continue
				}
				tickCh, errCh = c.stream.Read(ctx)
				continue
			}
			if t == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, t)
			} else {
				_ = c.proc.Process(ctx, t)
			}
			c.metrics.RecordLastPrice(t.Symbol, t.Price)
		}
	}
}

// Processor returns the underlying TickProcessor for lifecycle management.
func (c *QuoteCollector) Processor() *TickProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *QuoteCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
