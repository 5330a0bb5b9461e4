// Package scheduler refreshes watchlist history on a cron schedule so the
// cache and the bar store stay warm.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/logger"
)

type Scheduler struct {
	cron      *cron.Cron
	market    *usecase.MarketDataUseCase
	metrics   drepo.Metrics
	l         *logger.Logger
	spec      string
	watchlist []string
}

func New(market *usecase.MarketDataUseCase, metrics drepo.Metrics, l *logger.Logger, spec string, watchlist []string) *Scheduler {
	if spec == "" {
		spec = "0 6 * * *" // daily, after US close in UTC terms
	}
	return &Scheduler{
		cron:      cron.New(),
		market:    market,
		metrics:   metrics,
		l:         l,
		spec:      spec,
		watchlist: watchlist,
	}
}

func (s *Scheduler) Start() error {
	if len(s.watchlist) == 0 {
		return fmt.Errorf("scheduler: empty watchlist")
	}
	if _, err := s.cron.AddFunc(s.spec, s.refresh); err != nil {
		return fmt.Errorf("scheduler: bad cron spec %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.l.Info("scheduler started",
		logger.String("spec", s.spec),
		logger.Strings("watchlist", s.watchlist))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.l.Info("scheduler stopped")
}

// refresh re-fetches a year of daily history per symbol. One symbol failing
// never aborts the rest.
func (s *Scheduler) refresh() {
	for _, symbol := range s.watchlist {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if _, err := s.market.GetHistory(ctx, symbol, "1y", "1d", 0); err != nil {
			s.metrics.RecordError("scheduler_refresh")
			s.l.Warn("watchlist refresh failed",
				logger.String("symbol", symbol),
				logger.Error(err))
			cancel()
			continue
		}
		if _, err := s.market.GetQuote(ctx, symbol); err != nil {
			s.metrics.RecordError("scheduler_refresh")
			s.l.Warn("watchlist quote refresh failed",
				logger.String("symbol", symbol),
				logger.Error(err))
		}
		cancel()
	}
	s.l.Info("watchlist refresh complete", logger.Int("symbols", len(s.watchlist)))
}
