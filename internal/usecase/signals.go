package usecase

import (
	"context"
	"sync"
	"time"

	"StockPulse/internal/domain/models"
	dservice "StockPulse/internal/domain/service"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// SignalsUseCase fans out to quote, indicators, prediction, and sentiment in
// parallel and folds the results into one response. Component failures land
// in the Errors map instead of failing the whole request.
type SignalsUseCase struct {
	market    *MarketDataUseCase
	analysis  *AnalysisUseCase
	predictor dservice.Predictor
	news      *NewsUseCase
	l         *logger.Logger
	timeout   time.Duration
}

func NewSignalsUseCase(
	market *MarketDataUseCase,
	analysis *AnalysisUseCase,
	predictor dservice.Predictor,
	news *NewsUseCase,
	l *logger.Logger,
) *SignalsUseCase {
	return &SignalsUseCase{
		market:    market,
		analysis:  analysis,
		predictor: predictor,
		news:      news,
		l:         l,
		timeout:   15 * time.Second,
	}
}

// GetSignals builds the consolidated view for a symbol.
func (uc *SignalsUseCase) GetSignals(ctx context.Context, symbol string) (*models.AggregateSignals, error) {
	symbol = util.NormalizeSymbol(symbol)

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	out := &models.AggregateSignals{
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
		Errors:    make(map[string]string),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(component string, err error) {
		mu.Lock()
		out.Errors[component] = err.Error()
		mu.Unlock()
		uc.l.Warn("signals component failed",
			logger.String("symbol", symbol),
			logger.String("component", component),
			logger.Error(err))
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		q, err := uc.market.GetQuote(ctx, symbol)
		if err != nil {
			fail("quote", err)
			return
		}
		mu.Lock()
		out.Quote = q
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		ind, err := uc.analysis.GetIndicators(ctx, symbol, "6mo", "1d")
		if err != nil {
			fail("indicators", err)
			return
		}
		mu.Lock()
		out.Indicators = ind
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		pred, err := uc.predictor.Predict(ctx, symbol, 0)
		if err != nil {
			fail("prediction", err)
			return
		}
		mu.Lock()
		out.Prediction = pred
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		sent, err := uc.news.GetSentiment(ctx, symbol, 20)
		if err != nil {
			fail("sentiment", err)
			return
		}
		mu.Lock()
		out.Sentiment = sent
		mu.Unlock()
	}()

	wg.Wait()

	if len(out.Errors) == 0 {
		out.Errors = nil
	}
	return out, nil
}
