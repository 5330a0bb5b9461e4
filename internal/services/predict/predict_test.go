package predict

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/features"

	"github.com/stretchr/testify/suite"
)

type PredictTestSuite struct {
	suite.Suite
}

func TestPredictSuite(t *testing.T) {
	suite.Run(t, new(PredictTestSuite))
}

func trendBars(n int, drift float64) []models.Bar {
	bars := make([]models.Bar, n)
	t0 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := 0; i < n; i++ {
		price *= 1 + drift + 0.002*math.Sin(float64(i)/5)
		bars[i] = models.Bar{
			Bucket: t0.AddDate(0, 0, i),
			Symbol: "TEST",
			Open:   price * 0.999,
			High:   price * 1.004,
			Low:    price * 0.996,
			Close:  price,
			Volume: 1000 + 10*float64(i%7),
		}
	}
	return bars
}

func (s *PredictTestSuite) TestSoftmaxSumsToOne() {
	p := softmax([]float64{1, 2, 3})
	s.InDelta(1.0, p[0]+p[1]+p[2], 1e-9)
	s.Greater(p[2], p[1])
	s.Greater(p[1], p[0])
}

func (s *PredictTestSuite) TestSoftmaxLargeLogitsStable() {
	p := softmax([]float64{1000, 1001, 999})
	s.InDelta(1.0, p[0]+p[1]+p[2], 1e-9)
	s.False(math.IsNaN(p[0]))
}

func (s *PredictTestSuite) TestTrainLearnsUptrend() {
	// Strong persistent drift: the dominant class is "up" and the model
	// should at least learn the majority class.
	bars := trendBars(400, 0.01)
	cfg := DefaultTrainConfig()
	cfg.Epochs = 100

	model, err := Train("TEST", bars, cfg)
	s.Require().NoError(err)
	s.Equal("TEST", model.Symbol)
	s.Greater(model.Samples, minTrainSamples)
	s.GreaterOrEqual(model.ValAccuracy, 0.5)

	m, err := features.Extract(bars)
	s.Require().NoError(err)
	probs, class, conf, err := model.Probabilities(m.X[len(m.X)-1])
	s.Require().NoError(err)
	s.Equal("up", class)
	s.InDelta(1.0, probs["up"]+probs["down"]+probs["flat"], 1e-9)
	s.GreaterOrEqual(conf, probs["down"])
}

func (s *PredictTestSuite) TestTrainRejectsShortSeries() {
	bars := trendBars(60, 0.001)
	_, err := Train("TEST", bars, DefaultTrainConfig())
	s.Error(err)
}

func (s *PredictTestSuite) TestTrainRejectsBadConfig() {
	bars := trendBars(400, 0.001)
	cfg := DefaultTrainConfig()
	cfg.HorizonBars = 0
	_, err := Train("TEST", bars, cfg)
	s.Error(err)
}

func (s *PredictTestSuite) TestRegistry() {
	r := NewRegistry()
	_, err := r.Get("AAPL")
	s.ErrorIs(err, ErrModelNotFound)

	r.Put(&Model{Symbol: "aapl"})
	m, err := r.Get("AAPL")
	s.NoError(err)
	s.Equal("aapl", m.Symbol)
	s.Len(r.Symbols(), 1)
}
