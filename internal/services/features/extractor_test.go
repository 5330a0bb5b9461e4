package features

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/indicators"

	"github.com/stretchr/testify/suite"
)

type ExtractorTestSuite struct {
	suite.Suite
}

func TestExtractorSuite(t *testing.T) {
	suite.Run(t, new(ExtractorTestSuite))
}

func syntheticBars(n int) []models.Bar {
	bars := make([]models.Bar, n)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := 0; i < n; i++ {
		// deterministic oscillating walk
		drift := 0.3 * math.Sin(float64(i)/7)
		price = price + drift + 0.1
		bars[i] = models.Bar{
			Bucket: t0.AddDate(0, 0, i),
			Symbol: "TEST",
			Open:   price - 0.2,
			High:   price + 0.5,
			Low:    price - 0.5,
			Close:  price,
			Volume: 1000 + 50*float64(i%10),
		}
	}
	return bars
}

func (s *ExtractorTestSuite) TestExtractShape() {
	bars := syntheticBars(120)
	m, err := Extract(bars)
	s.NoError(err)
	s.Equal(Warmup, m.StartIndex)
	s.Len(m.X, 120-Warmup)
	for _, row := range m.X {
		s.Len(row, len(Names))
		for _, v := range row {
			s.False(math.IsNaN(v))
			s.False(math.IsInf(v, 0))
		}
	}
}

func (s *ExtractorTestSuite) TestExtractInsufficientData() {
	_, err := Extract(syntheticBars(Warmup))
	s.ErrorIs(err, indicators.ErrInsufficientData)
}

func (s *ExtractorTestSuite) TestFitApplyZScore() {
	X := [][]float64{
		{1, 10},
		{3, 30},
	}
	st, err := Fit(X)
	s.NoError(err)
	s.InDelta(2.0, st.Mean[0], 1e-9)
	s.InDelta(20.0, st.Mean[1], 1e-9)

	z, err := st.Apply([]float64{3, 30})
	s.NoError(err)
	s.InDelta(1.0, z[0], 1e-9)
	s.InDelta(1.0, z[1], 1e-9)

	zz, err := st.ApplyAll(X)
	s.NoError(err)
	s.InDelta(-1.0, zz[0][0], 1e-9)
}

func (s *ExtractorTestSuite) TestConstantFeatureDoesNotDivideByZero() {
	X := [][]float64{{5}, {5}, {5}}
	st, err := Fit(X)
	s.NoError(err)
	z, err := st.Apply([]float64{5})
	s.NoError(err)
	s.InDelta(0.0, z[0], 1e-9)
}

func (s *ExtractorTestSuite) TestApplyDimensionMismatch() {
	st := &Stats{Mean: []float64{0, 0}, Std: []float64{1, 1}}
	_, err := st.Apply([]float64{1})
	s.Error(err)
}
