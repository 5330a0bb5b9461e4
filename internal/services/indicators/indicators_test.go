package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type IndicatorsTestSuite struct {
	suite.Suite
}

func TestIndicatorsSuite(t *testing.T) {
	suite.Run(t, new(IndicatorsTestSuite))
}

func (s *IndicatorsTestSuite) TestSMA() {
	out, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	s.NoError(err)
	s.True(math.IsNaN(out[0]))
	s.True(math.IsNaN(out[1]))
	s.InDelta(2.0, out[2], 1e-9)
	s.InDelta(3.0, out[3], 1e-9)
	s.InDelta(4.0, out[4], 1e-9)
}

func (s *IndicatorsTestSuite) TestSMAInvalidPeriod() {
	_, err := SMA([]float64{1, 2, 3}, 0)
	s.ErrorIs(err, ErrInvalidPeriod)
}

func (s *IndicatorsTestSuite) TestSMAInsufficientData() {
	_, err := SMA([]float64{1, 2}, 3)
	s.ErrorIs(err, ErrInsufficientData)
}

func (s *IndicatorsTestSuite) TestEMASeededWithSMA() {
	out, err := EMA([]float64{2, 4, 6, 8}, 3)
	s.NoError(err)
	// Seed = SMA(2,4,6) = 4; k = 0.5; next = (8-4)*0.5 + 4 = 6.
	s.InDelta(4.0, out[2], 1e-9)
	s.InDelta(6.0, out[3], 1e-9)
}

func (s *IndicatorsTestSuite) TestRSIAllGains() {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out, err := RSI(closes, 5)
	s.NoError(err)
	s.InDelta(100.0, out[len(out)-1], 1e-9)
}

func (s *IndicatorsTestSuite) TestRSIWilderSmoothing() {
	// Classic 14-period example from Wilder's data.
	closes := []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
		46.03, 46.41, 46.22, 45.64,
	}
	out, err := RSI(closes, 14)
	s.NoError(err)
	s.True(math.IsNaN(out[13]))
	s.InDelta(70.46, out[14], 0.1)
	s.InDelta(66.25, out[15], 0.1)
}

func (s *IndicatorsTestSuite) TestRSIInsufficientData() {
	_, err := RSI([]float64{1, 2, 3}, 14)
	s.ErrorIs(err, ErrInsufficientData)
}

func (s *IndicatorsTestSuite) TestMACDShape() {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	res, err := MACD(closes, 12, 26, 9)
	s.NoError(err)
	s.Len(res.Line, 60)
	s.True(math.IsNaN(res.Signal[24]))
	s.False(math.IsNaN(res.Line[25]))
	s.False(math.IsNaN(res.Signal[33]))
	s.False(math.IsNaN(res.Histogram[59]))
	// Steady uptrend: fast EMA above slow EMA.
	s.Greater(res.Line[59], 0.0)
}

func (s *IndicatorsTestSuite) TestMACDFastMustBeBelowSlow() {
	closes := make([]float64, 60)
	_, err := MACD(closes, 26, 12, 9)
	s.ErrorIs(err, ErrInvalidPeriod)
}

func (s *IndicatorsTestSuite) TestBollingerBands() {
	closes := []float64{2, 4, 6, 8, 10}
	res, err := Bollinger(closes, 5, 2.0)
	s.NoError(err)
	// mean=6, population sigma=sqrt(8)
	sigma := math.Sqrt(8)
	s.InDelta(6.0, res.Middle[4], 1e-9)
	s.InDelta(6.0+2*sigma, res.Upper[4], 1e-9)
	s.InDelta(6.0-2*sigma, res.Lower[4], 1e-9)

	bw := res.Bandwidth(4)
	s.InDelta(4*sigma/6.0, bw, 1e-9)

	pb := res.PercentB(4, 10)
	s.InDelta((10.0-(6.0-2*sigma))/(4*sigma), pb, 1e-9)
}

func (s *IndicatorsTestSuite) TestBollingerFlatSeries() {
	closes := []float64{5, 5, 5, 5, 5}
	res, err := Bollinger(closes, 5, 2.0)
	s.NoError(err)
	s.InDelta(0.5, res.PercentB(4, 5), 1e-9)
}

func (s *IndicatorsTestSuite) TestATRTrueRange() {
	s.InDelta(3.0, trueRange(10, 7, 8), 1e-9)
	s.InDelta(4.0, trueRange(10, 7, 6), 1e-9)  // |h - prevC|
	s.InDelta(5.0, trueRange(10, 7, 12), 1e-9) // |l - prevC|
}

func (s *IndicatorsTestSuite) TestATR() {
	high := []float64{10, 11, 12, 13, 14}
	low := []float64{9, 10, 11, 12, 13}
	close := []float64{9.5, 10.5, 11.5, 12.5, 13.5}
	out, err := ATR(high, low, close, 3)
	s.NoError(err)
	s.True(math.IsNaN(out[2]))
	// Each TR = max(1, 1.5, 0.5) = 1.5; Wilder average stays 1.5.
	s.InDelta(1.5, out[3], 1e-9)
	s.InDelta(1.5, out[4], 1e-9)
}

func (s *IndicatorsTestSuite) TestATRLengthMismatch() {
	_, err := ATR([]float64{1, 2}, []float64{1}, []float64{1, 2}, 1)
	s.Error(err)
}

func (s *IndicatorsTestSuite) TestLogReturns() {
	out, err := LogReturns([]float64{100, 110, 99})
	s.NoError(err)
	s.Len(out, 2)
	s.InDelta(math.Log(1.1), out[0], 1e-9)
	s.InDelta(math.Log(0.9), out[1], 1e-9)
}

func (s *IndicatorsTestSuite) TestLogReturnsRejectsNonPositive() {
	_, err := LogReturns([]float64{100, 0, 99})
	s.Error(err)
}

func (s *IndicatorsTestSuite) TestRealizedVol() {
	v, err := RealizedVol([]float64{0.01, -0.01, 0.01, -0.01}, 252)
	s.NoError(err)
	s.InDelta(0.01*math.Sqrt(252), v, 1e-9)
}

func (s *IndicatorsTestSuite) TestLatest() {
	_, err := Latest([]float64{math.NaN()})
	s.ErrorIs(err, ErrInsufficientData)

	v, err := Latest([]float64{math.NaN(), 3.5})
	s.NoError(err)
	s.InDelta(3.5, v, 1e-9)
}
