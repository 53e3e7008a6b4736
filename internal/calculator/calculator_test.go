package calculator

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"PortfolioSentinel/internal/model"
)

func seriesOf(closes ...float64) *model.PriceSeries {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c}
	}
	return &model.PriceSeries{Symbol: "TEST.NS", Bars: bars}
}

func ramp(from float64, n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func approx(t *testing.T, label string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %.10f, want %.10f", label, got, want)
	}
}

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "sma3", sma, 4)

	if _, err := CalculateSMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := CalculateSMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestCalculateRSI_RollingMean(t *testing.T) {
	// deltas +1, -1, +2: avgGain 1, avgLoss 1/3, RS 3
	rsi, err := CalculateRSI([]float64{1, 2, 1, 3}, 3)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "rsi", rsi, 75)

	// only the last `period` deltas count: the early -10 drop is outside the window
	rsi, err = CalculateRSI([]float64{20, 10, 11, 10, 12}, 3)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "windowed rsi", rsi, 75)
}

func TestCalculateRSI_ZeroLoss(t *testing.T) {
	rsi, err := CalculateRSI(ramp(10, 20, 1), 14)
	if err != nil {
		t.Fatal(err)
	}
	if rsi != 100 {
		t.Errorf("all gains: expected 100, got %v", rsi)
	}

	rsi, err = CalculateRSI(ramp(10, 20, 0), 14)
	if err != nil {
		t.Fatal(err)
	}
	if rsi != 50 {
		t.Errorf("flat window: expected 50, got %v", rsi)
	}

	rsi, err = CalculateRSI(ramp(50, 20, -1), 14)
	if err != nil {
		t.Fatal(err)
	}
	if rsi != 0 {
		t.Errorf("all losses: expected 0, got %v", rsi)
	}
}

func TestCalculateRSI_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	closes := make([]float64, 300)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] * (1 + (rng.Float64()-0.5)*0.06)
	}
	for end := 15; end <= len(closes); end++ {
		rsi, err := CalculateRSI(closes[:end], 14)
		if err != nil {
			t.Fatal(err)
		}
		if math.IsNaN(rsi) || rsi < 0 || rsi > 100 {
			t.Fatalf("rsi out of range at %d: %v", end, rsi)
		}
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name                string
		price, dma20, dma50 float64
		want                model.Trend
	}{
		{"bull", 80, 76, 70, model.TrendBullish},
		{"bear", 74.5, 76, 78, model.TrendBearish},
		{"mixed", 77, 76, 78, model.TrendSideways},
		{"price equals dma20", 76, 76, 70, model.TrendSideways},
		{"dma20 equals dma50", 80, 76, 76, model.TrendSideways},
		{"price equals dma20 falling", 76, 76, 80, model.TrendSideways},
	}
	for _, tt := range tests {
		if got := ClassifyTrend(tt.price, tt.dma20, tt.dma50); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestCompute_ShortSeries(t *testing.T) {
	for n := 0; n < 50; n++ {
		_, err := Compute(seriesOf(ramp(100, n, 1)...), DefaultPeriods())
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("%d bars: expected ErrUnavailable, got %v", n, err)
		}
	}
	if _, err := Compute(nil, DefaultPeriods()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("nil series: expected ErrUnavailable, got %v", err)
	}
	if _, err := Compute(seriesOf(ramp(100, 50, 1)...), DefaultPeriods()); err != nil {
		t.Errorf("50 bars should be enough: %v", err)
	}
}

func TestCompute_ExactMovingAverages(t *testing.T) {
	// closes 1..60
	snap, err := Compute(seriesOf(ramp(1, 60, 1)...), DefaultPeriods())
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "price", snap.Price, 60)
	approx(t, "dma20", snap.DMA20, 50.5) // mean(41..60)
	approx(t, "dma50", snap.DMA50, 35.5) // mean(11..60)
	approx(t, "rsi", snap.RSI, 100)
	if snap.Trend != model.TrendBullish {
		t.Errorf("expected Bullish, got %s", snap.Trend)
	}
}

func TestCompute_HandBuiltBearishSeries(t *testing.T) {
	closes := make([]float64, 0, 50)
	for i := 0; i < 10; i++ {
		closes = append(closes, 79)
	}
	for i := 0; i < 20; i++ {
		closes = append(closes, 79.5)
	}
	for i := 0; i < 10; i++ {
		closes = append(closes, 75.7)
	}
	for i := 0; i < 9; i++ {
		closes = append(closes, 76.5)
	}
	closes = append(closes, 74.5)

	snap, err := Compute(seriesOf(closes...), DefaultPeriods())
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "price", snap.Price, 74.5)
	approx(t, "dma20", snap.DMA20, 76)
	approx(t, "dma50", snap.DMA50, 78)
	// window deltas: one +0.8, one -2.0
	approx(t, "rsi", snap.RSI, 100-100/1.4)
	if snap.Trend != model.TrendBearish {
		t.Errorf("expected Bearish, got %s", snap.Trend)
	}
}

func TestCompute_NonFinite(t *testing.T) {
	closes := ramp(100, 60, 0.5)
	closes[len(closes)-1] = math.NaN()
	if _, err := Compute(seriesOf(closes...), DefaultPeriods()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NaN last close: expected ErrUnavailable, got %v", err)
	}

	closes = ramp(100, 60, 0.5)
	closes[30] = math.NaN() // inside the DMA50 window only
	if _, err := Compute(seriesOf(closes...), DefaultPeriods()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NaN in slow window: expected ErrUnavailable, got %v", err)
	}

	closes = ramp(100, 60, 0.5)
	closes[0] = math.NaN() // outside every window
	if _, err := Compute(seriesOf(closes...), DefaultPeriods()); err != nil {
		t.Errorf("NaN outside windows should not matter: %v", err)
	}
}

func TestCompute_InvalidPeriods(t *testing.T) {
	_, err := Compute(seriesOf(ramp(1, 60, 1)...), Periods{Fast: 0, Slow: 50, RSI: 14})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
