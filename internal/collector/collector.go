package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/model"
)

// MockFetcher returns canned per-symbol data for development and testing.
// Symbols with neither bars nor an error get a generated series around Price.
type MockFetcher struct {
	Price  float64
	Bars   map[string][]model.OHLCV
	Errors map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

// GenerateMockBars builds a gently rising daily series ending today.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// BarsFromCloses wraps a close series into daily bars ending today.
func BarsFromCloses(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:  time.Now().AddDate(0, 0, -(len(closes) - i)),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}

// Collector fetches daily bars and computes the indicator snapshot.
type Collector struct {
	Fetcher  Fetcher
	Periods  calculator.Periods
	Lookback int           // bars requested from the fetcher
	Timeout  time.Duration // per-fetch bound, zero means none
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, periods calculator.Periods, lookback int, timeout time.Duration) *Collector {
	if lookback < periods.Lookback() {
		lookback = periods.Lookback()
	}
	return &Collector{Fetcher: fetcher, Periods: periods, Lookback: lookback, Timeout: timeout}
}

// Collect fetches market data for inst and computes its snapshot.
// Every failure wraps calculator.ErrUnavailable.
func (c *Collector) Collect(ctx context.Context, inst model.Instrument) (*model.IndicatorSnapshot, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, inst.Symbol, c.Lookback)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch daily bars: %v", calculator.ErrUnavailable, err)
	}
	series := &model.PriceSeries{Symbol: inst.Symbol, Bars: bars, FetchedAt: time.Now()}

	snap, err := calculator.Compute(series, c.Periods)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("symbol", inst.Symbol).
		Str("source", c.Fetcher.Name()).
		Int("bars", series.Len()).
		Float64("price", snap.Price).
		Float64("dma20", snap.DMA20).
		Float64("dma50", snap.DMA50).
		Float64("rsi", snap.RSI).
		Msg("indicators computed")
	return snap, nil
}
