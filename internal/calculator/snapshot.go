package calculator

import (
	"errors"
	"fmt"
	"math"

	"PortfolioSentinel/internal/model"
)

// ErrUnavailable marks a series that cannot produce a valid snapshot.
var ErrUnavailable = errors.New("indicator data unavailable")

// Periods configures the indicator windows.
type Periods struct {
	Fast int `yaml:"fast_period" default:"20" validate:"gt=0"`
	Slow int `yaml:"slow_period" default:"50" validate:"gtfield=Fast"`
	RSI  int `yaml:"rsi_period" default:"14" validate:"gt=0"`
}

// DefaultPeriods returns DMA20 / DMA50 / RSI14.
func DefaultPeriods() Periods {
	return Periods{Fast: 20, Slow: 50, RSI: 14}
}

// Lookback is the minimum number of bars Compute needs.
func (p Periods) Lookback() int {
	if p.RSI+1 > p.Slow {
		return p.RSI + 1
	}
	return p.Slow
}

// Compute derives the indicator snapshot at the last bar of series.
// Every failure wraps ErrUnavailable.
func Compute(series *model.PriceSeries, p Periods) (*model.IndicatorSnapshot, error) {
	if p.Fast <= 0 || p.Slow <= 0 || p.RSI <= 0 {
		return nil, fmt.Errorf("%w: invalid periods %+v", ErrUnavailable, p)
	}
	if series == nil || series.Len() < p.Lookback() {
		n := 0
		if series != nil {
			n = series.Len()
		}
		return nil, fmt.Errorf("%w: %d bars, need %d", ErrUnavailable, n, p.Lookback())
	}

	closes := series.Closes()
	price := closes[len(closes)-1]

	dmaFast, err := CalculateSMA(closes, p.Fast)
	if err != nil {
		return nil, fmt.Errorf("%w: dma%d: %v", ErrUnavailable, p.Fast, err)
	}
	dmaSlow, err := CalculateSMA(closes, p.Slow)
	if err != nil {
		return nil, fmt.Errorf("%w: dma%d: %v", ErrUnavailable, p.Slow, err)
	}
	rsi, err := CalculateRSI(closes, p.RSI)
	if err != nil {
		return nil, fmt.Errorf("%w: rsi%d: %v", ErrUnavailable, p.RSI, err)
	}

	for _, v := range []struct {
		name string
		val  float64
	}{
		{"price", price}, {"dma_fast", dmaFast}, {"dma_slow", dmaSlow}, {"rsi", rsi},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return nil, fmt.Errorf("%w: %s is not finite", ErrUnavailable, v.name)
		}
	}

	return &model.IndicatorSnapshot{
		Price: price,
		DMA20: dmaFast,
		DMA50: dmaSlow,
		RSI:   rsi,
		Trend: ClassifyTrend(price, dmaFast, dmaSlow),
	}, nil
}
