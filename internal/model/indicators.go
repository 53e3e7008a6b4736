package model

// Trend is the coarse classification of price against its moving averages.
type Trend int

const (
	TrendSideways Trend = iota
	TrendBullish
	TrendBearish
)

func (t Trend) String() string {
	switch t {
	case TrendBullish:
		return "Bullish"
	case TrendBearish:
		return "Bearish"
	default:
		return "Sideways"
	}
}

// IndicatorSnapshot holds the indicators at the latest bar of a series.
// All fields are finite.
type IndicatorSnapshot struct {
	Price float64
	DMA20 float64
	DMA50 float64
	RSI   float64
	Trend Trend
}
