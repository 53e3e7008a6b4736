package calculator

import "PortfolioSentinel/internal/model"

// ClassifyTrend labels the MA alignment at a single point.
// Bull alignment: price > DMA20 > DMA50
// Bear alignment: price < DMA20 < DMA50
func ClassifyTrend(price, dma20, dma50 float64) model.Trend {
	switch {
	case price > dma20 && dma20 > dma50:
		return model.TrendBullish
	case price < dma20 && dma20 < dma50:
		return model.TrendBearish
	default:
		return model.TrendSideways
	}
}
