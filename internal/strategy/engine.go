package strategy

import (
	"math"

	"PortfolioSentinel/internal/model"
)

// Evaluate scans bands in priority order and returns the first one containing
// price. Overlapping bands resolve to the earliest listed.
func Evaluate(price float64, bands []model.Band) model.TriggerResult {
	if math.IsNaN(price) {
		return model.TriggerResult{}
	}
	for i, b := range bands {
		if b.Contains(price) {
			return model.TriggerResult{Matched: true, Index: i + 1, Band: b}
		}
	}
	return model.TriggerResult{}
}

// EvaluateSnapshot runs Evaluate against the snapshot's latest price.
func EvaluateSnapshot(snap *model.IndicatorSnapshot, inst model.Instrument) model.TriggerResult {
	if snap == nil {
		return model.TriggerResult{}
	}
	return Evaluate(snap.Price, inst.Bands)
}
