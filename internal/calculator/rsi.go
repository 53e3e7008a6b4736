package calculator

import (
	"errors"
	"math"
)

// CalculateRSI computes RSI at the last close using simple rolling means of
// gains and losses over the last `period` deltas (no Wilder smoothing).
// Requires at least period+1 closes. A non-finite close inside the window
// yields NaN.
//
// A window without losses returns 100, a flat window returns 50.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, errors.New("not enough data for RSI calculation")
	}

	var sumGain, sumLoss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if math.IsNaN(change) || math.IsInf(change, 0) {
			return math.NaN(), nil
		}
		if change > 0 {
			sumGain += change
		} else {
			sumLoss -= change
		}
	}
	avgGain := sumGain / float64(period)
	avgLoss := sumLoss / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0, nil
		}
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
