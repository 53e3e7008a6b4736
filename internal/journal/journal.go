package journal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"PortfolioSentinel/internal/model"
)

// Entry is one matched band, as written to the journal.
type Entry struct {
	RunID     string
	Timestamp time.Time // already in the market timezone
	Symbol    string
	Name      string
	Level     int
	Price     decimal.Decimal
	Quantity  int
	Trend     string
	RSI       decimal.Decimal
	DMA20     decimal.Decimal
	DMA50     decimal.Decimal
}

// NewEntry builds an entry from a matched evaluation, rounding every price
// field to 2 decimals.
func NewEntry(runID string, ts time.Time, inst model.Instrument, snap *model.IndicatorSnapshot, res model.TriggerResult) *Entry {
	return &Entry{
		RunID:     runID,
		Timestamp: ts,
		Symbol:    inst.Symbol,
		Name:      inst.Name,
		Level:     res.Index,
		Price:     round2(snap.Price),
		Quantity:  res.Band.Quantity,
		Trend:     snap.Trend.String(),
		RSI:       round2(snap.RSI),
		DMA20:     round2(snap.DMA20),
		DMA50:     round2(snap.DMA50),
	}
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Journal is an append-only sink for matched bands.
type Journal interface {
	Record(ctx context.Context, e *Entry) error
	Close() error
}
