package notifier

import (
	"fmt"
	"strings"
	"time"

	"PortfolioSentinel/internal/model"
)

const (
	StartBanner = "📡 Portfolio Trigger Alert – Run Started"
	EndBanner   = "✅ Run completed successfully"
)

// FormatAlert formats a matched band into the Telegram alert body.
func FormatAlert(inst model.Instrument, snap *model.IndicatorSnapshot, res model.TriggerResult, currency string) string {
	var b strings.Builder
	b.WriteString("🚨 *AVERAGE OUT ALERT*\n\n")
	fmt.Fprintf(&b, "*Stock:* %s\n", inst.Name)
	fmt.Fprintf(&b, "*Symbol:* %s\n", inst.Symbol)
	fmt.Fprintf(&b, "*Price:* %s%.2f\n", currency, snap.Price)
	fmt.Fprintf(&b, "*Level:* %d\n", res.Index)
	fmt.Fprintf(&b, "*Qty:* %d\n\n", res.Band.Quantity)
	fmt.Fprintf(&b, "*Trend:* %s\n", snap.Trend)
	fmt.Fprintf(&b, "*RSI:* %.1f\n", snap.RSI)
	fmt.Fprintf(&b, "*20 DMA:* %s%.2f\n", currency, snap.DMA20)
	fmt.Fprintf(&b, "*50 DMA:* %s%.2f", currency, snap.DMA50)
	return b.String()
}

// StatusLabel is the console status for a trigger result.
func StatusLabel(res model.TriggerResult) string {
	if !res.Matched {
		return "WAIT"
	}
	return "AVERAGE ZONE " + res.Level()
}

// FormatStatusLine summarizes one evaluated instrument for the console.
func FormatStatusLine(ts time.Time, symbol string, snap *model.IndicatorSnapshot, res model.TriggerResult, currency string) string {
	return fmt.Sprintf("[%s] %s | %s%.2f | Trend: %s | RSI: %.1f | Status: %s",
		ts.Format("2006-01-02 15:04:05"), symbol, currency, snap.Price, snap.Trend, snap.RSI, StatusLabel(res))
}

// FormatUnavailableLine is the console line for an instrument without data.
func FormatUnavailableLine(ts time.Time, symbol string) string {
	return fmt.Sprintf("[%s] %s ⚠️ Data unavailable", ts.Format("2006-01-02 15:04:05"), symbol)
}

// FormatLevels lists every instrument's bands, e.g. for the /levels command.
func FormatLevels(instruments []model.Instrument, currency string) string {
	var b strings.Builder
	b.WriteString("📋 *Average-down levels*\n")
	for _, inst := range instruments {
		fmt.Fprintf(&b, "\n*%s* (%s, %s)\n", inst.Name, inst.Symbol, inst.Category)
		for i, band := range inst.Bands {
			fmt.Fprintf(&b, "  L%d: %s%g – %s%g × %d\n", i+1, currency, band.Low, currency, band.High, band.Quantity)
		}
	}
	return b.String()
}
