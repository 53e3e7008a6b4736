package scheduler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/journal"
	"PortfolioSentinel/internal/metrics"
	"PortfolioSentinel/internal/model"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) Send(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return n.err
}

type memJournal struct {
	entries []*journal.Entry
	err     error
}

func (j *memJournal) Record(_ context.Context, e *journal.Entry) error {
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, e)
	return nil
}

func (j *memJournal) Close() error { return nil }

// bearishCloses ends at 74.5 with DMA20 76, DMA50 78 and RSI 28.57.
func bearishCloses() []float64 {
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
	return append(closes, 74.5)
}

func divopp() model.Instrument {
	return model.Instrument{
		Symbol:   "DIVOPPBEES.NS",
		Name:     "Nippon India ETF Dividend Opportunities",
		Category: model.CategoryETF,
		Bands: []model.Band{
			{Low: 74, High: 75, Quantity: 35},
			{Low: 70, High: 71, Quantity: 50},
		},
	}
}

func itc() model.Instrument {
	return model.Instrument{
		Symbol:   "ITC.NS",
		Name:     "ITC",
		Category: model.CategoryStock,
		Bands:    []model.Band{{Low: 380, High: 390, Quantity: 10}},
	}
}

type fixture struct {
	runner   *Runner
	notifier *recordingNotifier
	journal  *memJournal
	out      *bytes.Buffer
	fetcher  *collector.MockFetcher
}

func newFixture(instruments ...model.Instrument) *fixture {
	ist := time.FixedZone("IST", 5*3600+1800)
	f := &fixture{
		notifier: &recordingNotifier{},
		journal:  &memJournal{},
		out:      &bytes.Buffer{},
		fetcher: &collector.MockFetcher{
			Price:  100,
			Bars:   map[string][]model.OHLCV{},
			Errors: map[string]error{},
		},
	}
	col := collector.NewCollector(f.fetcher, calculator.DefaultPeriods(), 60, time.Second)
	f.runner = NewRunner(instruments, col, f.notifier, f.journal, nil)
	f.runner.Out = f.out
	f.runner.Location = ist
	f.runner.Now = func() time.Time { return time.Date(2026, 10, 16, 10, 5, 7, 0, time.UTC) }
	return f
}

func (f *fixture) lines() []string {
	return strings.Split(strings.TrimRight(f.out.String(), "\n"), "\n")
}

func TestRun_MatchSendsAlertAndJournals(t *testing.T) {
	f := newFixture(divopp())
	f.fetcher.Bars["DIVOPPBEES.NS"] = collector.BarsFromCloses(bearishCloses()...)

	sum := f.runner.Run(context.Background())

	require.Len(t, sum.Outcomes, 1)
	out := sum.Outcomes[0]
	assert.Equal(t, model.StatusMatched, out.Status)
	assert.Equal(t, 1, out.Result.Index)
	assert.Equal(t, model.TrendBearish, out.Snapshot.Trend)
	assert.InDelta(t, 28.5714, out.Snapshot.RSI, 1e-3)

	require.Len(t, f.notifier.messages, 1)
	msg := f.notifier.messages[0]
	assert.Contains(t, msg, "*Stock:* Nippon India ETF Dividend Opportunities")
	assert.Contains(t, msg, "*Price:* ₹74.50")
	assert.Contains(t, msg, "*Level:* 1")
	assert.Contains(t, msg, "*Qty:* 35")
	assert.Contains(t, msg, "*Trend:* Bearish")

	require.Len(t, f.journal.entries, 1)
	e := f.journal.entries[0]
	assert.Equal(t, sum.RunID, e.RunID)
	assert.Equal(t, "DIVOPPBEES.NS", e.Symbol)
	assert.Equal(t, 1, e.Level)
	assert.Equal(t, 35, e.Quantity)
	assert.Equal(t, "74.5", e.Price.String())
	assert.Equal(t, "2026-10-16 15:35:07", e.Timestamp.Format("2006-01-02 15:04:05"))

	lines := f.lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "📡 Portfolio Trigger Alert – Run Started", lines[0])
	assert.Equal(t, "[2026-10-16 15:35:07] DIVOPPBEES.NS | ₹74.50 | Trend: Bearish | RSI: 28.6 | Status: AVERAGE ZONE L1", lines[1])
	assert.Equal(t, "✅ Run completed successfully", lines[2])
}

func TestRun_NoMatchWaits(t *testing.T) {
	f := newFixture(itc())
	f.fetcher.Price = 450

	sum := f.runner.Run(context.Background())

	require.Len(t, sum.Outcomes, 1)
	assert.Equal(t, model.StatusWait, sum.Outcomes[0].Status)
	assert.Empty(t, f.notifier.messages)
	assert.Empty(t, f.journal.entries)
	assert.Contains(t, f.lines()[1], "| Status: WAIT")
}

func TestRun_UnavailableIsNotFatal(t *testing.T) {
	f := newFixture(itc(), divopp())
	f.fetcher.Errors["ITC.NS"] = errors.New("connection reset")
	f.fetcher.Bars["DIVOPPBEES.NS"] = collector.BarsFromCloses(bearishCloses()...)

	sum := f.runner.Run(context.Background())

	require.Len(t, sum.Outcomes, 2)
	assert.Equal(t, model.StatusUnavailable, sum.Outcomes[0].Status)
	assert.ErrorIs(t, sum.Outcomes[0].Err, calculator.ErrUnavailable)
	assert.Equal(t, model.StatusMatched, sum.Outcomes[1].Status)
	assert.Len(t, f.notifier.messages, 1)
	assert.Len(t, f.journal.entries, 1)

	lines := f.lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "[2026-10-16 15:35:07] ITC.NS ⚠️ Data unavailable", lines[1])
	assert.Contains(t, lines[2], "DIVOPPBEES.NS")
}

func TestRun_ShortHistoryIsUnavailable(t *testing.T) {
	f := newFixture(divopp())
	f.fetcher.Bars["DIVOPPBEES.NS"] = collector.BarsFromCloses(bearishCloses()[10:]...)

	sum := f.runner.Run(context.Background())

	assert.Equal(t, model.StatusUnavailable, sum.Outcomes[0].Status)
	assert.Empty(t, f.notifier.messages)
	assert.Empty(t, f.journal.entries)
}

func TestRun_NotifyFailureStillJournals(t *testing.T) {
	f := newFixture(divopp())
	f.fetcher.Bars["DIVOPPBEES.NS"] = collector.BarsFromCloses(bearishCloses()...)
	f.notifier.err = errors.New("telegram API returned 502")
	m := metrics.New()
	f.runner.Metrics = m

	sum := f.runner.Run(context.Background())

	out := sum.Outcomes[0]
	assert.Equal(t, model.StatusMatched, out.Status)
	assert.Error(t, out.NotifyErr)
	assert.Len(t, f.journal.entries, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotifyFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AlertsTotal.WithLabelValues("DIVOPPBEES.NS", "L1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal))
}

func TestRun_JournalFailureIsReported(t *testing.T) {
	f := newFixture(divopp(), itc())
	f.fetcher.Bars["DIVOPPBEES.NS"] = collector.BarsFromCloses(bearishCloses()...)
	f.journal.err = errors.New("disk full")

	sum := f.runner.Run(context.Background())

	require.Len(t, sum.Outcomes, 2)
	assert.Error(t, sum.Outcomes[0].JournalErr)
	assert.Len(t, f.notifier.messages, 1)
	assert.Equal(t, model.StatusWait, sum.Outcomes[1].Status)
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(divopp(), itc())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum := f.runner.Run(ctx)

	assert.True(t, sum.Cancelled)
	assert.Empty(t, sum.Outcomes)
	assert.Empty(t, f.notifier.messages)
}

func TestRun_OutcomeMetrics(t *testing.T) {
	f := newFixture(itc(), divopp())
	f.fetcher.Errors["ITC.NS"] = errors.New("timeout")
	m := metrics.New()
	f.runner.Metrics = m

	f.runner.Run(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutcomesTotal.WithLabelValues(string(model.StatusUnavailable))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutcomesTotal.WithLabelValues(string(model.StatusWait))))
}

func TestRunSummary_String(t *testing.T) {
	sum := &RunSummary{RunID: "abc", Outcomes: []model.Outcome{
		{Status: model.StatusMatched},
		{Status: model.StatusWait},
		{Status: model.StatusWait},
		{Status: model.StatusUnavailable},
	}}
	assert.Equal(t, "run abc: 4 instruments, 1 matched, 2 waiting, 1 unavailable", sum.String())
}
