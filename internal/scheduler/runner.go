package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"PortfolioSentinel/internal/journal"
	"PortfolioSentinel/internal/metrics"
	"PortfolioSentinel/internal/model"
	"PortfolioSentinel/internal/notifier"
	"PortfolioSentinel/internal/strategy"
)

// SnapshotSource produces the indicator snapshot of one instrument.
type SnapshotSource interface {
	Collect(ctx context.Context, inst model.Instrument) (*model.IndicatorSnapshot, error)
}

// RunSummary is the result of one pass over the instrument table.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []model.Outcome
	Cancelled  bool
}

// Count returns how many outcomes ended with status.
func (s *RunSummary) Count(status model.OutcomeStatus) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func (s *RunSummary) String() string {
	return fmt.Sprintf("run %s: %d instruments, %d matched, %d waiting, %d unavailable",
		s.RunID, len(s.Outcomes), s.Count(model.StatusMatched), s.Count(model.StatusWait), s.Count(model.StatusUnavailable))
}

// Runner evaluates every instrument once and dispatches the results.
type Runner struct {
	Instruments   []model.Instrument
	Source        SnapshotSource
	Notifier      notifier.Notifier
	Journal       journal.Journal
	Metrics       *metrics.Metrics
	Out           io.Writer
	Location      *time.Location
	Currency      string
	NotifyTimeout time.Duration
	Now           func() time.Time
}

// NewRunner creates a Runner writing status lines to stdout.
func NewRunner(instruments []model.Instrument, src SnapshotSource, n notifier.Notifier, j journal.Journal, m *metrics.Metrics) *Runner {
	return &Runner{
		Instruments:   instruments,
		Source:        src,
		Notifier:      n,
		Journal:       j,
		Metrics:       m,
		Out:           os.Stdout,
		Location:      time.Local,
		Currency:      "₹",
		NotifyTimeout: 10 * time.Second,
		Now:           time.Now,
	}
}

func (r *Runner) now() time.Time {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

func (r *Runner) println(line string) {
	if r.Out == nil {
		return
	}
	fmt.Fprintln(r.Out, line)
}

// Run processes every instrument in declaration order. Per-instrument failures
// never abort the run; only ctx cancellation stops it early.
func (r *Runner) Run(ctx context.Context) *RunSummary {
	sum := &RunSummary{RunID: uuid.NewString(), StartedAt: r.now()}
	logger := log.With().Str("run_id", sum.RunID).Logger()

	r.println(notifier.StartBanner)
	logger.Info().Int("instruments", len(r.Instruments)).Msg("run started")

	for _, inst := range r.Instruments {
		if ctx.Err() != nil {
			sum.Cancelled = true
			logger.Warn().Err(ctx.Err()).Msg("run cancelled")
			break
		}
		out := r.evaluate(ctx, sum, inst)
		sum.Outcomes = append(sum.Outcomes, out)
		if r.Metrics != nil {
			r.Metrics.OutcomesTotal.WithLabelValues(string(out.Status)).Inc()
		}
	}

	sum.FinishedAt = r.now()
	if r.Metrics != nil {
		r.Metrics.ObserveRun(sum.StartedAt, sum.FinishedAt)
	}
	logger.Info().
		Int("matched", sum.Count(model.StatusMatched)).
		Int("unavailable", sum.Count(model.StatusUnavailable)).
		Dur("elapsed", sum.FinishedAt.Sub(sum.StartedAt)).
		Msg("run completed")
	r.println(notifier.EndBanner)
	return sum
}

func (r *Runner) evaluate(ctx context.Context, sum *RunSummary, inst model.Instrument) model.Outcome {
	out := model.Outcome{Instrument: inst}
	logger := log.With().Str("run_id", sum.RunID).Str("symbol", inst.Symbol).Logger()

	snap, err := r.Source.Collect(ctx, inst)
	if err != nil {
		out.Status = model.StatusUnavailable
		out.Err = err
		logger.Warn().Err(err).Msg("data unavailable")
		r.println(notifier.FormatUnavailableLine(sum.StartedAt, inst.Symbol))
		return out
	}
	out.Snapshot = snap
	out.Result = strategy.EvaluateSnapshot(snap, inst)
	out.Status = model.StatusWait

	if out.Result.Matched {
		out.Status = model.StatusMatched
		logger.Info().
			Int("level", out.Result.Index).
			Int("quantity", out.Result.Band.Quantity).
			Float64("price", snap.Price).
			Msg("average-down band matched")
		if r.Metrics != nil {
			r.Metrics.AlertsTotal.WithLabelValues(inst.Symbol, out.Result.Level()).Inc()
		}
		out.NotifyErr = r.notify(ctx, inst, snap, out.Result)
		if out.NotifyErr != nil {
			logger.Error().Err(out.NotifyErr).Msg("send alert")
			if r.Metrics != nil {
				r.Metrics.NotifyFailures.Inc()
			}
		}
		entry := journal.NewEntry(sum.RunID, r.now(), inst, snap, out.Result)
		if out.JournalErr = r.Journal.Record(ctx, entry); out.JournalErr != nil {
			logger.Error().Err(out.JournalErr).Msg("record journal entry")
			if r.Metrics != nil {
				r.Metrics.JournalFailures.Inc()
			}
		}
	}

	r.println(notifier.FormatStatusLine(sum.StartedAt, inst.Symbol, snap, out.Result, r.Currency))
	return out
}

func (r *Runner) notify(ctx context.Context, inst model.Instrument, snap *model.IndicatorSnapshot, res model.TriggerResult) error {
	if r.Notifier == nil {
		return errors.New("no notifier configured")
	}
	if r.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.NotifyTimeout)
		defer cancel()
	}
	return r.Notifier.Send(ctx, notifier.FormatAlert(inst, snap, res, r.Currency))
}
