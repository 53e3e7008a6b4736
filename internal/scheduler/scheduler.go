package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"PortfolioSentinel/internal/notifier"
)

// Scheduler re-runs the Runner on a cron schedule. Runs never overlap.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *Runner
	Ctx    context.Context

	running sync.Mutex
}

// NewScheduler creates a new Scheduler evaluating cron specs in loc.
func NewScheduler(ctx context.Context, runner *Runner, loc *time.Location) *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Runner: runner,
		Ctx:    ctx,
	}
}

// Register adds the evaluation run at spec (6 fields, with seconds).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runTask); err != nil {
		return fmt.Errorf("register run task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	for _, e := range s.Cron.Entries() {
		log.Info().Time("next", e.Next).Msg("scheduler started")
	}
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes a run immediately. It returns nil when a run is already
// in progress.
func (s *Scheduler) RunNow() *RunSummary {
	if !s.running.TryLock() {
		log.Warn().Msg("run already in progress, skipping")
		return nil
	}
	defer s.running.Unlock()
	return s.Runner.Run(s.Ctx)
}

func (s *Scheduler) runTask() {
	log.Info().Msg("running scheduled evaluation")
	s.RunNow()
}

// cronLogger routes cron's internal logging to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run":
		sum := s.RunNow()
		if sum == nil {
			return "A run is already in progress."
		}
		return sum.String()
	case "/levels":
		return notifier.FormatLevels(s.Runner.Instruments, s.Runner.Currency)
	default:
		return "Available commands:\n• /run – evaluate all instruments now\n• /levels – show average-down bands"
	}
}
