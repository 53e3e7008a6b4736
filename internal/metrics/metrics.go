package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics holds the Prometheus metrics of the run loop.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal        prometheus.Counter
	RunDuration      prometheus.Histogram
	LastRunTimestamp prometheus.Gauge
	OutcomesTotal    *prometheus.CounterVec // labels: status
	AlertsTotal      *prometheus.CounterVec // labels: symbol, level
	NotifyFailures   prometheus.Counter
	JournalFailures  prometheus.Counter
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_runs_total",
			Help: "Completed evaluation runs.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_run_duration_seconds",
			Help:    "Wall time of one evaluation run.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
		OutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_instrument_outcomes_total",
			Help: "Per-instrument evaluation outcomes.",
		}, []string{"status"}),
		AlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_alerts_total",
			Help: "Matched average-down bands.",
		}, []string{"symbol", "level"}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_notify_failures_total",
			Help: "Alerts the notifier failed to deliver.",
		}),
		JournalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_journal_failures_total",
			Help: "Journal writes that failed.",
		}),
	}
	reg.MustRegister(
		m.RunsTotal, m.RunDuration, m.LastRunTimestamp, m.OutcomesTotal,
		m.AlertsTotal, m.NotifyFailures, m.JournalFailures,
	)
	return m
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(started, finished time.Time) {
	m.RunsTotal.Inc()
	m.RunDuration.Observe(finished.Sub(started).Seconds())
	m.LastRunTimestamp.Set(float64(finished.Unix()))
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
