package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"study_tracker/internal/domain"
)

var (
	ticksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_ticks_total",
			Help: "Total number of sampling ticks by outcome",
		},
		[]string{"outcome"}, // "idle", "invalid", "first", "accepted", "rejected"
	)

	engagedSecondsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_engaged_seconds_total",
			Help: "Engaged seconds credited to reports",
		},
	)

	sampleIntervalSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_sample_interval_seconds",
			Help:    "Wall time between consecutive samples",
			Buckets: []float64{1, 2.5, 5, 7.5, 10, 15, 30, 60, 300},
		},
	)

	submitFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_submit_failures_total",
			Help: "Total number of failed report submissions",
		},
		[]string{"reason"}, // "status", "malformed", "transport"
	)

	notificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_notifications_total",
			Help: "Total number of distraction notices requested by the aggregator",
		},
	)
)

// Observer records tick pipeline diagnostics as Prometheus metrics.
type Observer struct{}

func NewObserver() *Observer {
	return &Observer{}
}

func (*Observer) TickCompleted(result domain.TickResult) {
	ticksTotal.WithLabelValues(Outcome(result)).Inc()

	if result.Sampled && !result.First {
		sampleIntervalSeconds.Observe(result.Elapsed.Seconds())
	}
	if result.Credited > 0 {
		engagedSecondsTotal.Add(result.Credited)
	}
}

func (*Observer) SubmitFailed(_ domain.ProgressReport, err error) {
	submitFailuresTotal.WithLabelValues(FailureReason(err)).Inc()
}

func (*Observer) NotificationRequested(domain.ProgressReport, string) {
	notificationsTotal.Inc()
}

// Outcome labels a tick result.
func Outcome(result domain.TickResult) string {
	switch {
	case result.Invalid:
		return "invalid"
	case !result.Sampled:
		return "idle"
	case result.First:
		return "first"
	case result.Accepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// FailureReason labels a submission error.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnexpectedStatus):
		return "status"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	default:
		return "transport"
	}
}

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}
