package service

import (
	"log/slog"

	"study_tracker/internal/domain"
)

type NopObserver struct{}

func (NopObserver) TickCompleted(domain.TickResult) {}

func (NopObserver) SubmitFailed(domain.ProgressReport, error) {}

func (NopObserver) NotificationRequested(domain.ProgressReport, string) {}

// LogObserver writes pipeline diagnostics to a logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) TickCompleted(result domain.TickResult) {
	if result.Invalid {
		o.logger.Debug("playback values unusable, sample skipped")
		return
	}
	if !result.Sampled {
		o.logger.Debug("no active media")
		return
	}

	if !result.First && !result.Accepted {
		o.logger.Info("progress rejected, baseline resynced",
			"video_id", result.Report.ItemID,
			"position", result.Report.LastProgressSeconds,
			"elapsed", result.Elapsed,
		)
		return
	}

	o.logger.Debug("progress reconciled",
		"video_id", result.Report.ItemID,
		"first", result.First,
		"credited", result.Credited,
		"elapsed", result.Elapsed,
	)
}

func (o *LogObserver) SubmitFailed(report domain.ProgressReport, err error) {
	o.logger.Warn("submit failed",
		"video_id", report.ItemID,
		"error", err,
	)
}

func (o *LogObserver) NotificationRequested(report domain.ProgressReport, message string) {
	o.logger.Warn("distraction detected",
		"video_id", report.ItemID,
		"title", report.Title,
		"message", message,
	)
}

// Observers fans diagnostics out to several observers in order.
type Observers []Observer

func (obs Observers) TickCompleted(result domain.TickResult) {
	for _, o := range obs {
		o.TickCompleted(result)
	}
}

func (obs Observers) SubmitFailed(report domain.ProgressReport, err error) {
	for _, o := range obs {
		o.SubmitFailed(report, err)
	}
}

func (obs Observers) NotificationRequested(report domain.ProgressReport, message string) {
	for _, o := range obs {
		o.NotificationRequested(report, message)
	}
}
