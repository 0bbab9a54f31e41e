package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"study_tracker/internal/domain"
)

// Inspector reads the media page. A nil playback with a nil error means
// nothing is loaded.
type Inspector interface {
	ID() string
	Inspect(ctx context.Context) (*domain.Playback, error)
}

type Aggregator interface {
	Submit(ctx context.Context, report domain.ProgressReport) (*domain.SyncResponse, error)
}

// Presenter shows an interruption. Calls are fire-and-forget.
type Presenter interface {
	Present(message string)
}

// Observer receives diagnostics from the tick pipeline. It must not block.
type Observer interface {
	TickCompleted(result domain.TickResult)
	SubmitFailed(report domain.ProgressReport, err error)
	NotificationRequested(report domain.ProgressReport, message string)
}
