package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"study_tracker/internal/domain"
)

// Tracker runs one sampling pipeline: extract, reconcile, then submit in the
// background. Reconciliation finishes before the submission starts, so the
// baseline follows tick order even when responses arrive out of order.
type Tracker struct {
	extractor  *Extractor
	reconciler *Reconciler
	aggregator Aggregator
	presenter  Presenter
	observer   Observer
	logger     *slog.Logger

	inflight sync.WaitGroup
}

func NewTracker(
	extractor *Extractor,
	reconciler *Reconciler,
	aggregator Aggregator,
	presenter Presenter,
	observer Observer,
	logger *slog.Logger,
) *Tracker {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Tracker{
		extractor:  extractor,
		reconciler: reconciler,
		aggregator: aggregator,
		presenter:  presenter,
		observer:   observer,
		logger:     logger,
	}
}

// Tick samples once. It returns as soon as the report is handed to a
// submission goroutine; it never waits on the network.
func (t *Tracker) Tick(ctx context.Context) domain.TickResult {
	sample, err := t.extractor.Extract(ctx)
	if err != nil {
		result := domain.TickResult{Invalid: errors.Is(err, domain.ErrInvalidSample)}
		t.observer.TickCompleted(result)
		return result
	}

	report, result := t.reconciler.Reconcile(sample)
	t.observer.TickCompleted(result)

	t.logger.Debug("sending progress",
		"video_id", report.ItemID,
		"title", report.Title,
		"position", report.LastProgressSeconds,
		"duration", report.TotalDurationSeconds,
		"accumulated", report.AccumulatedEngagedSeconds,
	)

	// Shutdown stops the ticker, not requests already on the wire.
	submitCtx := context.WithoutCancel(ctx)

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		t.submit(submitCtx, report)
	}()

	return result
}

func (t *Tracker) submit(ctx context.Context, report domain.ProgressReport) {
	resp, err := t.aggregator.Submit(ctx, report)
	if err != nil {
		t.observer.SubmitFailed(report, err)
		return
	}

	if resp == nil || !resp.RequiresNotification {
		return
	}

	t.observer.NotificationRequested(report, resp.Message)
	if t.presenter != nil {
		t.presenter.Present(resp.Message)
	}
}

// Wait blocks until every submission started so far has finished.
func (t *Tracker) Wait() {
	t.inflight.Wait()
}

// State exposes the reconciler's baseline.
func (t *Tracker) State() domain.ReconciliationState {
	return t.reconciler.State()
}
