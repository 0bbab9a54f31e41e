package service

import (
	"time"

	"study_tracker/internal/domain"
)

// Reconciler turns consecutive samples into credited engaged time.
//
// Progress between two samples is credited only when it moved forward and by
// no more than elapsed wall time times the speed tolerance. Every sample, accepted
// or not, becomes the new baseline, so one seek zeroes a single interval only.
//
// A Reconciler has a single writer and is not safe for concurrent use.
type Reconciler struct {
	state     domain.ReconciliationState
	tolerance float64
	now       func() time.Time
}

func NewReconciler(tolerance float64, now func() time.Time) *Reconciler {
	if now == nil {
		now = time.Now
	}
	return &Reconciler{
		tolerance: tolerance,
		now:       now,
	}
}

// Reconcile credits sample against the baseline and advances the baseline.
func (r *Reconciler) Reconcile(sample domain.Sample) (domain.ProgressReport, domain.TickResult) {
	now := r.now()
	result := domain.TickResult{Sampled: true}

	var credited float64
	if r.state.LastPosition == 0 {
		result.First = true
	} else {
		result.Elapsed = now.Sub(r.state.LastTimestamp)
		delta := sample.Position - r.state.LastPosition
		if delta > 0 && delta <= result.Elapsed.Seconds()*r.tolerance {
			credited = delta
			result.Accepted = true
		}
	}

	r.state = domain.ReconciliationState{
		LastPosition:  sample.Position,
		LastTimestamp: now,
	}

	report := domain.ProgressReport{
		ItemID:                    sample.ItemID,
		Title:                     sample.Title,
		Source:                    sample.Source,
		Locator:                   sample.Locator,
		TotalDurationSeconds:      sample.Duration,
		LastProgressSeconds:       sample.Position,
		AccumulatedEngagedSeconds: credited,
	}
	result.Credited = credited
	result.Report = &report

	return report, result
}

// State returns a copy of the current baseline.
func (r *Reconciler) State() domain.ReconciliationState {
	return r.state
}
