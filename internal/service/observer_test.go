package service

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"study_tracker/internal/domain"
)

type recordingObserver struct {
	ticks    []domain.TickResult
	failures []error
	messages []string
}

func (r *recordingObserver) TickCompleted(result domain.TickResult) {
	r.ticks = append(r.ticks, result)
}

func (r *recordingObserver) SubmitFailed(_ domain.ProgressReport, err error) {
	r.failures = append(r.failures, err)
}

func (r *recordingObserver) NotificationRequested(_ domain.ProgressReport, message string) {
	r.messages = append(r.messages, message)
}

func TestObservers_FanOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	obs := Observers{a, b, NopObserver{}}
	err := errors.New("boom")

	obs.TickCompleted(domain.TickResult{Sampled: true})
	obs.SubmitFailed(domain.ProgressReport{}, err)
	obs.NotificationRequested(domain.ProgressReport{}, "Focus!")

	for _, r := range []*recordingObserver{a, b} {
		assert.Len(t, r.ticks, 1)
		assert.Equal(t, []error{err}, r.failures)
		assert.Equal(t, []string{"Focus!"}, r.messages)
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	observer := NewLogObserver(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	report := &domain.ProgressReport{ItemID: "abc123", Title: "Game play highlights"}

	observer.TickCompleted(domain.TickResult{})
	assert.Contains(t, buf.String(), "no active media")

	buf.Reset()
	observer.TickCompleted(domain.TickResult{Sampled: true, Report: report})
	assert.Contains(t, buf.String(), "progress rejected")

	buf.Reset()
	observer.TickCompleted(domain.TickResult{Sampled: true, Accepted: true, Credited: 5, Report: report})
	assert.Contains(t, buf.String(), "credited=5")

	buf.Reset()
	observer.SubmitFailed(*report, errors.New("connection refused"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "connection refused")

	buf.Reset()
	observer.NotificationRequested(*report, "Back to the lecture")
	assert.Contains(t, buf.String(), "distraction detected")
}
