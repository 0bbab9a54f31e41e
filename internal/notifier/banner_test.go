package notifier

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer lets expiry timers write while the test reads.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

func TestBanner_PresentShowsNotice(t *testing.T) {
	var out bytes.Buffer
	b := NewBanner(&out, time.Minute)
	defer b.Dismiss()

	b.Present("Back to the lecture")

	assert.Contains(t, out.String(), bannerHeading)
	assert.Contains(t, out.String(), "Back to the lecture")

	notice, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "Back to the lecture", notice.Message)
	assert.Equal(t, time.Minute, notice.ExpiresAt.Sub(notice.ShownAt))
}

func TestBanner_NewNoticeReplacesOld(t *testing.T) {
	var out bytes.Buffer
	b := NewBanner(&out, time.Minute)
	defer b.Dismiss()

	b.Present("first")
	b.Present("second")

	notice, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "second", notice.Message)
	assert.Equal(t, 2, strings.Count(out.String(), bannerHeading))
}

func TestBanner_Expires(t *testing.T) {
	out := &lockedBuffer{}
	b := NewBanner(out, 20*time.Millisecond)

	b.Present("short lived")

	assert.Eventually(t, func() bool {
		_, ok := b.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "notice expired")
	}, time.Second, 5*time.Millisecond)
}

func TestBanner_ReplacedNoticeDoesNotReportExpiry(t *testing.T) {
	var out bytes.Buffer
	b := NewBanner(&out, time.Minute)
	defer b.Dismiss()

	b.Present("first")
	b.Present("second")

	assert.NotContains(t, out.String(), "notice expired")
	assert.NotContains(t, out.String(), "notice dismissed")
}

func TestBanner_StaleExpiryKeepsNewerNotice(t *testing.T) {
	b := NewBanner(&bytes.Buffer{}, time.Minute)
	defer b.Dismiss()

	b.Present("old")
	stale := b.seq
	b.Present("new")

	b.expire(stale)

	notice, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "new", notice.Message)
}

func TestBanner_Dismiss(t *testing.T) {
	var out bytes.Buffer
	b := NewBanner(&out, time.Minute)

	b.Present("dismiss me")
	b.Dismiss()
	b.Dismiss()

	_, ok := b.Current()
	assert.False(t, ok)
	assert.Equal(t, 1, strings.Count(out.String(), "notice dismissed"))
}

func TestBanner_DismissOnInput(t *testing.T) {
	var out bytes.Buffer
	b := NewBanner(&out, time.Minute)

	b.Present("press enter")

	err := b.DismissOn(strings.NewReader("\n"))
	require.NoError(t, err)

	_, ok := b.Current()
	assert.False(t, ok)
	assert.Contains(t, out.String(), "notice dismissed")
}
