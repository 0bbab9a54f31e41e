package notifier

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const bannerHeading = "FOCUS WARNING"

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(lipgloss.Color("#CC0000")).
	Padding(1, 2)

var clearedStyle = lipgloss.NewStyle().
	Faint(true).
	Italic(true)

// Notice is an interruption currently on screen.
type Notice struct {
	Message   string
	ShownAt   time.Time
	ExpiresAt time.Time
}

// Banner renders interruptions to a terminal. At most one notice is shown at a
// time; a new one replaces the old, and each expires after a fixed duration.
type Banner struct {
	out io.Writer
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	current *Notice
	timer   *time.Timer
	seq     uint64
}

func NewBanner(out io.Writer, ttl time.Duration) *Banner {
	return &Banner{
		out: out,
		ttl: ttl,
		now: time.Now,
	}
}

func (b *Banner) Present(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearLocked()

	now := b.now()
	b.seq++
	seq := b.seq
	b.current = &Notice{
		Message:   message,
		ShownAt:   now,
		ExpiresAt: now.Add(b.ttl),
	}
	b.timer = time.AfterFunc(b.ttl, func() { b.expire(seq) })

	fmt.Fprintln(b.out, bannerStyle.Render(bannerHeading+"\n"+message))
}

// Dismiss removes the current notice, if any.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return
	}
	b.clearLocked()
	fmt.Fprintln(b.out, clearedStyle.Render("notice dismissed"))
}

// DismissOn dismisses the current notice each time a line is read from r, so
// pressing Enter in the terminal clears it. It returns when r is exhausted.
func (b *Banner) DismissOn(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		b.Dismiss()
	}
	return scanner.Err()
}

// Current returns the notice on screen.
func (b *Banner) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notice{}, false
	}
	return *b.current, true
}

func (b *Banner) expire(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// A newer notice owns the screen.
	if seq != b.seq || b.current == nil {
		return
	}
	b.current = nil
	b.timer = nil
	fmt.Fprintln(b.out, clearedStyle.Render("notice expired"))
}

func (b *Banner) clearLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.current = nil
}
