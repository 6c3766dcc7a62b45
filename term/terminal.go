package term

import (
	"sync"
	"time"
)

// ResponseWriter receives outbound bytes generated by device queries
// (DSR, DA, cursor position reports). Typically the PTY master write side.
type ResponseWriter interface {
	Write(p []byte) (int, error)
}

// NoopResponse discards all response bytes.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (int, error) { return len(p), nil }

// Terminal is a VT100/ANSI/ECMA-48 compatible in-memory terminal emulator.
// It is safe for concurrent use: write/read/pipe/dump/resize all take the
// same mutex, and one goroutine may block in Dump waiting on the dirty
// condition while another mutates the screen, per spec.md §5.
type Terminal struct {
	mu   sync.Mutex
	cond *sync.Cond

	primary   *Screen
	alternate *Screen
	usingAlt  bool

	modes Mode
	g0, g1 charsetKind
	gl     int // 0 or 1: which of g0/g1 is currently GL
	singleShift int // 0 (none), 2, or 3

	savedPrimary   SavedCursor
	savedAlternate SavedCursor
	scpCX, scpCY   int

	parser parser

	response []byte
	dirty    bool

	responseWriter ResponseWriter
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the initial terminal dimensions. Values outside
// [MinDimension, MaxDimension] are clamped to the nearest bound.
func WithSize(width, height int) Option {
	return func(t *Terminal) {
		width = clampInt(width, MinDimension, MaxDimension)
		height = clampInt(height, MinDimension, MaxDimension)
		t.primary = NewScreen(width, height)
		t.alternate = newAltScreen(width, height)
	}
}

// WithResponseWriter sets the sink for outbound response bytes (DSR/DA
// replies). If unset, Read() is the only way to retrieve them.
func WithResponseWriter(w ResponseWriter) Option {
	return func(t *Terminal) { t.responseWriter = w }
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// New creates a terminal with the given options, defaulting to 80x24 with
// autowrap and cursor visible, matching spec.md's described reset state.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		modes:          defaultModes,
		responseWriter: NoopResponse{},
	}
	t.cond = sync.NewCond(&t.mu)

	for _, opt := range opts {
		opt(t)
	}
	if t.primary == nil {
		t.primary = NewScreen(80, 24)
		t.alternate = newAltScreen(80, 24)
	}
	t.parser.reset()
	return t
}

// screen returns the currently active grid (primary or alternate).
func (t *Terminal) screen() *Screen {
	if t.usingAlt {
		return t.alternate
	}
	return t.primary
}

// Rows and Cols report the live grid dimensions of the active screen.
func (t *Terminal) Rows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen().height
}

func (t *Terminal) Cols() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen().width
}

// Resize implements spec.md §4.1 resize(w,h): constraints 2<=w,h<=256;
// truncates/pulls rows from history; clamps cursor and scroll region;
// returns false for out-of-range dimensions. Always marks the screen dirty.
func (t *Terminal) Resize(w, h int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	okPrimary := t.primary.Resize(w, h)
	okAlt := t.alternate.Resize(w, h)
	ok := okPrimary && okAlt
	t.setDirtyLocked()
	return ok
}

// Write consumes bytes through the parser state machine until the input is
// exhausted. It never blocks and never panics; malformed sequences are
// recovered from silently per spec.md §7.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range p {
		t.feed(b)
	}
	return len(p), nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Read returns and clears any pending response bytes (DSR replies, device
// attributes, cursor position reports).
func (t *Terminal) Read() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.response) == 0 {
		return nil
	}
	out := t.response
	t.response = nil
	return out
}

func (t *Terminal) queueResponse(b []byte) {
	t.response = append(t.response, b...)
	if t.responseWriter != nil {
		t.responseWriter.Write(b)
	}
}

// IsDirty reports whether the screen has changed since the last Dump.
func (t *Terminal) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// SetDirty marks the screen dirty and wakes one waiter in WaitDirty/Dump.
func (t *Terminal) SetDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setDirtyLocked()
}

func (t *Terminal) setDirtyLocked() {
	t.dirty = true
	t.cond.Signal()
}

// WaitDirty blocks up to timeout waiting for the dirty flag to be set,
// returning true if it was (or already was) set.
func (t *Terminal) WaitDirty(timeout time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.waitDirtyLocked(timeout)
}

// waitDirtyLocked must be called with t.mu held. The timeout callback takes
// the same lock before broadcasting, so it cannot race ahead of the first
// cond.Wait call: it blocks on Lock until Wait atomically releases t.mu.
func (t *Terminal) waitDirtyLocked(timeout time.Duration) bool {
	if t.dirty {
		return true
	}

	deadline := time.Now().Add(timeout)
	timedOut := false

	for !t.dirty && !timedOut {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		timer := time.AfterFunc(remaining, func() {
			t.mu.Lock()
			timedOut = true
			t.cond.Broadcast()
			t.mu.Unlock()
		})
		t.cond.Wait()
		timer.Stop()
	}
	return t.dirty
}

// Dump blocks up to timeoutMs waiting for the dirty flag (unless force is
// set), then returns a full snapshot of the grid and clears dirty. Without
// force, it returns nil when the flag is not set before the timeout.
func (t *Terminal) Dump(timeoutMs int, force bool) *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !force {
		if !t.waitDirtyLocked(time.Duration(timeoutMs) * time.Millisecond) {
			return nil
		}
	}

	snap := t.renderSnapshotLocked()
	t.dirty = false
	return snap
}
