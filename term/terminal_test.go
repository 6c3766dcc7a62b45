package term

import (
	"strings"
	"testing"
)

func TestNewDefaultSize(t *testing.T) {
	term := New()
	if term.Rows() != 24 || term.Cols() != 80 {
		t.Fatalf("expected 80x24, got %dx%d", term.Cols(), term.Rows())
	}
}

func TestWithSize(t *testing.T) {
	term := New(WithSize(100, 40))
	if term.Rows() != 40 || term.Cols() != 100 {
		t.Fatalf("expected 100x40, got %dx%d", term.Cols(), term.Rows())
	}
}

func lineText(snap *Snapshot, row int) string {
	return strings.TrimRight(snap.Lines[row].PlainText(), " ")
}

func TestPrintableWriteAdvancesCursor(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("hello")

	snap := term.Dump(0, true)
	if got := lineText(snap, 0); got != "hello" {
		t.Fatalf("expected 'hello', got %q", got)
	}
	if snap.CursorX != 5 || snap.CursorY != 0 {
		t.Fatalf("expected cursor (5,0), got (%d,%d)", snap.CursorX, snap.CursorY)
	}
}

// Scenario 1 (spec.md §8): ESC[31mHELLO ESC[0m
func TestSGRForeground(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("\x1b[31mHELLO\x1b[0m")

	snap := term.Dump(0, true)
	if got := lineText(snap, 0); got != "HELLO" {
		t.Fatalf("expected HELLO, got %q", got)
	}
	if snap.CursorX != 5 || snap.CursorY != 0 {
		t.Fatalf("expected cursor (5,0), got (%d,%d)", snap.CursorX, snap.CursorY)
	}
	run := snap.Lines[0].Runs[0]
	a := Attr(run.Attr)
	if !a.FgSet() {
		t.Fatal("expected foreground explicitly set")
	}
	if a.FgRGB444() != indexedRGB444(1) {
		t.Fatalf("expected red foreground, got %x", a.FgRGB444())
	}
}

// Autowrap off: the last cell is overwritten repeatedly; cursor stays at
// width-1; eol is set.
func TestAutowrapOffOverwrite(t *testing.T) {
	term := New(WithSize(5, 3))
	term.WriteString("\x1b[?7l") // DECAWM reset: autowrap off
	term.WriteString("ABCDEFG")

	snap := term.Dump(0, true)
	if snap.CursorX != 4 || snap.CursorY != 0 {
		t.Fatalf("expected cursor clamped at (4,0), got (%d,%d)", snap.CursorX, snap.CursorY)
	}
	if !term.screen().eol {
		t.Fatal("expected eol set")
	}
	if got := lineText(snap, 0); got != "ABCDG" {
		// A-D fill columns 0-3; E lands at column 4 and sets eol; F and G
		// each re-trigger wrapOrOverwrite and overwrite column 4 in turn.
		t.Fatalf("unexpected row content: %q", got)
	}
}

// Autowrap on: writing w chars on an empty row places them in row y; the
// (w+1)-th char implicitly wraps to row y+1, column 0.
func TestAutowrapOnWraps(t *testing.T) {
	term := New(WithSize(5, 3))
	term.WriteString("ABCDEF")

	snap := term.Dump(0, true)
	if got := lineText(snap, 0); got != "ABCDE" {
		t.Fatalf("row 0 = %q", got)
	}
	if got := lineText(snap, 1); got != "F" {
		t.Fatalf("row 1 = %q", got)
	}
	if snap.CursorX != 1 || snap.CursorY != 1 {
		t.Fatalf("expected cursor (1,1), got (%d,%d)", snap.CursorX, snap.CursorY)
	}
	if term.screen().eol {
		t.Fatal("expected eol cleared after wrap")
	}
}

// DECSC/DECRC round-trip.
func TestSaveRestoreCursor(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("abc")
	term.WriteString("\x1b7") // DECSC

	before := *term.screen()

	term.WriteString("\x1b[31mXYZ\x1b[10;10H")
	term.WriteString("\x1b8") // DECRC

	after := term.screen()
	if after.cx != before.cx || after.cy != before.cy {
		t.Fatalf("cursor not restored: got (%d,%d) want (%d,%d)", after.cx, after.cy, before.cx, before.cy)
	}
	if after.template != before.template {
		t.Fatal("attribute template not restored")
	}
}

// Scroll region invariant: scrolling within [y0,y1) never mutates rows
// outside it.
func TestScrollRegionInvariant(t *testing.T) {
	term := New(WithSize(10, 10))
	for i := 0; i < 10; i++ {
		term.WriteString("\x1b[" + itoa(i+1) + ";1H")
		term.WriteString(string(rune('0' + i)))
	}
	term.WriteString("\x1b[3;7r") // scroll region rows 3..7 (1-based)
	term.screen().ScrollUp(2, 7, 2)

	snap := term.Dump(0, true)
	if got := lineText(snap, 0); got != "0" {
		t.Fatalf("row 0 mutated: %q", got)
	}
	if got := lineText(snap, 9); got != "9" {
		t.Fatalf("row 9 mutated: %q", got)
	}
}

// ?1049 alt-screen swap round-trip.
func TestAltScreenRoundTrip(t *testing.T) {
	term := New(WithSize(10, 5))
	term.WriteString("primary")
	before := term.Dump(0, true)

	term.WriteString("\x1b[?1049h")
	term.WriteString("alt-screen-text")
	term.WriteString("\x1b[?1049l")

	after := term.Dump(0, true)
	if lineText(after, 0) != lineText(before, 0) {
		t.Fatalf("primary screen not restored: got %q want %q", lineText(after, 0), lineText(before, 0))
	}
}

// DECCKM cursor-key filter.
func TestPipeCursorKeys(t *testing.T) {
	term := New(WithSize(80, 24))

	out := term.Pipe([]byte("~A"))
	if string(out) != "\x1b[A" {
		t.Fatalf("expected normal-mode Up, got %q", out)
	}

	term.WriteString("\x1b[?1h") // DECCKM set
	out = term.Pipe([]byte("~A"))
	if string(out) != "\x1bOA" {
		t.Fatalf("expected app-mode Up, got %q", out)
	}
}

func TestPipeUnrecognizedAliasPassesThrough(t *testing.T) {
	term := New(WithSize(80, 24))
	out := term.Pipe([]byte("a~zb"))
	if string(out) != "a~zb" {
		t.Fatalf("expected unresolved alias to pass through unchanged, got %q", out)
	}
}

// Resize shrinks: the 14 rows that no longer fit go to history.
func TestResizeShrinkHistory(t *testing.T) {
	term := New(WithSize(80, 24))
	for i := 0; i < 24; i++ {
		term.WriteString("\x1b[" + itoa(i+1) + ";1H")
		for x := 0; x < 80; x++ {
			term.WriteString("A")
		}
	}

	term.Resize(80, 10)

	if term.screen().HistoryLen() != 14 {
		t.Fatalf("expected 14 history rows, got %d", term.screen().HistoryLen())
	}
}

func TestResizeOutOfRange(t *testing.T) {
	term := New(WithSize(80, 24))
	if term.Resize(1, 24) {
		t.Fatal("expected resize below MinDimension to fail")
	}
	if term.Resize(80, 300) {
		t.Fatal("expected resize above MaxDimension to fail")
	}
}
