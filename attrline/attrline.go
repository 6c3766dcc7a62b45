// Package attrline provides the attributed-run line model shared by the
// terminal emulator's snapshot renderer and the editor's layout renderer
// (spec.md §2, "Shared support"), plus a row-level diff used by a host's
// Display implementation to know which rows actually changed.
package attrline

// Run is a maximal span of text sharing one attribute word. The bit
// layout of Attr is owned by the producer (term.Attr or an editor-local
// style word); attrline treats it as an opaque comparison key so this
// package stays independent of either producer's package.
type Run struct {
	Text string
	Attr uint32
}

// Line is one rendered row: an ordered sequence of runs plus whether the
// cursor is positioned within this row.
type Line struct {
	Runs       []Run
	CursorCol  int
	HasCursor  bool
}

// PlainText concatenates every run's text, discarding attributes.
func (l Line) PlainText() string {
	var out []byte
	for _, r := range l.Runs {
		out = append(out, r.Text...)
	}
	return string(out)
}

// Equal reports whether two lines have identical runs and cursor state.
func (l Line) Equal(o Line) bool {
	if l.HasCursor != o.HasCursor || (l.HasCursor && l.CursorCol != o.CursorCol) {
		return false
	}
	if len(l.Runs) != len(o.Runs) {
		return false
	}
	for i := range l.Runs {
		if l.Runs[i] != o.Runs[i] {
			return false
		}
	}
	return true
}

// RowUpdate names one row whose rendered content changed between two
// Diff calls.
type RowUpdate struct {
	Row  int
	Line Line
}

// Diff compares two full-screen renders row by row and returns the rows
// that differ (including rows present in next but not prev, and vice
// versa as a blank-line update). A host's Display implementation uses
// this to repaint only changed rows instead of the whole screen.
func Diff(prev, next []Line) []RowUpdate {
	var updates []RowUpdate
	maxLen := len(next)
	if len(prev) > maxLen {
		maxLen = len(prev)
	}
	for i := 0; i < maxLen; i++ {
		var p, n Line
		if i < len(prev) {
			p = prev[i]
		}
		if i < len(next) {
			n = next[i]
		}
		if !p.Equal(n) {
			updates = append(updates, RowUpdate{Row: i, Line: n})
		}
	}
	return updates
}
