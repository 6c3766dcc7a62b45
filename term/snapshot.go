package term

import (
	"strings"

	"github.com/jline/jline3-sub001/attrline"
)

// Snapshot is a single point-in-time capture of the whole grid plus cursor
// position, returned by Dump per spec.md §4.1.
type Snapshot struct {
	Width, Height int
	Lines         []attrline.Line
	CursorX, CursorY int
	CursorVisible    bool
}

// renderSnapshotLocked must be called with t.mu held. It walks every row
// of the active screen, coalescing consecutive cells with identical
// attribute words into a single attrline.Run (spec.md §4.1 "Rendering").
// Inverse-screen mode (DECSCNM) swaps fg/bg at emit time; the cell under
// the cursor is marked via Line.HasCursor rather than mutated in place, so
// Dump never perturbs grid state.
func (t *Terminal) renderSnapshotLocked() *Snapshot {
	s := t.screen()
	snap := &Snapshot{
		Width:  s.width,
		Height: s.height,
		Lines:  make([]attrline.Line, s.height),
		CursorX: s.cx, CursorY: s.cy,
		CursorVisible: t.hasMode(ModeCursorVisible),
	}

	inverse := t.hasMode(ModeInverse)

	for y := 0; y < s.height; y++ {
		line := attrline.Line{}
		row := s.Row(y)

		var b strings.Builder
		var curAttr Attr
		haveRun := false

		flush := func() {
			if haveRun {
				line.Runs = append(line.Runs, attrline.Run{Text: b.String(), Attr: uint32(renderAttr(curAttr, inverse))})
				b.Reset()
			}
		}

		for x := 0; x < s.width; x++ {
			c := row[x]
			if c.Codepoint() == 0 {
				continue // wide-char spacer cell
			}
			if !haveRun || c.Attr() != curAttr {
				flush()
				curAttr = c.Attr()
				haveRun = true
			}
			b.WriteRune(c.Codepoint())
		}
		flush()

		if y == s.cy {
			line.HasCursor = true
			line.CursorCol = s.cx
		}
		snap.Lines[y] = line
	}

	return snap
}

// renderAttr applies inverse-screen mode by swapping the fg/bg-set state
// and color fields at render time, leaving the grid's stored attribute
// word untouched.
func renderAttr(a Attr, inverse bool) Attr {
	if !inverse {
		return a
	}
	fg, bg := a.FgRGB444(), a.BgRGB444()
	fgSet, bgSet := a.FgSet(), a.BgSet()
	out := a.WithoutFg().WithoutBg()
	if bgSet {
		out = out.WithFg(bg)
	}
	if fgSet {
		out = out.WithBg(fg)
	}
	return out
}

// EscapeHTML escapes '<', '>', and '&' for HTML rendering, per spec.md
// §4.1 "Rendering". ANSI-output clients should use the raw run text and
// their own SGR encoder instead.
func EscapeHTML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
