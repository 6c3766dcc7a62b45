package editor

import (
	"strings"
	"unicode"
)

// LineEnding names the three line-terminator conventions a Buffer may be
// read from or written with, per spec.md §3 "format".
type LineEnding int

const (
	Unix LineEnding = iota
	DOS
	Mac
)

func (f LineEnding) terminator() string {
	switch f {
	case DOS:
		return "\r\n"
	case Mac:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is one open file per spec.md §3's "Buffer (editor)" data model.
// Every field named there is present; methods recompute the derived
// ones (offsets, dirty) on mutation rather than leaving them stale.
type Buffer struct {
	File    string
	Charset string
	Format  LineEnding

	Lines   []string
	Offsets [][]int

	Line         int
	OffsetInLine int
	Column       int
	WantedColumn int

	FirstLineToDisplay    int
	OffsetInLineToDisplay int
	FirstColumnToDisplay  int

	Dirty bool

	rowWidth int // last width RecomputeOffsets was called with
}

// NewBuffer creates an empty, single-line buffer ready for insertion.
func NewBuffer() *Buffer {
	b := &Buffer{
		Lines:   []string{""},
		Charset: "UTF-8",
		Format:  Unix,
		rowWidth: 80,
	}
	b.RecomputeOffsets(b.rowWidth)
	return b
}

// RecomputeOffsets rebuilds Offsets for every line at the given visible row
// width (the screen width minus any line-number gutter), per spec.md §4.2
// "Wrapping". Called whenever width, tab width, line numbering, or a
// line's content changes.
func (b *Buffer) RecomputeOffsets(rowWidth int) {
	if rowWidth < 1 {
		rowWidth = 1
	}
	b.rowWidth = rowWidth
	b.Offsets = make([][]int, len(b.Lines))
	for i, line := range b.Lines {
		b.Offsets[i] = computeOffsets(line, rowWidth)
	}
	b.clampOffsetInLine()
}

// computeOffsets implements spec.md §4.2's computeOffsets(line): a greedy
// word-wrap that walks the line tracking the last breakable position
// (a space) and breaks there, or at the row edge if none was seen.
func computeOffsets(line string, rowWidth int) []int {
	runes := []rune(line)
	offsets := []int{0}
	if len(runes) == 0 {
		return offsets
	}

	rowStart := 0
	col := 0
	lastBreak := -1 // rune index just past the most recent breakable rune

	for i := 0; i < len(runes); i++ {
		w := runeWidth(runes[i])
		if col+w > rowWidth && i > rowStart {
			breakAt := lastBreak
			if breakAt <= rowStart {
				breakAt = i
			}
			offsets = append(offsets, breakAt)
			rowStart = breakAt
			col = 0
			lastBreak = -1
			i = breakAt - 1
			continue
		}
		if runes[i] == ' ' {
			lastBreak = i + 1
		}
		col += w
	}
	return offsets
}

// clampOffsetInLine ensures OffsetInLine is still a member of
// Offsets[Line] after a recompute, per spec.md §3's invariant.
func (b *Buffer) clampOffsetInLine() {
	offs := b.Offsets[b.Line]
	for _, o := range offs {
		if o == b.OffsetInLine {
			return
		}
	}
	b.OffsetInLine = offs[0]
	b.Column = 0
}

// visualRowEnd returns the rune index one past the end of the visual row
// starting at offsetInLine within line, i.e. the next offset or the line's
// length if offsetInLine is the last visual row.
func visualRowEnd(line string, offsets []int, offsetInLine int) int {
	runes := []rune(line)
	for _, o := range offsets {
		if o > offsetInLine {
			return o
		}
	}
	return len(runes)
}

func (b *Buffer) currentLineRunes() []rune {
	return []rune(b.Lines[b.Line])
}

// absoluteColumn returns the rune index into the current line that
// (OffsetInLine, Column) refers to.
func (b *Buffer) absoluteColumn() int {
	return b.OffsetInLine + b.Column
}

// --- Motion (spec.md §4.2 "Motion") ---

// MoveLeft moves the cursor back one column, joining to the end of the
// previous visual row (or previous line) at a line/row boundary.
func (b *Buffer) MoveLeft() {
	if b.absoluteColumn() > 0 {
		if b.Column > 0 {
			b.Column--
		} else {
			// cross a soft-wrap boundary within the same line
			prevOffset := 0
			for _, o := range b.Offsets[b.Line] {
				if o < b.OffsetInLine {
					prevOffset = o
				}
			}
			b.OffsetInLine = prevOffset
			b.Column = b.absoluteColumnFor(prevOffset) - prevOffset
		}
	} else if b.Line > 0 {
		b.Line--
		offs := b.Offsets[b.Line]
		b.OffsetInLine = offs[len(offs)-1]
		b.Column = len(b.currentLineRunes()) - b.OffsetInLine
	}
	b.WantedColumn = b.Column
}

func (b *Buffer) absoluteColumnFor(offsetInLine int) int {
	end := visualRowEnd(b.Lines[b.Line], b.Offsets[b.Line], offsetInLine)
	return end
}

// MoveRight moves the cursor forward one column, crossing wrap and line
// boundaries symmetrically with MoveLeft.
func (b *Buffer) MoveRight() {
	runes := b.currentLineRunes()
	end := visualRowEnd(b.Lines[b.Line], b.Offsets[b.Line], b.OffsetInLine)
	if b.absoluteColumn() < len(runes) {
		if b.OffsetInLine+b.Column+1 <= end {
			b.Column++
		} else {
			b.OffsetInLine = end
			b.Column = 0
		}
	} else if b.Line < len(b.Lines)-1 {
		b.Line++
		b.OffsetInLine = 0
		b.Column = 0
	}
	b.WantedColumn = b.Column
}

// MoveUp moves the cursor one visual row up, preserving WantedColumn.
func (b *Buffer) MoveUp() {
	if b.OffsetInLine > 0 {
		offs := b.Offsets[b.Line]
		prev := 0
		for _, o := range offs {
			if o < b.OffsetInLine {
				prev = o
			}
		}
		b.OffsetInLine = prev
	} else if b.Line > 0 {
		b.Line--
		offs := b.Offsets[b.Line]
		b.OffsetInLine = offs[len(offs)-1]
	} else {
		return
	}
	b.clampColumnToWanted()
}

// MoveDown moves the cursor one visual row down, preserving WantedColumn.
func (b *Buffer) MoveDown() {
	offs := b.Offsets[b.Line]
	end := visualRowEnd(b.Lines[b.Line], offs, b.OffsetInLine)
	if end < len(b.currentLineRunes()) {
		b.OffsetInLine = end
	} else if b.Line < len(b.Lines)-1 {
		b.Line++
		b.OffsetInLine = 0
	} else {
		return
	}
	b.clampColumnToWanted()
}

func (b *Buffer) clampColumnToWanted() {
	end := visualRowEnd(b.Lines[b.Line], b.Offsets[b.Line], b.OffsetInLine)
	rowLen := end - b.OffsetInLine
	b.Column = b.WantedColumn
	if b.Column > rowLen {
		b.Column = rowLen
	}
}

// isWordRune reports whether r participates in a "word" per spec.md §4.2's
// definition: a maximal alphabetic run.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r)
}

// PrevWord moves the cursor to the start of the previous word.
func (b *Buffer) PrevWord() {
	for {
		runes := b.currentLineRunes()
		col := b.absoluteColumn()
		if col == 0 {
			if b.Line == 0 {
				b.syncFromAbsolute(0)
				return
			}
			b.Line--
			b.syncFromAbsolute(len(b.currentLineRunes()))
			continue
		}
		col--
		for col > 0 && !isWordRune(runes[col]) {
			col--
		}
		for col > 0 && isWordRune(runes[col-1]) {
			col--
		}
		b.syncFromAbsolute(col)
		return
	}
}

// NextWord moves the cursor to the start of the next word.
func (b *Buffer) NextWord() {
	for {
		runes := b.currentLineRunes()
		col := b.absoluteColumn()
		if col >= len(runes) {
			if b.Line == len(b.Lines)-1 {
				b.syncFromAbsolute(len(runes))
				return
			}
			b.Line++
			b.OffsetInLine, b.Column = 0, 0
			continue
		}
		for col < len(runes) && isWordRune(runes[col]) {
			col++
		}
		for col < len(runes) && !isWordRune(runes[col]) {
			col++
		}
		b.syncFromAbsolute(col)
		return
	}
}

// syncFromAbsolute sets OffsetInLine/Column from an absolute rune index
// into the current line, choosing the visual row that contains it.
func (b *Buffer) syncFromAbsolute(absCol int) {
	offs := b.Offsets[b.Line]
	chosen := offs[0]
	for _, o := range offs {
		if o <= absCol {
			chosen = o
		}
	}
	b.OffsetInLine = chosen
	b.Column = absCol - chosen
	b.WantedColumn = b.Column
}

// BeginningOfLine moves to column 0 of the current visual row.
func (b *Buffer) BeginningOfLine() {
	b.Column = 0
	b.WantedColumn = 0
}

// EndOfLine moves to the end of the current visual row.
func (b *Buffer) EndOfLine() {
	end := visualRowEnd(b.Lines[b.Line], b.Offsets[b.Line], b.OffsetInLine)
	b.Column = end - b.OffsetInLine
	b.WantedColumn = b.Column
}

// FirstLine moves the cursor to the start of the buffer.
func (b *Buffer) FirstLine() {
	b.Line, b.OffsetInLine, b.Column, b.WantedColumn = 0, 0, 0, 0
}

// LastLine moves the cursor to the start of the last line.
func (b *Buffer) LastLine() {
	b.Line = len(b.Lines) - 1
	b.OffsetInLine, b.Column, b.WantedColumn = 0, 0, 0
}

// GotoLine jumps to the given 1-based line number, clamped to range. Added
// per SPEC_FULL.md as the symmetric companion to FirstLine/LastLine.
func (b *Buffer) GotoLine(n int) {
	n--
	if n < 0 {
		n = 0
	}
	if n >= len(b.Lines) {
		n = len(b.Lines) - 1
	}
	b.Line, b.OffsetInLine, b.Column, b.WantedColumn = n, 0, 0, 0
}

// PrevPage and NextPage move by (visibleRows-1) visual rows, clamped at the
// buffer's edges.
func (b *Buffer) PrevPage(visibleRows int) {
	for i := 0; i < visibleRows-1 && !(b.Line == 0 && b.OffsetInLine == 0); i++ {
		b.MoveUp()
	}
}

func (b *Buffer) NextPage(visibleRows int) {
	for i := 0; i < visibleRows-1; i++ {
		before := b.Line
		beforeOff := b.OffsetInLine
		b.MoveDown()
		if b.Line == before && b.OffsetInLine == beforeOff {
			break
		}
	}
}

// ScrollUp and ScrollDown move the viewport anchor by n visual rows without
// moving the cursor.
func (b *Buffer) ScrollUp(n int) {
	for i := 0; i < n && !(b.FirstLineToDisplay == 0 && b.OffsetInLineToDisplay == 0); i++ {
		offs := b.Offsets[b.FirstLineToDisplay]
		if b.OffsetInLineToDisplay > 0 {
			prev := 0
			for _, o := range offs {
				if o < b.OffsetInLineToDisplay {
					prev = o
				}
			}
			b.OffsetInLineToDisplay = prev
		} else if b.FirstLineToDisplay > 0 {
			b.FirstLineToDisplay--
			offs = b.Offsets[b.FirstLineToDisplay]
			b.OffsetInLineToDisplay = offs[len(offs)-1]
		}
	}
}

func (b *Buffer) ScrollDown(n int) {
	for i := 0; i < n; i++ {
		offs := b.Offsets[b.FirstLineToDisplay]
		end := visualRowEnd(b.Lines[b.FirstLineToDisplay], offs, b.OffsetInLineToDisplay)
		if end < len([]rune(b.Lines[b.FirstLineToDisplay])) {
			b.OffsetInLineToDisplay = end
		} else if b.FirstLineToDisplay < len(b.Lines)-1 {
			b.FirstLineToDisplay++
			b.OffsetInLineToDisplay = 0
		} else {
			break
		}
	}
}

// --- Edit (spec.md §4.2 "Edit") ---

// normalizeNewlines converts "\r\n" and "\r" to "\n" so Insert's splitting
// logic only ever handles one line-terminator form.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// Insert splits text on "\n" (after normalizing "\r\n"/"\r") and splices it
// into the buffer at the cursor: the first fragment joins the current line,
// later fragments become new lines, and the cursor ends at the insertion
// end, per spec.md §4.2.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	text = normalizeNewlines(text)
	parts := strings.Split(text, "\n")

	runes := b.currentLineRunes()
	col := b.absoluteColumn()
	before := string(runes[:col])
	after := string(runes[col:])

	if len(parts) == 1 {
		b.Lines[b.Line] = before + parts[0] + after
		b.syncLineChanged(b.Line)
		b.syncFromAbsolute(col + len([]rune(parts[0])))
	} else {
		newLines := make([]string, 0, len(parts))
		newLines = append(newLines, before+parts[0])
		for i := 1; i < len(parts)-1; i++ {
			newLines = append(newLines, parts[i])
		}
		last := parts[len(parts)-1]
		newLines = append(newLines, last+after)

		tail := append([]string(nil), b.Lines[b.Line+1:]...)
		b.Lines = append(b.Lines[:b.Line], newLines...)
		b.Lines = append(b.Lines, tail...)

		b.Offsets = nil
		b.RecomputeOffsets(b.rowWidth)
		b.Line += len(parts) - 1
		b.syncFromAbsolute(len([]rune(last)))
	}
	b.Dirty = true
}

func (b *Buffer) syncLineChanged(line int) {
	b.Offsets[line] = computeOffsets(b.Lines[line], b.rowWidth)
	b.clampOffsetInLine()
}

// Backspace deletes n runes before the cursor, joining with the previous
// line at a line-start boundary.
func (b *Buffer) Backspace(n int) {
	for i := 0; i < n; i++ {
		col := b.absoluteColumn()
		if col > 0 {
			runes := b.currentLineRunes()
			b.Lines[b.Line] = string(runes[:col-1]) + string(runes[col:])
			b.syncLineChanged(b.Line)
			b.syncFromAbsolute(col - 1)
			b.Dirty = true
		} else if b.Line > 0 {
			prevLen := len([]rune(b.Lines[b.Line-1]))
			b.Lines[b.Line-1] += b.Lines[b.Line]
			b.Lines = append(b.Lines[:b.Line], b.Lines[b.Line+1:]...)
			b.Line--
			b.Offsets = nil
			b.RecomputeOffsets(b.rowWidth)
			b.syncFromAbsolute(prevLen)
			b.Dirty = true
		}
	}
}

// Delete removes n runes starting at the cursor, joining with the next
// line at a line-end boundary. It mirrors Backspace per spec.md §4.2.
func (b *Buffer) Delete(n int) {
	for i := 0; i < n; i++ {
		runes := b.currentLineRunes()
		col := b.absoluteColumn()
		if col < len(runes) {
			b.Lines[b.Line] = string(runes[:col]) + string(runes[col+1:])
			b.syncLineChanged(b.Line)
			b.syncFromAbsolute(col)
			b.Dirty = true
		} else if b.Line < len(b.Lines)-1 {
			b.Lines[b.Line] += b.Lines[b.Line+1]
			b.Lines = append(b.Lines[:b.Line+1], b.Lines[b.Line+2:]...)
			b.Offsets = nil
			b.RecomputeOffsets(b.rowWidth)
			b.syncFromAbsolute(col)
			b.Dirty = true
		}
	}
}

// PlainText joins Lines with "\n", the buffer's in-memory canonical form
// independent of Format (which only governs on-disk line endings).
func (b *Buffer) PlainText() string {
	return strings.Join(b.Lines, "\n")
}
