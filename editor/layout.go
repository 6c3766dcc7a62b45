package editor

import (
	"strings"

	"github.com/jline/jline3-sub001/attrline"
)

// gutterWidth is the fixed width of the line-number column when enabled,
// per spec.md §4.2's layout note for an optional gutter.
const gutterWidth = 8

// Layout partitions a screen of the given size into header, body, and
// footer regions. The header is one row normally, two when a second title
// line is shown; the footer reserves a message row plus two shortcut-hint
// rows.
type Layout struct {
	Rows, Cols  int
	HeaderRows  int
	FooterRows  int
	ShowGutter  bool
}

// NewLayout builds a Layout for a rows x cols screen. headerRows must be 1
// or 2; anything else is clamped to 1.
func NewLayout(rows, cols, headerRows int, showGutter bool) Layout {
	if headerRows != 1 && headerRows != 2 {
		headerRows = 1
	}
	return Layout{Rows: rows, Cols: cols, HeaderRows: headerRows, FooterRows: 3, ShowGutter: showGutter}
}

// BodyRows returns the number of rows available for buffer content.
func (l Layout) BodyRows() int {
	n := l.Rows - l.HeaderRows - l.FooterRows
	if n < 0 {
		return 0
	}
	return n
}

// BodyCols returns the number of columns available for buffer content,
// after subtracting the line-number gutter when shown.
func (l Layout) BodyCols() int {
	n := l.Cols
	if l.ShowGutter {
		n -= gutterWidth
	}
	if n < 0 {
		return 0
	}
	return n
}

// Render produces one attrline.Line per screen row for the current buffer:
// a header row with the file name and dirty marker, the visible body rows
// (gutter-prefixed when enabled), a message row, and two shortcut rows.
func (l Layout) Render(b *Buffer, message string, shortcuts [][2]string) []attrline.Line {
	lines := make([]attrline.Line, 0, l.Rows)

	title := b.File
	if title == "" {
		title = "(unnamed)"
	}
	if b.Dirty {
		title += " [Modified]"
	}
	lines = append(lines, attrline.Line{Runs: []attrline.Run{{Text: title}}})
	if l.HeaderRows == 2 {
		lines = append(lines, attrline.Line{Runs: []attrline.Run{{Text: ""}}})
	}

	bodyRows := l.BodyRows()
	bodyCols := l.BodyCols()
	curLine, curSub := b.FirstLineToDisplay, b.OffsetInLineToDisplay
	for row := 0; row < bodyRows; row++ {
		text, hasCursor, cursorCol := l.renderBodyRow(b, row, bodyCols)
		var runs []attrline.Run
		if l.ShowGutter {
			label := strings.Repeat(" ", gutterWidth)
			if curSub == 0 && curLine < len(b.Lines) {
				label = gutterLabel(curLine)
			}
			runs = append(runs, attrline.Run{Text: label})
		}
		runs = append(runs, attrline.Run{Text: text})
		lines = append(lines, attrline.Line{Runs: runs, HasCursor: hasCursor, CursorCol: cursorCol})

		if curLine < len(b.Lines) {
			offsets := b.Offsets[curLine]
			if curSub+1 < len(offsets) {
				curSub++
			} else {
				curLine++
				curSub = 0
			}
		}
	}

	lines = append(lines, attrline.Line{Runs: []attrline.Run{{Text: message}}})
	for i := 0; i < 2 && i < len(shortcuts); i++ {
		sc := shortcuts[i]
		lines = append(lines, attrline.Line{Runs: []attrline.Run{{Text: sc[0] + "  " + sc[1]}}})
	}
	for len(lines) < l.Rows {
		lines = append(lines, attrline.Line{})
	}
	return lines
}

// renderBodyRow returns the visual row text at body-relative row index,
// walking FirstLineToDisplay forward through each logical line's offsets.
func (l Layout) renderBodyRow(b *Buffer, row, cols int) (text string, hasCursor bool, cursorCol int) {
	line := b.FirstLineToDisplay
	sub := b.OffsetInLineToDisplay
	for r := 0; r < row; r++ {
		if line >= len(b.Lines) {
			return "", false, 0
		}
		offsets := b.Offsets[line]
		if sub+1 < len(offsets) {
			sub++
		} else {
			line++
			sub = 0
		}
	}
	if line >= len(b.Lines) {
		return "", false, 0
	}

	runes := []rune(b.Lines[line])
	offsets := b.Offsets[line]
	start := offsets[sub]
	end := visualRowEnd(b.Lines[line], offsets, start)
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		start = end
	}
	visible := runes[start:end]
	if len(visible) > cols {
		visible = visible[:cols]
	}

	if b.Line == line {
		col := b.absoluteColumn() - start
		if col >= 0 && col <= len(visible) {
			hasCursor = true
			cursorCol = col
			if l.ShowGutter {
				cursorCol += gutterWidth
			}
		}
	}
	return string(visible), hasCursor, cursorCol
}

// gutterLabel formats a 1-indexed line number to fit the fixed gutter
// width, right-aligned with a trailing space separator.
func gutterLabel(logicalLine int) string {
	n := logicalLine + 1
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if len(digits) == 0 {
		digits = []byte{'0'}
	}
	pad := gutterWidth - 1 - len(digits)
	if pad < 0 {
		pad = 0
	}
	label := make([]byte, 0, gutterWidth)
	for i := 0; i < pad; i++ {
		label = append(label, ' ')
	}
	label = append(label, digits...)
	label = append(label, ' ')
	return string(label)
}

// MouseClick is a screen (row, col) click; Layout.Resolve translates it
// into a buffer cursor position, or into a shortcut index when the click
// lands in the footer's shortcut rows.
type MouseClick struct {
	Row, Col int
}

// ClickTarget reports what a click resolves to: either a buffer position
// (Line/Col valid, Shortcut == -1) or a footer shortcut index.
type ClickTarget struct {
	Line, Col int
	Shortcut  int
}

// Resolve maps a raw screen click through the layout into a ClickTarget.
func (l Layout) Resolve(b *Buffer, click MouseClick) ClickTarget {
	bodyStart := l.HeaderRows
	bodyEnd := bodyStart + l.BodyRows()
	footerStart := bodyEnd + 1 // skip the message row

	if click.Row >= footerStart && click.Row < l.Rows {
		return ClickTarget{Shortcut: click.Row - footerStart, Line: -1, Col: -1}
	}
	if click.Row < bodyStart || click.Row >= bodyEnd {
		return ClickTarget{Line: -1, Col: -1, Shortcut: -1}
	}

	bodyRow := click.Row - bodyStart
	col := click.Col
	if l.ShowGutter {
		col -= gutterWidth
		if col < 0 {
			col = 0
		}
	}

	line := b.FirstLineToDisplay
	sub := b.OffsetInLineToDisplay
	for r := 0; r < bodyRow; r++ {
		if line >= len(b.Lines) {
			break
		}
		offsets := b.Offsets[line]
		if sub+1 < len(offsets) {
			sub++
		} else {
			line++
			sub = 0
		}
	}
	if line >= len(b.Lines) {
		line = len(b.Lines) - 1
		sub = 0
	}
	offsets := b.Offsets[line]
	if sub >= len(offsets) {
		sub = len(offsets) - 1
	}
	start := offsets[sub]
	return ClickTarget{Line: line, Col: start + col, Shortcut: -1}
}
