package term

// MinDimension and MaxDimension bound resize(w,h) per spec.md §4.1.
const (
	MinDimension = 2
	MaxDimension = 256
)

// SavedCursor is the aggregate copied by DECSC/save-on-alt-screen-swap and
// restored by DECRC/restore-on-alt-screen-swap. It is a plain value type:
// saving copies it, restoring copies it back, never shared by reference.
type SavedCursor struct {
	CX, CY     int
	Attr       Attr
	G0, G1     charsetKind
	GL         int // 0 or 1, selects G0/G1 as active via SO/SI
	Autowrap   bool
	OriginMode bool
}

// Screen is the rectangular cell grid plus the cursor, scroll-region, tab
// stop, and scrollback state for one VT100-compatible display surface.
// Screen by itself holds no lock; Terminal (terminal.go) serializes all
// access per spec.md §5.
type Screen struct {
	width, height int

	grid [][]Cell // height rows x width cols, row-major

	cx, cy int  // cursor position; cx may equal width (eol sentinel)
	eol    bool // "past end of line" pending-wrap flag

	scrollY0, scrollY1 int // half-open scroll region [y0, y1)

	tabStops []int // ascending column positions with a tab stop

	history   []HistoryRow // append-only rows scrolled or truncated off the top
	noHistory bool         // true for the alternate screen: it keeps no scrollback

	template Attr // attribute applied to the next printed cell
}

// HistoryRow is one row preserved in scrollback, independent from the
// live grid so it survives a Resize that shrinks height below it.
type HistoryRow struct {
	Cells []Cell
}

// NewScreen allocates a blank width x height grid with default tab stops
// every 8 columns and a scroll region spanning the whole screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.resizeGrid(width, height)
	s.scrollY0, s.scrollY1 = 0, height
	s.resetTabStops()
	return s
}

// newAltScreen allocates a blank screen with scrollback disabled, matching
// the teacher's "alternate buffer has no scrollback" convention.
func newAltScreen(width, height int) *Screen {
	s := NewScreen(width, height)
	s.noHistory = true
	return s
}

func (s *Screen) resetTabStops() {
	s.tabStops = s.tabStops[:0]
	for x := 0; x < s.width; x += 8 {
		s.tabStops = append(s.tabStops, x)
	}
}

func (s *Screen) resizeGrid(width, height int) {
	grid := make([][]Cell, height)
	for y := range grid {
		row := make([]Cell, width)
		for x := range row {
			row[x] = BlankCell
		}
		grid[y] = row
	}
	s.grid = grid
	s.width, s.height = width, height
}

// Width and Height report the live grid dimensions.
func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Cell returns the cell at (x, y), or BlankCell if out of range.
func (s *Screen) Cell(x, y int) Cell {
	if y < 0 || y >= s.height || x < 0 || x >= s.width {
		return BlankCell
	}
	return s.grid[y][x]
}

// SetCell writes a cell at (x, y). Out-of-range writes are ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if y < 0 || y >= s.height || x < 0 || x >= s.width {
		return
	}
	s.grid[y][x] = c
}

// Row returns a mutable slice of the cells composing row y, or nil if out
// of range. Callers must not retain it past the next mutating call.
func (s *Screen) Row(y int) []Cell {
	if y < 0 || y >= s.height {
		return nil
	}
	return s.grid[y]
}

// ClampCursor clamps (cx, cy) into the live grid and clears the eol flag
// whenever cx no longer sits at the sentinel width position.
func (s *Screen) ClampCursor() {
	if s.cy < 0 {
		s.cy = 0
	}
	if s.cy >= s.height {
		s.cy = s.height - 1
	}
	if s.cx < 0 {
		s.cx = 0
	}
	if s.cx > s.width {
		s.cx = s.width
	}
	if s.cx != s.width {
		s.eol = false
	}
}

// pushHistory appends a row to the scrollback, independent of the live grid.
// A no-history screen (the alternate buffer) discards it instead.
func (s *Screen) pushHistory(row []Cell) {
	if s.noHistory {
		return
	}
	cp := make([]Cell, len(row))
	copy(cp, row)
	s.history = append(s.history, HistoryRow{Cells: cp})
}

// HistoryLen returns the number of rows preserved in scrollback.
func (s *Screen) HistoryLen() int { return len(s.history) }

// HistoryAt returns the i-th oldest scrollback row.
func (s *Screen) HistoryAt(i int) HistoryRow { return s.history[i] }

// ScrollUp moves rows [top,bottom) up by n, scrolling n new blank rows in
// at the bottom. If the scrolled region is the full screen and top==0,
// the evicted rows are appended to history (spec.md §4.1 "Scrolling").
func (s *Screen) ScrollUp(top, bottom, n int) {
	if n <= 0 || top >= bottom || top < 0 || bottom > s.height {
		return
	}
	if n > bottom-top {
		n = bottom - top
	}

	fullScreen := top == 0 && bottom == s.height
	if fullScreen {
		for i := 0; i < n; i++ {
			s.pushHistory(s.grid[top+i])
		}
	}

	copy(s.grid[top:bottom-n], s.grid[top+n:bottom])
	for y := bottom - n; y < bottom; y++ {
		row := make([]Cell, s.width)
		for x := range row {
			row[x] = NewCell(BlankCodepoint, s.template)
		}
		s.grid[y] = row
	}
}

// ScrollDown moves rows [top,bottom) down by n, scrolling n blank rows in
// at the top. Rows outside [top,bottom) are never touched.
func (s *Screen) ScrollDown(top, bottom, n int) {
	if n <= 0 || top >= bottom || top < 0 || bottom > s.height {
		return
	}
	if n > bottom-top {
		n = bottom - top
	}

	copy(s.grid[top+n:bottom], s.grid[top:bottom-n])
	for y := top; y < top+n; y++ {
		row := make([]Cell, s.width)
		for x := range row {
			row[x] = NewCell(BlankCodepoint, s.template)
		}
		s.grid[y] = row
	}
}

// Resize changes the grid dimensions per spec.md §4.1: when shrinking, the
// topmost rows that no longer fit are appended to history; rows are pulled back from
// history when enlarging; attributes are preserved; the cursor and scroll
// region are clamped. Returns false for out-of-range dimensions.
func (s *Screen) Resize(width, height int) bool {
	if width < MinDimension || width > MaxDimension || height < MinDimension || height > MaxDimension {
		return false
	}
	if width == s.width && height == s.height {
		return true
	}

	oldGrid := s.grid
	oldHeight := s.height

	if height < oldHeight {
		// Truncate rows above the new viewport into history, oldest first,
		// keeping the bottom `height` rows (nearest the cursor) visible.
		overflow := oldHeight - height
		for i := 0; i < overflow; i++ {
			s.pushHistory(oldGrid[i])
		}
		oldGrid = oldGrid[overflow:]
	}

	newGrid := make([][]Cell, height)
	for y := 0; y < height; y++ {
		row := make([]Cell, width)
		for x := range row {
			row[x] = BlankCell
		}
		if height > oldHeight {
			// Pull rows back from history to fill the newly exposed top rows.
			pulled := height - oldHeight
			if y < pulled && len(s.history) > 0 {
				h := s.history[len(s.history)-1]
				s.history = s.history[:len(s.history)-1]
				copy(row, h.Cells)
			} else {
				srcY := y - pulled
				if srcY >= 0 && srcY < len(oldGrid) {
					copy(row, oldGrid[srcY])
				}
			}
		} else if y < len(oldGrid) {
			copy(row, oldGrid[y])
		}
		newGrid[y] = row
	}

	s.grid = newGrid
	s.width, s.height = width, height
	s.resetTabStops()

	if s.scrollY1 > height || s.scrollY1 == oldHeight {
		s.scrollY1 = height
	}
	if s.scrollY0 >= s.scrollY1 {
		s.scrollY0 = 0
	}

	s.ClampCursor()
	return true
}
