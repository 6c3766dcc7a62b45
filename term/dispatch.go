package term

// dispatchC0 handles bytes 0x00-0x1F (other than ESC, handled in feedNone)
// per spec.md §4.1 "In None".
func (t *Terminal) dispatchC0(b byte) {
	s := t.screen()
	switch b {
	case 0x08: // BS
		if s.cx > 0 {
			s.cx--
			s.eol = false
		}
	case 0x09: // HT
		t.advanceTab()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		t.lineFeed()
	case 0x0d: // CR
		s.cx = 0
		s.eol = false
	case 0x0e: // SO: select G1 into GL
		t.gl = 1
	case 0x0f: // SI: select G0 into GL
		t.gl = 0
	}
	t.setDirtyLocked()
}

// lineFeed moves the cursor down one row, scrolling the region if already
// at its bottom edge. If LNM is set it also returns to column 0.
func (t *Terminal) lineFeed() {
	s := t.screen()
	if s.cy == s.scrollY1-1 {
		s.ScrollUp(s.scrollY0, s.scrollY1, 1)
	} else if s.cy < s.height-1 {
		s.cy++
	}
	if t.hasMode(ModeLineFeedNewLine) {
		s.cx = 0
	}
	s.eol = false
}

// advanceTab moves the cursor to the next tab stop, or the last column.
func (t *Terminal) advanceTab() {
	s := t.screen()
	for _, stop := range s.tabStops {
		if stop > s.cx {
			s.cx = stop
			return
		}
	}
	s.cx = s.width - 1
}

// dispatchEscape handles a completed Esc-state sequence. fn is the full
// accumulated byte sequence including the final byte but excluding ESC
// itself (e.g. "7", "(B", "#8").
func (t *Terminal) dispatchEscape(fn []byte) {
	if len(fn) == 0 {
		return
	}
	s := t.screen()
	defer t.setDirtyLocked()

	if len(fn) == 2 {
		switch fn[0] {
		case '(':
			t.g0 = charsetFromDesignator(fn[1])
			return
		case ')':
			t.g1 = charsetFromDesignator(fn[1])
			return
		case '#':
			// "#8" DECALN: fill screen with 'E'. Other "#"-forms are ignored.
			if fn[1] == '8' {
				for y := 0; y < s.height; y++ {
					row := s.Row(y)
					for x := range row {
						row[x] = NewCell('E', DefaultAttr)
					}
				}
			}
			return
		}
	}

	if len(fn) != 1 {
		return
	}

	switch fn[0] {
	case 'c': // RIS: full reset
		t.resetHard()
	case 'D': // IND
		t.lineFeed()
	case 'M': // RI: reverse index
		if s.cy == s.scrollY0 {
			s.ScrollDown(s.scrollY0, s.scrollY1, 1)
		} else if s.cy > 0 {
			s.cy--
		}
		s.eol = false
	case 'E': // NEL
		s.cx = 0
		t.lineFeed()
	case 'H': // HTS: set tab stop at cursor
		t.setTabStop(s.cx)
	case '7': // DECSC
		t.saveCursor(&t.savedPrimary)
		if t.usingAlt {
			t.saveCursor(&t.savedAlternate)
		}
	case '8': // DECRC
		if t.usingAlt {
			t.restoreCursor(&t.savedAlternate)
		} else {
			t.restoreCursor(&t.savedPrimary)
		}
	case 'N': // SS2
		t.singleShift = 2
	case 'O': // SS3
		t.singleShift = 3
	case '=', '>': // DECKPAM / DECKPNM: keypad modes, no grid effect
	}
}

func charsetFromDesignator(b byte) charsetKind {
	switch b {
	case '0':
		return charsetGraphics
	case 'A':
		return charsetUK
	default:
		return charsetASCII
	}
}

func (t *Terminal) setTabStop(x int) {
	s := t.screen()
	for _, v := range s.tabStops {
		if v == x {
			return
		}
	}
	s.tabStops = append(s.tabStops, x)
	// keep ascending
	for i := len(s.tabStops) - 1; i > 0 && s.tabStops[i] < s.tabStops[i-1]; i-- {
		s.tabStops[i], s.tabStops[i-1] = s.tabStops[i-1], s.tabStops[i]
	}
}

func (t *Terminal) saveCursor(dst *SavedCursor) {
	s := t.screen()
	*dst = SavedCursor{
		CX: s.cx, CY: s.cy,
		Attr:       s.template,
		G0:         t.g0, G1: t.g1,
		GL:         t.gl,
		Autowrap:   t.hasMode(ModeAutowrap),
		OriginMode: t.hasMode(ModeOrigin),
	}
}

func (t *Terminal) restoreCursor(src *SavedCursor) {
	s := t.screen()
	s.cx, s.cy = src.CX, src.CY
	s.template = src.Attr
	t.g0, t.g1 = src.G0, src.G1
	t.gl = src.GL
	if src.Autowrap {
		t.setMode(ModeAutowrap)
	} else {
		t.resetMode(ModeAutowrap)
	}
	if src.OriginMode {
		t.setMode(ModeOrigin)
	} else {
		t.resetMode(ModeOrigin)
	}
	s.ClampCursor()
}

// resetHard implements RIS: clears both screens, resets modes, cursor,
// charsets and scroll region to their power-on defaults.
func (t *Terminal) resetHard() {
	w, h := t.primary.width, t.primary.height
	t.primary = NewScreen(w, h)
	t.alternate = newAltScreen(w, h)
	t.usingAlt = false
	t.modes = defaultModes
	t.g0, t.g1 = charsetASCII, charsetASCII
	t.gl = 0
	t.singleShift = 0
	t.savedPrimary = SavedCursor{}
	t.savedAlternate = SavedCursor{}
}

// dispatchCSI handles a completed Csi-state sequence.
func (t *Terminal) dispatchCSI(private byte, params []int, interm []byte, final byte) {
	defer t.setDirtyLocked()

	if len(interm) == 1 && interm[0] == '!' && final == 'p' {
		t.decstr()
		return
	}
	if private == '?' {
		t.dispatchPrivateCSI(params, final)
		return
	}

	s := t.screen()
	switch final {
	case '@': // ICH
		t.insertChars(paramMin1(params, 0, 1))
	case 'A': // CUU
		t.moveCursor(0, -paramMin1(params, 0, 1))
	case 'B': // CUD
		t.moveCursor(0, paramMin1(params, 0, 1))
	case 'C': // CUF
		t.moveCursor(paramMin1(params, 0, 1), 0)
	case 'D': // CUB
		t.moveCursor(-paramMin1(params, 0, 1), 0)
	case 'E': // CNL
		t.moveCursor(0, paramMin1(params, 0, 1))
		s.cx = 0
	case 'F': // CPL
		t.moveCursor(0, -paramMin1(params, 0, 1))
		s.cx = 0
	case 'G', '`': // CHA, HPA
		t.setCursorColumn(paramMin1(params, 0, 1) - 1)
	case 'H', 'f': // CUP, HVP
		t.setCursorPosition(paramMin1(params, 0, 1)-1, paramMin1(params, 1, 1)-1)
	case 'I': // CHT: forward n tab stops
		for i := 0; i < paramMin1(params, 0, 1); i++ {
			t.advanceTab()
		}
	case 'J': // ED
		t.eraseDisplay(param(params, 0, 0))
	case 'K': // EL
		t.eraseLine(param(params, 0, 0))
	case 'L': // IL
		s.ScrollDown(s.cy, s.scrollY1, paramMin1(params, 0, 1))
	case 'M': // DL
		s.ScrollUp(s.cy, s.scrollY1, paramMin1(params, 0, 1))
	case 'P': // DCH
		t.deleteChars(paramMin1(params, 0, 1))
	case 'S': // SU
		s.ScrollUp(s.scrollY0, s.scrollY1, paramMin1(params, 0, 1))
	case 'T': // SD
		s.ScrollDown(s.scrollY0, s.scrollY1, paramMin1(params, 0, 1))
	case 'W': // CTC
		t.tabControl(param(params, 0, 0))
	case 'X': // ECH
		t.eraseChars(paramMin1(params, 0, 1))
	case 'Z': // CBT: backward n tab stops
		for i := 0; i < paramMin1(params, 0, 1); i++ {
			t.backwardTab()
		}
	case 'a': // HPR
		t.moveCursor(paramMin1(params, 0, 1), 0)
	case 'b': // REP: repeat preceding character
		t.repeatLastChar(paramMin1(params, 0, 1))
	case 'c': // DA
		t.queueResponse([]byte("\x1b[?1;2c"))
	case 'd': // VPA
		t.setCursorRow(paramMin1(params, 0, 1) - 1)
	case 'e': // VPR
		t.moveCursor(0, paramMin1(params, 0, 1))
	case 'g': // TBC
		t.clearTabStops(param(params, 0, 0))
	case 'h': // SM
		t.setModes(params, true)
	case 'l': // RM
		t.setModes(params, false)
	case 'm': // SGR
		t.applySGR(params)
	case 'n': // DSR
		t.deviceStatusReport(param(params, 0, 0))
	case 'r': // DECSTBM
		t.setScrollRegion(param(params, 0, 1), param(params, 1, s.height))
	case 's': // SCP
		t.scpCX, t.scpCY = s.cx, s.cy
	case 'u': // RCP
		s.cx, s.cy = t.scpCX, t.scpCY
		s.ClampCursor()
	case 'x': // DECREQTPARM
		t.queueResponse([]byte("\x1b[2;1;1;112;112;1;0x"))
	}
}

// decstr implements DECSTR (soft terminal reset): resets modes and cursor
// attributes without clearing the screen contents.
func (t *Terminal) decstr() {
	s := t.screen()
	t.modes = defaultModes
	s.template = DefaultAttr
	s.scrollY0, s.scrollY1 = 0, s.height
	s.cx, s.cy, s.eol = 0, 0, false
	t.g0, t.g1 = charsetASCII, charsetASCII
	t.gl = 0
}

func (t *Terminal) dispatchPrivateCSI(params []int, final byte) {
	switch final {
	case 'h':
		t.setPrivateModes(params, true)
	case 'l':
		t.setPrivateModes(params, false)
	}
}

func (t *Terminal) setModes(params []int, set bool) {
	for _, p := range params {
		switch p {
		case 4: // IRM
			t.toggleMode(ModeInsert, set)
		case 20: // LNM
			t.toggleMode(ModeLineFeedNewLine, set)
		}
	}
}

func (t *Terminal) toggleMode(m Mode, set bool) {
	if set {
		t.setMode(m)
	} else {
		t.resetMode(m)
	}
}

// setPrivateModes implements SM/RM for the DEC private modes named in
// spec.md §6: ?1 ?3 ?5 ?6 ?7 ?25 ?40 ?67 ?1049.
func (t *Terminal) setPrivateModes(params []int, set bool) {
	for _, p := range params {
		switch p {
		case 1: // DECCKM
			t.toggleMode(ModeCursorKeys, set)
		case 3: // DECCOLM: switch 80/132 columns, hard reset when enabled
			t.toggleMode(ModeColumn132, set)
			width := 80
			if set {
				width = 132
			}
			t.primary.Resize(width, t.primary.height)
			t.alternate.Resize(width, t.alternate.height)
			t.screen().ClearAll()
			t.screen().cx, t.screen().cy = 0, 0
		case 5: // DECSCNM
			t.toggleMode(ModeInverse, set)
		case 6: // DECOM
			t.toggleMode(ModeOrigin, set)
			t.setCursorPosition(0, 0)
		case 7: // DECAWM
			t.toggleMode(ModeAutowrap, set)
		case 25: // DECTCEM
			t.toggleMode(ModeCursorVisible, set)
		case 40: // allow DECCOLM switching; tracked but not separately gated
		case 67: // DECBKM
			t.toggleMode(ModeBackspaceSendsDel, set)
		case 1049: // alt screen + save/restore cursor
			t.toggleAltScreen(set)
		}
	}
}

func (t *Terminal) toggleAltScreen(enter bool) {
	if enter == t.usingAlt {
		return
	}
	if enter {
		t.saveCursor(&t.savedPrimary)
		t.usingAlt = true
		t.alternate.ClearAll()
		t.alternate.cx, t.alternate.cy = 0, 0
	} else {
		t.usingAlt = false
		t.restoreCursor(&t.savedPrimary)
	}
	t.setMode(ModeAltScreen)
	if !enter {
		t.resetMode(ModeAltScreen)
	}
}

// ClearAll resets every cell of the screen to blank.
func (s *Screen) ClearAll() {
	for y := 0; y < s.height; y++ {
		row := s.Row(y)
		for x := range row {
			row[x] = BlankCell
		}
	}
}

func (t *Terminal) setScrollRegion(top, bottom int) {
	s := t.screen()
	if top < 1 {
		top = 1
	}
	if bottom > s.height {
		bottom = s.height
	}
	if top >= bottom {
		s.scrollY0, s.scrollY1 = 0, s.height
		return
	}
	s.scrollY0, s.scrollY1 = top-1, bottom
	t.setCursorPosition(0, 0)
}

func (t *Terminal) deviceStatusReport(n int) {
	switch n {
	case 5:
		t.queueResponse([]byte("\x1b[0n"))
	case 6:
		s := t.screen()
		row, col := s.cy+1, s.cx+1
		if t.hasMode(ModeOrigin) {
			row -= s.scrollY0
		}
		t.queueResponse([]byte(csiReport(row, col)))
	}
}

func csiReport(row, col int) string {
	return "\x1b[" + itoa(row) + ";" + itoa(col) + "R"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func (t *Terminal) tabControl(n int) {
	s := t.screen()
	switch n {
	case 0:
		t.setTabStop(s.cx)
	case 2:
		t.clearTabStops(0)
	case 5:
		t.clearTabStops(3)
	}
}

func (t *Terminal) clearTabStops(mode int) {
	s := t.screen()
	switch mode {
	case 0:
		out := s.tabStops[:0]
		for _, v := range s.tabStops {
			if v != s.cx {
				out = append(out, v)
			}
		}
		s.tabStops = out
	case 3:
		s.tabStops = s.tabStops[:0]
	}
}

func (t *Terminal) backwardTab() {
	s := t.screen()
	for i := len(s.tabStops) - 1; i >= 0; i-- {
		if s.tabStops[i] < s.cx {
			s.cx = s.tabStops[i]
			return
		}
	}
	s.cx = 0
}

// moveCursor moves the cursor by (dx, dy), clamping to the grid (or scroll
// region vertically when origin mode is set) without wrapping.
func (t *Terminal) moveCursor(dx, dy int) {
	s := t.screen()
	s.cx = clampInt(s.cx+dx, 0, s.width-1)
	lo, hi := 0, s.height-1
	if t.hasMode(ModeOrigin) {
		lo, hi = s.scrollY0, s.scrollY1-1
	}
	s.cy = clampInt(s.cy+dy, lo, hi)
	s.eol = false
}

func (t *Terminal) setCursorColumn(x int) {
	s := t.screen()
	s.cx = clampInt(x, 0, s.width-1)
	s.eol = false
}

func (t *Terminal) setCursorRow(y int) {
	s := t.screen()
	lo, hi := 0, s.height-1
	if t.hasMode(ModeOrigin) {
		lo, hi = s.scrollY0, s.scrollY1-1
		y += s.scrollY0
	}
	s.cy = clampInt(y, lo, hi)
	s.eol = false
}

// setCursorPosition implements CUP/HVP: coordinates are relative to the
// scroll region when DECOM (origin mode) is set, per spec.md §4.1.
func (t *Terminal) setCursorPosition(row, col int) {
	s := t.screen()
	if t.hasMode(ModeOrigin) {
		row += s.scrollY0
		s.cy = clampInt(row, s.scrollY0, s.scrollY1-1)
	} else {
		s.cy = clampInt(row, 0, s.height-1)
	}
	s.cx = clampInt(col, 0, s.width-1)
	s.eol = false
}

func (t *Terminal) eraseDisplay(mode int) {
	s := t.screen()
	switch mode {
	case 0:
		s.ClearRowRange(s.cy, s.cx, s.width, s.template)
		for y := s.cy + 1; y < s.height; y++ {
			s.ClearRowRange(y, 0, s.width, s.template)
		}
	case 1:
		for y := 0; y < s.cy; y++ {
			s.ClearRowRange(y, 0, s.width, s.template)
		}
		s.ClearRowRange(s.cy, 0, s.cx+1, s.template)
	case 2, 3:
		for y := 0; y < s.height; y++ {
			s.ClearRowRange(y, 0, s.width, s.template)
		}
	}
}

func (t *Terminal) eraseLine(mode int) {
	s := t.screen()
	switch mode {
	case 0:
		s.ClearRowRange(s.cy, s.cx, s.width, s.template)
	case 1:
		s.ClearRowRange(s.cy, 0, s.cx+1, s.template)
	case 2:
		s.ClearRowRange(s.cy, 0, s.width, s.template)
	}
}

// ClearRowRange resets cells [startCol, endCol) of row to attr-blank.
func (s *Screen) ClearRowRange(row, startCol, endCol int, attr Attr) {
	if row < 0 || row >= s.height {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > s.width {
		endCol = s.width
	}
	for x := startCol; x < endCol; x++ {
		s.grid[row][x] = NewCell(BlankCodepoint, attr)
	}
}

func (t *Terminal) eraseChars(n int) {
	s := t.screen()
	s.ClearRowRange(s.cy, s.cx, s.cx+n, s.template)
}

func (t *Terminal) insertChars(n int) {
	s := t.screen()
	row := s.Row(s.cy)
	if row == nil {
		return
	}
	if n > s.width-s.cx {
		n = s.width - s.cx
	}
	copy(row[s.cx+n:], row[s.cx:s.width-n])
	for x := s.cx; x < s.cx+n; x++ {
		row[x] = NewCell(BlankCodepoint, s.template)
	}
}

func (t *Terminal) deleteChars(n int) {
	s := t.screen()
	row := s.Row(s.cy)
	if row == nil {
		return
	}
	if n > s.width-s.cx {
		n = s.width - s.cx
	}
	copy(row[s.cx:], row[s.cx+n:])
	for x := s.width - n; x < s.width; x++ {
		row[x] = NewCell(BlankCodepoint, s.template)
	}
}

func (t *Terminal) repeatLastChar(n int) {
	s := t.screen()
	if s.cx == 0 {
		return
	}
	last := s.Cell(s.cx-1, s.cy)
	for i := 0; i < n; i++ {
		t.echoRune(last.Codepoint())
	}
}
