package term

// echoByte feeds one raw input byte through incremental UTF-8 decoding and,
// once a full codepoint is assembled, hands it to echoRune. Invalid
// sequences are dropped and decoding resynchronizes on the next lead byte.
func (t *Terminal) echoByte(b byte) {
	p := &t.parser

	if p.utf8Need > 0 {
		if b&0xc0 == 0x80 {
			p.utf8Buf[p.utf8Len] = b
			p.utf8Len++
			p.utf8Need--
			if p.utf8Need == 0 {
				r := decodeUTF8(p.utf8Buf[:p.utf8Len])
				p.resetUTF8()
				t.echoDecodedByte(r, false)
			}
			return
		}
		// Invalid continuation: abandon the partial sequence and reprocess
		// b as a fresh lead byte.
		p.resetUTF8()
	}

	switch {
	case b < 0x80:
		t.echoDecodedByte(rune(b), true)
	case b&0xe0 == 0xc0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Need = 1
	case b&0xf0 == 0xe0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Need = 2
	case b&0xf8 == 0xf0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Need = 3
	default:
		// Stray continuation byte or invalid lead byte: ignore.
	}
}

// decodeUTF8 decodes a complete lead+continuation byte sequence previously
// validated by echoByte's state machine.
func decodeUTF8(buf []byte) rune {
	switch len(buf) {
	case 2:
		return rune(buf[0]&0x1f)<<6 | rune(buf[1]&0x3f)
	case 3:
		return rune(buf[0]&0x0f)<<12 | rune(buf[1]&0x3f)<<6 | rune(buf[2]&0x3f)
	case 4:
		return rune(buf[0]&0x07)<<18 | rune(buf[1]&0x3f)<<12 | rune(buf[2]&0x3f)<<6 | rune(buf[3]&0x3f)
	default:
		return 0xfffd
	}
}

// echoDecodedByte applies charset translation (only meaningful for a raw
// single ASCII byte) and single-shift consumption, then echoes the rune.
func (t *Terminal) echoDecodedByte(r rune, wasASCIIByte bool) {
	if wasASCIIByte && r >= 0x20 && r < 0x7f {
		kind := t.activeCharsetKind()
		r = translateCharset(kind, byte(r))
	} else if t.singleShift != 0 {
		t.singleShift = 0
	}
	t.echoRune(r)
}

// activeCharsetKind resolves the charset for the next printable character,
// consuming a pending single-shift (SS2/SS3) if one is active.
func (t *Terminal) activeCharsetKind() charsetKind {
	if t.singleShift == 2 || t.singleShift == 3 {
		t.singleShift = 0
		return t.g1
	}
	if t.gl == 1 {
		return t.g1
	}
	return t.g0
}

// echoRune implements spec.md §4.1 "Character echo": wrap/overwrite at eol,
// insert-mode shift, write, and cursor advance by the rune's column width.
//
// Open question resolution (spec.md §9): a double-width rune that would
// land with its right half past the last column pre-emptively wraps (as if
// a single-width rune had reached the eol sentinel) before being written,
// rather than splitting the glyph across two rows or inventing a
// continuation-cell sentinel.
func (t *Terminal) echoRune(r rune) {
	s := t.screen()
	w := runeWidth(r)
	if w == 0 {
		// Zero-width combining mark: merge into the previous cell's glyph
		// is out of scope for the grid model; drop it rather than advance
		// the cursor, matching "printable bytes go to the echo path" while
		// never corrupting column accounting.
		return
	}

	if s.eol || (w == 2 && s.cx == s.width-1) {
		t.wrapOrOverwrite()
	}

	if t.hasMode(ModeInsert) {
		t.shiftRowRight(w)
	}

	s.SetCell(s.cx, s.cy, NewCell(r, s.template))
	if w == 2 {
		s.SetCell(s.cx+1, s.cy, NewCell(0, s.template))
	}

	s.cx += w
	if s.cx >= s.width {
		s.eol = true
		s.cx = s.width - 1
	}
}

// wrapOrOverwrite resolves a pending eol sentinel: wraps to the next row
// (with implicit CR+LF) when DECAWM is set, else keeps overwriting the
// last cell.
func (t *Terminal) wrapOrOverwrite() {
	s := t.screen()
	if t.hasMode(ModeAutowrap) {
		s.cx = 0
		t.lineFeed()
	} else {
		s.cx = s.width - 1
		s.eol = false
	}
}

func (t *Terminal) shiftRowRight(w int) {
	s := t.screen()
	row := s.Row(s.cy)
	if row == nil {
		return
	}
	if s.cx+w >= s.width {
		return
	}
	copy(row[s.cx+w:], row[s.cx:s.width-w])
}
