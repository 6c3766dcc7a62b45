package term

// applySGR updates t.screen().template per spec.md §4.1's SGR table.
func (t *Terminal) applySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}

	a := t.screen().template

	for i := 0; i < len(params); i++ {
		p := params[i]
		if p < 0 {
			p = 0
		}
		switch {
		case p == 0:
			a = DefaultAttr
		case p == 1:
			a = a.WithStyle(AttrBold)
		case p == 4:
			a = a.WithStyle(AttrUnderline)
		case p == 7:
			a = a.WithStyle(AttrNegative)
		case p == 8:
			a = a.WithStyle(AttrConcealed)
		case p == 21 || p == 24:
			a = a.WithoutStyle(AttrUnderline)
		case p == 27:
			a = a.WithoutStyle(AttrNegative)
		case p == 28:
			a = a.WithoutStyle(AttrConcealed)
		case p == 22:
			a = a.WithoutStyle(AttrBold)
		case p >= 30 && p <= 37:
			a = a.WithFg(indexedRGB444(p - 30))
		case p == 38:
			i, a = t.sgrExtendedColor(params, i, a, true)
		case p == 39:
			a = a.WithoutFg()
		case p >= 40 && p <= 47:
			a = a.WithBg(indexedRGB444(p - 40))
		case p == 48:
			i, a = t.sgrExtendedColor(params, i, a, false)
		case p == 49:
			a = a.WithoutBg()
		case p >= 90 && p <= 97:
			a = a.WithFg(indexedRGB444(8 + p - 90))
		case p >= 100 && p <= 107:
			a = a.WithBg(indexedRGB444(8 + p - 100))
		}
	}

	t.screen().template = a
}

// sgrExtendedColor parses the "38;5;n" (256-color) or "38;2;r;g;b"
// (truecolor) forms starting at params[i] (which holds 38 or 48), setting
// fg when fg is true, bg otherwise. Returns the new scan index and attr.
func (t *Terminal) sgrExtendedColor(params []int, i int, a Attr, fg bool) (int, Attr) {
	if i+1 >= len(params) {
		return i, a
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			rgb := indexedRGB444(param(params, i+2, 0))
			if fg {
				a = a.WithFg(rgb)
			} else {
				a = a.WithBg(rgb)
			}
			return i + 2, a
		}
	case 2:
		if i+4 < len(params) {
			r := uint8(param(params, i+2, 0))
			g := uint8(param(params, i+3, 0))
			b := uint8(param(params, i+4, 0))
			rgb := nearestRGB444(r, g, b)
			if fg {
				a = a.WithFg(rgb)
			} else {
				a = a.WithBg(rgb)
			}
			return i + 4, a
		}
	}
	return i + 1, a
}
