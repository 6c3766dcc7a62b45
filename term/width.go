package term

import "github.com/unilibs/uniwidth"

// runeWidth returns the terminal column width of r: 2 for wide characters
// (CJK ideographs, fullwidth forms, emoji), 1 for normal printable runes,
// 0 for zero-width marks and control characters.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune reports whether r occupies two grid columns.
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}
