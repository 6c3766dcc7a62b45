package editor

import "github.com/unilibs/uniwidth"

// runeWidth returns the visual column width of r, used by wrap-offset
// computation and cursor column math (spec.md §4.2, ambient stack).
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}
