package term

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ansiPalette holds the 16 standard ANSI colors (0-7 normal, 8-15 bright),
// used by SGR 30-37/90-97/40-47/100-107 and by the 256-color table's first
// 16 entries.
var ansiPalette = [16][3]uint8{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}

// palette256 is the full 256-color xterm-compatible table: 16 ANSI colors,
// a 6x6x6 color cube, then a 24-step grayscale ramp.
var palette256 [256][3]uint8

func init() {
	copy(palette256[:16], ansiPalette[:])

	i := 16
	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				palette256[i] = [3]uint8{steps[r], steps[g], steps[b]}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		palette256[232+j] = [3]uint8{gray, gray, gray}
	}
}

// indexedRGB444 converts a 256-color palette index to a quantized 12-bit
// 4-bit-per-channel value, per spec.md §3's "attribute word" packing.
func indexedRGB444(index int) uint16 {
	if index < 0 || index > 255 {
		return 0
	}
	rgb := palette256[index]
	return nearestRGB444(rgb[0], rgb[1], rgb[2])
}

// nearestRGB444 quantizes r,g,b to the 4-bit-per-channel level combination
// that is perceptually closest to the original color, rather than always
// truncating each channel toward zero. Truncation alone systematically
// darkens every channel; checking both the floor and ceiling candidate
// level per channel and picking the combination with the smallest Lab
// distance removes that bias.
func nearestRGB444(r, g, b uint8) uint16 {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

	bestDist := math.MaxFloat64
	var best uint16
	for _, rl := range candidateLevels(r) {
		for _, gl := range candidateLevels(g) {
			for _, bl := range candidateLevels(b) {
				cand := uint16(rl)<<8 | uint16(gl)<<4 | uint16(bl)
				cr, cg, cb := rgb888(cand)
				c := colorful.Color{R: float64(cr) / 255, G: float64(cg) / 255, B: float64(cb) / 255}
				if d := target.DistanceLab(c); d < bestDist {
					bestDist = d
					best = cand
				}
			}
		}
	}
	return best
}

// candidateLevels returns the one or two 4-bit levels (0-15) adjacent to v
// when scaled down from 8 bits: the floor from a plain shift, plus the
// ceiling when it differs and stays in range.
func candidateLevels(v uint8) []uint8 {
	floor := v >> 4
	ceil := floor
	if floor < 15 {
		ceil = floor + 1
	}
	if ceil == floor {
		return []uint8{floor}
	}
	return []uint8{floor, ceil}
}
