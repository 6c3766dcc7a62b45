// Package charsetdetect implements the byte-histogram heuristic charset
// detector used by the editor on file open (spec.md §4.2 "Encoding").
//
// Open question resolution (spec.md §9): the detector never reports a
// platform-default charset. When the input is already valid UTF-8 (the
// common case), the result is always "UTF-8". A legacy single-byte
// decoder is only selected as a fallback when the stream is not valid
// UTF-8, fixing cross-platform determinism at the core boundary.
package charsetdetect

import (
	"strings"
	"unicode/utf8"

	gdencoding "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// candidate names a legacy single-byte charset considered when data is not
// valid UTF-8, and the high-byte range that heuristically favors it.
type candidate struct {
	name string
	enc  encoding.Encoding
	// loHi..hiHi is a rough histogram acceptance range for bytes >= 0x80.
	loHi, hiHi byte
}

var candidates = []candidate{
	// CP437's high half is mostly box-drawing/block glyphs in 0xB0-0xDF.
	{name: "CP437", enc: gdencoding.CP437, loHi: 0xb0, hiHi: 0xdf},
	// Latin-1 accented letters cluster in 0xC0-0xFF.
	{name: "ISO-8859-1", enc: charmap.ISO8859_1, loHi: 0xc0, hiHi: 0xff},
}

// Detect classifies data and returns its charset name plus the UTF-8 text
// decoded from it. Detection never fails: an undecodable legacy candidate
// falls back to treating the bytes as UTF-8 with replacement characters.
func Detect(data []byte) (charset string, text string) {
	if utf8.Valid(data) {
		return "UTF-8", string(data)
	}

	best := candidates[0]
	bestScore := -1
	for _, c := range candidates {
		score := 0
		for _, b := range data {
			if b >= c.loHi && b <= c.hiHi {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = c
		}
	}

	decoded, _, err := transform.Bytes(best.enc.NewDecoder(), data)
	if err != nil {
		return "UTF-8", strings.ToValidUTF8(string(data), "�")
	}
	return best.name, string(decoded)
}
