package editor

import (
	"fmt"
	"regexp"
	"strings"
)

// SearchFlags are the prompt-time toggles named in spec.md §4.2 "Search".
type SearchFlags struct {
	CaseSensitive bool
	Backwards     bool
	Regex         bool
}

// SearchResult reports what a Search call found, per spec.md §4.2 and the
// "Search Wrapped"/"not found"/"only occurrence" messages of §8.
type SearchResult struct {
	Found   bool
	Wrapped bool
	Only    bool
	Message string
}

// Search performs a forward or backward wrapping scan for term starting
// from the cursor, updating the cursor on the first match found.
func (b *Buffer) Search(term string, flags SearchFlags) (SearchResult, error) {
	matcher, err := newMatcher(term, flags)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}

	total := len(b.Lines)
	startLine := b.Line
	startCol := b.absoluteColumn()

	order := make([]int, 0, total)
	if flags.Backwards {
		for i := 0; i < total; i++ {
			order = append(order, ((startLine-i)%total+total)%total)
		}
	} else {
		for i := 0; i < total; i++ {
			order = append(order, (startLine+i)%total)
		}
	}
	// The start line is visited once more at the end, so an occurrence on
	// the far side of the cursor on that same line is found after wrapping.
	order = append(order, startLine)

	var firstMatch *struct{ line, col int }

	for idx, line := range order {
		runes := []rune(b.Lines[line])
		fromCol := 0
		if flags.Backwards {
			fromCol = len(runes)
		}
		if line == startLine && idx == 0 {
			fromCol = startCol
		}
		col, ok := matcher(string(runes), fromCol, flags.Backwards, line == startLine && idx == 0)
		if ok {
			firstMatch = &struct{ line, col int }{line, col}
			break
		}
	}

	if firstMatch == nil {
		return SearchResult{Found: false, Message: "Not found"}, nil
	}

	// A plain cursor-to-end (or cursor-to-start, backwards) scan that lands
	// past the original line without re-crossing it is the ordinary case.
	// When the cursor already sits on an occurrence, though, there is no
	// "ordinary" direction left to advance in: every further occurrence is
	// only reachable by treating the buffer as a ring anchored at the
	// cursor, so landing on the next one is reported as a wrap too.
	wrapped := flags.Backwards && (firstMatch.line > startLine || (firstMatch.line == startLine && firstMatch.col > startCol)) ||
		!flags.Backwards && (firstMatch.line < startLine || (firstMatch.line == startLine && firstMatch.col < startCol)) ||
		matchesAt(term, flags, b.Lines[startLine], startCol)

	b.Line = firstMatch.line
	b.syncFromAbsolute(firstMatch.col)

	res := SearchResult{Found: true, Wrapped: wrapped, Only: countOccurrences(term, flags, b.Lines) == 1}
	switch {
	case wrapped:
		res.Message = "Search Wrapped"
	case res.Only:
		res.Message = "This is the only occurrence"
	default:
		res.Message = ""
	}
	return res, nil
}

// countOccurrences counts matches of term across the whole buffer, capped at
// 2 since callers only distinguish "exactly one" from "more than one".
func countOccurrences(term string, flags SearchFlags, lines []string) int {
	count := 0
	for _, line := range lines {
		runes := []rune(line)
		for col := 0; col <= len(runes); col++ {
			if matchesAt(term, flags, line, col) {
				count++
				if count >= 2 {
					return count
				}
			}
		}
	}
	return count
}

// newMatcher returns a function that looks for term in a line starting at
// fromCol (inclusive), in the given direction, returning the match's start
// column. atStart means the scan must not report the cursor's own
// position on the very first line visited (so Search always advances).
func newMatcher(term string, flags SearchFlags) (func(line string, fromCol int, backwards, atStart bool) (int, bool), error) {
	if flags.Regex {
		pattern := term
		if !flags.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		return func(line string, fromCol int, backwards, atStart bool) (int, bool) {
			runes := []rune(line)
			if backwards {
				limit := fromCol
				best := -1
				for i := 0; i <= limit && i <= len(runes); i++ {
					loc := re.FindStringIndex(string(runes[i:]))
					if loc != nil && loc[0] == 0 && (i < limit || !atStart) {
						best = i
					}
				}
				if best >= 0 {
					return best, true
				}
				return 0, false
			}
			start := fromCol
			if atStart {
				start = fromCol + 1
			}
			for i := start; i <= len(runes); i++ {
				loc := re.FindStringIndex(string(runes[i:]))
				if loc != nil && loc[0] == 0 {
					return i, true
				}
			}
			return 0, false
		}, nil
	}

	needle := term
	if !flags.CaseSensitive {
		needle = strings.ToLower(needle)
	}
	return func(line string, fromCol int, backwards, atStart bool) (int, bool) {
		hay := line
		if !flags.CaseSensitive {
			hay = strings.ToLower(hay)
		}
		runes := []rune(hay)
		if backwards {
			best := -1
			limit := fromCol
			for i := 0; i <= limit && i <= len(runes); i++ {
				if hasPrefixAt(runes, i, []rune(needle)) {
					if i < fromCol || !atStart {
						best = i
					}
				}
			}
			if best >= 0 {
				return best, true
			}
			return 0, false
		}
		start := fromCol
		if atStart {
			start = fromCol + 1
		}
		for i := start; i <= len(runes); i++ {
			if hasPrefixAt(runes, i, []rune(needle)) {
				return i, true
			}
		}
		return 0, false
	}, nil
}

// matchesAt reports whether term matches line starting exactly at col, used
// to detect that the cursor already sits on an occurrence.
func matchesAt(term string, flags SearchFlags, line string, col int) bool {
	if flags.Regex {
		pattern := term
		if !flags.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		runes := []rune(line)
		if col < 0 || col > len(runes) {
			return false
		}
		loc := re.FindStringIndex(string(runes[col:]))
		return loc != nil && loc[0] == 0
	}

	needle := term
	hay := line
	if !flags.CaseSensitive {
		needle = strings.ToLower(needle)
		hay = strings.ToLower(hay)
	}
	runes := []rune(hay)
	return hasPrefixAt(runes, col, []rune(needle))
}

func hasPrefixAt(haystack []rune, at int, needle []rune) bool {
	if len(needle) == 0 || at+len(needle) > len(haystack) {
		return false
	}
	for i, r := range needle {
		if haystack[at+i] != r {
			return false
		}
	}
	return true
}
