package editor

import "testing"

func newSearchBuffer(lines ...string) *Buffer {
	b := NewBuffer()
	b.Lines = lines
	b.RecomputeOffsets(b.rowWidth)
	return b
}

// TestSearchRegexWraps is spec.md §8 scenario 5: buffer = ["foo","bar","foo"],
// searching "fo+" forward from (0,0) lands on (2,0) and reports a wrap.
func TestSearchRegexWraps(t *testing.T) {
	b := newSearchBuffer("foo", "bar", "foo")
	res, err := b.Search("fo+", SearchFlags{CaseSensitive: true, Regex: true})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if !res.Found {
		t.Fatalf("expected a match")
	}
	if b.Line != 2 || b.absoluteColumn() != 0 {
		t.Fatalf("cursor = (%d,%d), want (2,0)", b.Line, b.absoluteColumn())
	}
	if !res.Wrapped {
		t.Fatalf("expected Wrapped = true")
	}
	if res.Message != "Search Wrapped" {
		t.Fatalf("message = %q, want %q", res.Message, "Search Wrapped")
	}
}

// TestSearchOnlyOccurrenceAboveCursor matches spec.md §8's "Search wraps"
// property: the only occurrence is above the cursor (forward search), the
// cursor lands there and "Search Wrapped" is reported.
func TestSearchOnlyOccurrenceAboveCursor(t *testing.T) {
	b := newSearchBuffer("foo", "bar")
	b.Line = 1
	res, err := b.Search("foo", SearchFlags{CaseSensitive: true})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if b.Line != 0 || b.absoluteColumn() != 0 {
		t.Fatalf("cursor = (%d,%d), want (0,0)", b.Line, b.absoluteColumn())
	}
	if !res.Wrapped || res.Message != "Search Wrapped" {
		t.Fatalf("result = %+v, want wrapped with Search Wrapped", res)
	}
}

func TestSearchNotFound(t *testing.T) {
	b := newSearchBuffer("abc", "def")
	res, err := b.Search("zzz", SearchFlags{CaseSensitive: true})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if res.Found {
		t.Fatalf("expected not found")
	}
	if res.Message != "Not found" {
		t.Fatalf("message = %q, want %q", res.Message, "Not found")
	}
}

func TestSearchOnlyOccurrenceNoWrap(t *testing.T) {
	b := newSearchBuffer("xxx needle yyy")
	res, err := b.Search("needle", SearchFlags{CaseSensitive: true})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if !res.Found || res.Wrapped {
		t.Fatalf("result = %+v, want found without wrap", res)
	}
	if !res.Only || res.Message != "This is the only occurrence" {
		t.Fatalf("result = %+v, want the only-occurrence message", res)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	b := newSearchBuffer("Hello World")
	res, err := b.Search("WORLD", SearchFlags{CaseSensitive: false})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if !res.Found || b.absoluteColumn() != 6 {
		t.Fatalf("result = %+v cursor col %d, want found at col 6", res, b.absoluteColumn())
	}
}

func TestSearchBackwards(t *testing.T) {
	b := newSearchBuffer("cat dog cat")
	b.syncFromAbsolute(11)
	res, err := b.Search("cat", SearchFlags{CaseSensitive: true, Backwards: true})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if !res.Found || b.absoluteColumn() != 8 {
		t.Fatalf("result = %+v cursor col %d, want found at col 8", res, b.absoluteColumn())
	}
}
