package term

import "testing"

func TestCellPackUnpack(t *testing.T) {
	a := DefaultAttr.WithFg(indexedRGB444(2)).WithStyle(AttrBold)
	c := NewCell('x', a)

	if c.Codepoint() != 'x' {
		t.Fatalf("codepoint = %q, want 'x'", c.Codepoint())
	}
	if c.Attr() != a {
		t.Fatalf("attr = %v, want %v", c.Attr(), a)
	}
}

func TestCellWithCodepointPreservesAttr(t *testing.T) {
	a := DefaultAttr.WithStyle(AttrUnderline)
	c := NewCell('a', a).WithCodepoint('b')
	if c.Codepoint() != 'b' {
		t.Fatal("codepoint not replaced")
	}
	if c.Attr() != a {
		t.Fatal("attr should be preserved by WithCodepoint")
	}
}

func TestBlankCellIsBlank(t *testing.T) {
	if !BlankCell.IsBlank() {
		t.Fatal("BlankCell should report IsBlank")
	}
	if NewCell('x', DefaultAttr).IsBlank() {
		t.Fatal("non-space codepoint should not be blank")
	}
}
