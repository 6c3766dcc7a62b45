package attrline

import "testing"

func TestLinePlainText(t *testing.T) {
	l := Line{Runs: []Run{{Text: "foo", Attr: 1}, {Text: "bar", Attr: 2}}}
	if l.PlainText() != "foobar" {
		t.Fatalf("got %q", l.PlainText())
	}
}

func TestLineEqual(t *testing.T) {
	a := Line{Runs: []Run{{Text: "x", Attr: 1}}, HasCursor: true, CursorCol: 0}
	b := Line{Runs: []Run{{Text: "x", Attr: 1}}, HasCursor: true, CursorCol: 0}
	if !a.Equal(b) {
		t.Fatal("expected equal lines")
	}
	b.CursorCol = 1
	if a.Equal(b) {
		t.Fatal("expected cursor column mismatch to break equality")
	}
}

func TestDiffDetectsChangedRows(t *testing.T) {
	prev := []Line{
		{Runs: []Run{{Text: "a"}}},
		{Runs: []Run{{Text: "b"}}},
	}
	next := []Line{
		{Runs: []Run{{Text: "a"}}},
		{Runs: []Run{{Text: "B"}}},
	}
	updates := Diff(prev, next)
	if len(updates) != 1 || updates[0].Row != 1 {
		t.Fatalf("expected one update on row 1, got %v", updates)
	}
}

func TestDiffGrowShrink(t *testing.T) {
	prev := []Line{{Runs: []Run{{Text: "a"}}}}
	next := []Line{{Runs: []Run{{Text: "a"}}}, {Runs: []Run{{Text: "b"}}}}

	updates := Diff(prev, next)
	if len(updates) != 1 || updates[0].Row != 1 {
		t.Fatalf("expected a single new-row update, got %v", updates)
	}

	updates = Diff(next, prev)
	if len(updates) != 1 || updates[0].Row != 1 {
		t.Fatalf("expected a single removed-row update, got %v", updates)
	}
}

func TestKeyMapBindLookup(t *testing.T) {
	type op int
	const opMoveUp op = 1

	km := NewKeyMap[op]()
	km.Bind("\x1b[A", opMoveUp)

	got, ok := km.Lookup("\x1b[A")
	if !ok || got != opMoveUp {
		t.Fatalf("expected lookup to find bound op, got %v %v", got, ok)
	}

	if _, ok := km.Lookup("\x1b[B"); ok {
		t.Fatal("expected unbound key to miss")
	}

	km.Unbind("\x1b[A")
	if _, ok := km.Lookup("\x1b[A"); ok {
		t.Fatal("expected key to be gone after Unbind")
	}
	if km.Len() != 0 {
		t.Fatalf("expected empty keymap, got len %d", km.Len())
	}
}
