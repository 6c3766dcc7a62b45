package nfa

import (
	"reflect"
	"sort"
	"testing"
)

func sortedPartial(g *Graph, tokens []string) []string {
	labels := g.MatchPartial(tokens, Equal)
	sort.Strings(labels)
	return labels
}

// TestAlternationAndConcat exercises spec.md §8's "a b | c" grammar.
func TestAlternationAndConcat(t *testing.T) {
	g, err := Compile("a b | c")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !g.Match([]string{"a", "b"}, Equal) {
		t.Fatalf("expected a b to match")
	}
	if !g.Match([]string{"c"}, Equal) {
		t.Fatalf("expected c to match")
	}
	if g.Match([]string{"a", "c"}, Equal) {
		t.Fatalf("expected a c to be rejected")
	}
	if g.Match([]string{"a"}, Equal) {
		t.Fatalf("expected a alone to be rejected (b must follow)")
	}

	if got := sortedPartial(g, nil); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("MatchPartial(nil) = %v, want [a c]", got)
	}
	if got := sortedPartial(g, []string{"a"}); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("MatchPartial([a]) = %v, want [b]", got)
	}
}

// TestStarOverAlternation exercises spec.md §8's "(a | b)* c" grammar,
// confirming zero-or-more repetition of the alternated group before the
// mandatory trailing c.
func TestStarOverAlternation(t *testing.T) {
	g, err := Compile("(a | b)* c")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !g.Match([]string{"c"}, Equal) {
		t.Fatalf("expected bare c to match (zero repetitions)")
	}
	if !g.Match([]string{"a", "b", "a", "c"}, Equal) {
		t.Fatalf("expected a b a c to match")
	}
	if g.Match([]string{"a", "b", "a"}, Equal) {
		t.Fatalf("expected a b a (no trailing c) to be rejected")
	}
	if g.Match([]string{"a", "d", "c"}, Equal) {
		t.Fatalf("expected an unknown token to be rejected")
	}

	if got := sortedPartial(g, []string{"a"}); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("MatchPartial([a]) = %v, want [a b c]", got)
	}
	if got := sortedPartial(g, nil); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("MatchPartial(nil) = %v, want [a b c]", got)
	}
}

// TestPlusRequiresOneRepetition distinguishes + from * (spec.md §4.3's
// operator table): at least one repetition of the operand is mandatory.
func TestPlusRequiresOneRepetition(t *testing.T) {
	g, err := Compile("a+")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if g.Match(nil, Equal) {
		t.Fatalf("expected zero repetitions to be rejected for a+")
	}
	if !g.Match([]string{"a"}, Equal) {
		t.Fatalf("expected a single a to match")
	}
	if !g.Match([]string{"a", "a", "a"}, Equal) {
		t.Fatalf("expected three a's to match")
	}
}

// TestQuestionIsOptional exercises the ? operator: zero or one repetition.
func TestQuestionIsOptional(t *testing.T) {
	g, err := Compile("a? b")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !g.Match([]string{"b"}, Equal) {
		t.Fatalf("expected bare b to match")
	}
	if !g.Match([]string{"a", "b"}, Equal) {
		t.Fatalf("expected a b to match")
	}
	if g.Match([]string{"a", "a", "b"}, Equal) {
		t.Fatalf("expected two a's to be rejected under ?")
	}
}

// TestNestedGroupsCompletion is spec.md §8's tab-completion example: the
// grammar "show ( users | groups )" should offer exactly {users, groups}
// after "show", and accept either full command.
func TestNestedGroupsCompletion(t *testing.T) {
	g, err := Compile("show ( users | groups )")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !g.Match([]string{"show", "users"}, Equal) {
		t.Fatalf("expected show users to match")
	}
	if !g.Match([]string{"show", "groups"}, Equal) {
		t.Fatalf("expected show groups to match")
	}
	if g.Match([]string{"show"}, Equal) {
		t.Fatalf("expected bare show to be incomplete")
	}

	if got := sortedPartial(g, []string{"show"}); !reflect.DeepEqual(got, []string{"groups", "users"}) {
		t.Fatalf("MatchPartial([show]) = %v, want [groups users]", got)
	}
	if got := g.MatchPartial([]string{"show", "users"}, Equal); len(got) != 0 {
		t.Fatalf("MatchPartial([show users]) = %v, want empty (command complete)", got)
	}
}

// TestMalformedGrammarsError covers spec.md §4.3's error cases: unmatched
// parens and an empty grammar string.
func TestMalformedGrammarsError(t *testing.T) {
	cases := []string{"(a", "a)", "", "   ", "* a", "a |"}
	for _, grammar := range cases {
		if _, err := Compile(grammar); err == nil {
			t.Fatalf("Compile(%q) = nil error, want an error", grammar)
		}
	}
}

// TestDeadEndReturnsNilPartial confirms a token sequence that cannot be
// extended reports a nil/empty partial set rather than panicking.
func TestDeadEndReturnsNilPartial(t *testing.T) {
	g, err := Compile("a b")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := g.MatchPartial([]string{"z"}, Equal); len(got) != 0 {
		t.Fatalf("MatchPartial([z]) = %v, want empty", got)
	}
}
