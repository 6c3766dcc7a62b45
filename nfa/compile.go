package nfa

import "fmt"

// stateKind distinguishes the three label kinds spec.md §3's "NFA graph"
// names: a token name, an ε-fork (SPLIT), or the terminal (MATCH).
type stateKind int

const (
	kindToken stateKind = iota
	kindSplit
	kindMatch
)

// state is one node of the arena-allocated graph. out1/out2 are indices
// into Graph.states, or -1 for "no edge". A token state has exactly one
// real out edge (out1); a split has up to two; match has none.
type state struct {
	kind  stateKind
	label string // token name, only meaningful when kind == kindToken
	out1  int
	out2  int
}

const noState = -1

// Graph is the compiled, immutable NFA. It is safe to share across
// threads and match concurrently, per spec.md §3's NFA lifecycle note.
type Graph struct {
	states []state
	start  int
}

// fragment is a partially-built piece of the automaton during
// construction: an entry state plus a list of dangling out-edges (each an
// index-typed setter) that must be patched to whatever comes next.
type fragment struct {
	start   int
	dangles []dangle
}

// dangle names one unset out edge: the index of its state, and whether it
// is out1 or out2.
type dangle struct {
	state int
	slot  int // 1 or 2
}

// Compile parses grammar and builds its NFA via Thompson construction,
// per spec.md §4.3. Compilation is pure and allocates a fresh Graph.
func Compile(grammar string) (*Graph, error) {
	postfix, err := parseGrammar(grammar)
	if err != nil {
		return nil, err
	}

	g := &Graph{}
	var stack []fragment

	push := func(f fragment) { stack = append(stack, f) }
	pop := func() (fragment, error) {
		if len(stack) == 0 {
			return fragment{}, fmt.Errorf("nfa: malformed postfix expression")
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, nil
	}

	newState := func(s state) int {
		g.states = append(g.states, s)
		return len(g.states) - 1
	}

	for _, t := range postfix {
		switch t.kind {
		case tokName:
			si := newState(state{kind: kindToken, label: t.name, out1: noState, out2: noState})
			push(fragment{start: si, dangles: []dangle{{state: si, slot: 1}}})

		case tokConcat:
			b, err := pop()
			if err != nil {
				return nil, err
			}
			a, err := pop()
			if err != nil {
				return nil, err
			}
			patch(g, a.dangles, b.start)
			push(fragment{start: a.start, dangles: b.dangles})

		case tokAlt:
			b, err := pop()
			if err != nil {
				return nil, err
			}
			a, err := pop()
			if err != nil {
				return nil, err
			}
			si := newState(state{kind: kindSplit, out1: a.start, out2: b.start})
			push(fragment{start: si, dangles: append(a.dangles, b.dangles...)})

		case tokQuestion:
			a, err := pop()
			if err != nil {
				return nil, err
			}
			si := newState(state{kind: kindSplit, out1: a.start, out2: noState})
			push(fragment{start: si, dangles: append(a.dangles, dangle{state: si, slot: 2})})

		case tokStar:
			a, err := pop()
			if err != nil {
				return nil, err
			}
			si := newState(state{kind: kindSplit, out1: a.start, out2: noState})
			patch(g, a.dangles, si)
			push(fragment{start: si, dangles: []dangle{{state: si, slot: 2}}})

		case tokPlus:
			a, err := pop()
			if err != nil {
				return nil, err
			}
			si := newState(state{kind: kindSplit, out1: a.start, out2: noState})
			patch(g, a.dangles, si)
			push(fragment{start: a.start, dangles: []dangle{{state: si, slot: 2}}})

		default:
			return nil, fmt.Errorf("nfa: unexpected token in postfix stream")
		}
	}

	final, err := pop()
	if err != nil {
		return nil, err
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("nfa: malformed grammar, leftover fragments")
	}

	matchState := newState(state{kind: kindMatch, out1: noState, out2: noState})
	patch(g, final.dangles, matchState)
	g.start = final.start

	return g, nil
}

// patch sets every dangling edge in dangles to point at target.
func patch(g *Graph, dangles []dangle, target int) {
	for _, d := range dangles {
		if d.slot == 1 {
			g.states[d.state].out1 = target
		} else {
			g.states[d.state].out2 = target
		}
	}
}
