package attrline

// KeyMap binds input byte sequences (as strings, since Go strings compare
// and hash cheaply) to an operation value of any caller-chosen type.
// spec.md §4.2 describes a "KeyMap<Op>" binding table for the editor;
// term.Pipe's cursor-key filter is a fixed table and does not use this
// generic type, but both are instances of the same "sequence to meaning"
// shape named in spec.md §2's shared-support line item.
type KeyMap[Op any] struct {
	bindings map[string]Op
}

// NewKeyMap creates an empty binding table.
func NewKeyMap[Op any]() *KeyMap[Op] {
	return &KeyMap[Op]{bindings: make(map[string]Op)}
}

// Bind associates a byte sequence with an operation, overwriting any prior
// binding for the same sequence.
func (k *KeyMap[Op]) Bind(seq string, op Op) {
	k.bindings[seq] = op
}

// Unbind removes a binding, if any.
func (k *KeyMap[Op]) Unbind(seq string) {
	delete(k.bindings, seq)
}

// Lookup returns the operation bound to seq and whether one was found.
func (k *KeyMap[Op]) Lookup(seq string) (Op, bool) {
	op, ok := k.bindings[seq]
	return op, ok
}

// Len returns the number of bound sequences.
func (k *KeyMap[Op]) Len() int { return len(k.bindings) }
