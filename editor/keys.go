package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/jline/jline3-sub001/attrline"
)

// Op names an editor operation a key sequence can be bound to, per
// spec.md §4.2 "Key binding".
type Op int

const (
	OpInsert Op = iota
	OpMoveLeft
	OpMoveRight
	OpMoveUp
	OpMoveDown
	OpPrevWord
	OpNextWord
	OpBeginningOfLine
	OpEndOfLine
	OpFirstLine
	OpLastLine
	OpPrevPage
	OpNextPage
	OpScrollUp
	OpScrollDown
	OpBackspace
	OpDelete
	OpSearch
	OpSearchAgain
	OpBracketMatch
	OpWriteOut
	OpReadFile
	OpPrevBuffer
	OpNextBuffer
	OpQuit
	OpHelp
	OpCancel
)

// DefaultKeyMap returns the stock binding table: arrow/navigation keys
// (using the same "~"-prefixed alias tokens term.Pipe resolves, so a host
// that routes keystrokes through both subsystems sees one consistent
// vocabulary) plus the usual Ctrl-letter mnemonics.
func DefaultKeyMap() *attrline.KeyMap[Op] {
	km := attrline.NewKeyMap[Op]()

	km.Bind("~A", OpMoveUp)
	km.Bind("~B", OpMoveDown)
	km.Bind("~C", OpMoveRight)
	km.Bind("~D", OpMoveLeft)
	km.Bind("~H", OpBeginningOfLine)
	km.Bind("~F", OpEndOfLine)
	km.Bind("~5", OpPrevPage)
	km.Bind("~6", OpNextPage)
	km.Bind("~3", OpDelete)

	km.Bind("\x01", OpBeginningOfLine) // Ctrl-A
	km.Bind("\x05", OpEndOfLine)       // Ctrl-E
	km.Bind("\x06", OpMoveRight)       // Ctrl-F
	km.Bind("\x02", OpMoveLeft)        // Ctrl-B
	km.Bind("\x0e", OpMoveDown)        // Ctrl-N
	km.Bind("\x10", OpMoveUp)          // Ctrl-P
	km.Bind("\x08", OpBackspace)       // Ctrl-H / Backspace
	km.Bind("\x7f", OpBackspace)       // DEL
	km.Bind("\x04", OpDelete)          // Ctrl-D
	km.Bind("\x0f", OpWriteOut)        // Ctrl-O
	km.Bind("\x12", OpReadFile)        // Ctrl-R
	km.Bind("\x18", OpQuit)            // Ctrl-X
	km.Bind("\x07", OpHelp)            // Ctrl-G
	km.Bind("\x03", OpCancel)          // Ctrl-C
	km.Bind("\x17", OpSearch)          // Ctrl-W
	km.Bind("\x1b", OpSearchAgain)     // Esc alone repeats the last search
	km.Bind("\x0c", OpPrevBuffer)      // Ctrl-L
	km.Bind("\x0b", OpNextBuffer)      // Ctrl-K reused for buffer cycling in this module
	km.Bind("\x1a", OpScrollUp)        // Ctrl-Z
	km.Bind("\x19", OpScrollDown)      // Ctrl-Y
	km.Bind("\x1b<", OpFirstLine)
	km.Bind("\x1b>", OpLastLine)
	km.Bind("\x1b ", OpPrevWord)
	km.Bind("\x1bf", OpNextWord)
	km.Bind("\x1bb", OpPrevWord)
	km.Bind("\x1b]", OpBracketMatch)

	return km
}

// Alt+uppercase keys alias to the lowercase canonical binding, per
// spec.md §4.2 "lowercase canonical aliasing for Alt+uppercase".
func canonicalize(seq string) string {
	if !strings.HasPrefix(seq, "\x1b") || len(seq) != 2 {
		return seq
	}
	r := rune(seq[1])
	if r >= 'A' && r <= 'Z' {
		return "\x1b" + strings.ToLower(string(r))
	}
	return seq
}

// Resolve looks up seq in km, falling through to OpInsert for any
// printable Unicode rune that isn't otherwise bound (spec.md §4.2 "Unicode
// fall-through").
func Resolve(km *attrline.KeyMap[Op], seq string) (Op, bool) {
	if op, ok := km.Lookup(canonicalize(seq)); ok {
		return op, true
	}
	r, size := utf8.DecodeRuneInString(seq)
	if r != utf8.RuneError && size == len(seq) && isPrintable(r) {
		return OpInsert, true
	}
	return 0, false
}

func isPrintable(r rune) bool {
	return r >= 0x20 && r != 0x7f
}
