package term

// letterAliases maps a "~"-prefixed letter to the (normal, application)
// cursor-key escape sequence pair, per spec.md §4.1 "pipe(keys)".
var letterAliases = map[byte][2]string{
	'A': {"\x1b[A", "\x1bOA"}, // Up
	'B': {"\x1b[B", "\x1bOB"}, // Down
	'C': {"\x1b[C", "\x1bOC"}, // Right
	'D': {"\x1b[D", "\x1bOD"}, // Left
	'F': {"\x1b[F", "\x1bOF"}, // End
	'H': {"\x1b[H", "\x1bOH"}, // Home
	'P': {"\x1bOP", "\x1bOP"}, // F1
	'Q': {"\x1bOQ", "\x1bOQ"}, // F2
	'R': {"\x1bOR", "\x1bOR"}, // F3
	'S': {"\x1bOS", "\x1bOS"}, // F4
}

// digitAliases maps a "~"-prefixed digit token to its fixed CSI ... ~
// sequence. These do not vary with DECCKM.
var digitAliases = map[string]string{
	"2":  "\x1b[2~",  // Insert
	"3":  "\x1b[3~",  // Delete
	"5":  "\x1b[5~",  // Page Up
	"6":  "\x1b[6~",  // Page Down
	"15": "\x1b[15~", // F5
	"17": "\x1b[17~", // F6
	"18": "\x1b[18~", // F7
	"19": "\x1b[19~", // F8
	"20": "\x1b[20~", // F9
	"21": "\x1b[21~", // F10
	"23": "\x1b[23~", // F11
	"24": "\x1b[24~", // F12
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Pipe transforms a host keystroke sequence (using the "~"-prefixed alias
// scheme for function/arrow/navigation keys) into the byte sequence this
// terminal's current mode set expects: application- or normal-cursor-key
// sequences depending on DECCKM, BS/DEL per DECBKM, and CR/LF per LNM.
func (t *Terminal) Pipe(keys []byte) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	app := t.hasMode(ModeCursorKeys)
	bkm := t.hasMode(ModeBackspaceSendsDel)
	lnm := t.hasMode(ModeLineFeedNewLine)

	var out []byte
	i := 0
	for i < len(keys) {
		b := keys[i]
		switch {
		case b == '~':
			consumed, seq := resolveAlias(keys[i+1:], app)
			if consumed == 0 {
				out = append(out, '~')
				i++
				continue
			}
			out = append(out, seq...)
			i += 1 + consumed
		case b == 0x7f && bkm:
			out = append(out, 0x08)
			i++
		case b == 0x7f:
			out = append(out, 0x7f)
			i++
		case b == '\r' && lnm:
			out = append(out, '\r', '\n')
			i++
		default:
			out = append(out, b)
			i++
		}
	}
	return out
}

// resolveAlias looks ahead past a "~" for a recognized alias token,
// returning how many bytes of rest were consumed and the resolved
// sequence. A return of (0, nil) means no alias matched: the "~" was
// literal.
func resolveAlias(rest []byte, app bool) (int, string) {
	if len(rest) == 0 {
		return 0, ""
	}

	if isDigit(rest[0]) {
		if len(rest) >= 2 && isDigit(rest[1]) {
			if seq, ok := digitAliases[string(rest[:2])]; ok {
				return 2, seq
			}
		}
		if seq, ok := digitAliases[string(rest[:1])]; ok {
			return 1, seq
		}
		return 0, ""
	}

	if pair, ok := letterAliases[rest[0]]; ok {
		if app {
			return 1, pair[1]
		}
		return 1, pair[0]
	}
	return 0, ""
}
