package term

// Mode is a bitmask of terminal private/ANSI modes toggled by SM/RM.
type Mode uint32

const (
	// ModeInsert is IRM: characters shift right instead of overwrite.
	ModeInsert Mode = 1 << iota
	// ModeLineFeedNewLine is LNM: CR is followed by an implicit LF.
	ModeLineFeedNewLine
	// ModeCursorKeys is DECCKM: arrow/function keys send application-mode sequences.
	ModeCursorKeys
	// ModeColumn132 is DECCOLM: 132-column mode (vs 80).
	ModeColumn132
	// ModeInverse is DECSCNM: the whole screen renders fg/bg swapped.
	ModeInverse
	// ModeOrigin is DECOM: cursor addressing is relative to the scroll region.
	ModeOrigin
	// ModeAutowrap is DECAWM: printing past the last column wraps to the next row.
	ModeAutowrap
	// ModeCursorVisible is DECTCEM: the cursor is rendered.
	ModeCursorVisible
	// ModeBackspaceSendsDel is DECBKM: when set, Pipe turns DEL (0x7F) into BS (0x08).
	ModeBackspaceSendsDel
	// ModeAltScreen is ?1049: the alternate screen buffer is active.
	ModeAltScreen
)

// defaultModes matches the teacher's reset state: wrap and cursor visible,
// matching spec.md's described post-reset terminal.
const defaultModes = ModeAutowrap | ModeCursorVisible

func (t *Terminal) hasMode(m Mode) bool { return t.modes&m != 0 }

func (t *Terminal) setMode(m Mode)   { t.modes |= m }
func (t *Terminal) resetMode(m Mode) { t.modes &^= m }
