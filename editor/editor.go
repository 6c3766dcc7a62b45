package editor

import (
	"fmt"

	_ "embed"

	"github.com/jline/jline3-sub001/attrline"
)

// Mode is the editor's current modal state, per spec.md §9's state machine
// over {MAIN, WRITE, READ, SEARCH, YNC, HELP}.
type Mode int

const (
	MAIN Mode = iota
	WRITE
	READ
	SEARCH
	YNC
	HELP
)

// YNCChoice is the answer to a Yes/No/Cancel prompt.
type YNCChoice int

const (
	YNCYes YNCChoice = iota
	YNCNo
	YNCCancel
)

//go:embed help.txt
var helpText string

// pendingYNC captures what to do once the user answers a Y/N/C prompt, and
// the mode to resume if the answer is Cancel.
type pendingYNC struct {
	onYes, onNo func(*Editor)
	resume      Mode
	prompt      string
}

// Editor manages ≥1 file buffers, modal sub-dialogs, and a bindable command
// vocabulary, per spec.md §4.2's "Responsibility" line.
type Editor struct {
	Buffers []*Buffer
	current int

	Mode    Mode
	Message string

	KeyMap *attrline.KeyMap[Op]

	// PageSize is the visible body row count the host's Layout last
	// reported, used by OpPrevPage/OpNextPage. A host updates it whenever
	// the terminal resizes; it defaults to a plausible screen height so a
	// host that never sets it still pages.
	PageSize int

	lastSearchTerm  string
	lastSearchFlags SearchFlags

	ync *pendingYNC

	helpBuffer  *Buffer
	modeBefore  Mode
	quitting    bool
}

// NewEditor creates an editor with a single empty buffer, the default key
// bindings, and MAIN as the initial mode.
func NewEditor() *Editor {
	b := NewBuffer()
	return &Editor{
		Buffers:  []*Buffer{b},
		current:  0,
		Mode:     MAIN,
		KeyMap:   DefaultKeyMap(),
		PageSize: 24,
	}
}

// Current returns the active buffer.
func (e *Editor) Current() *Buffer {
	return e.Buffers[e.current]
}

// OpenBuffer appends a new empty buffer and makes it current, as the lazy
// half of spec.md §4.2 "Buffers": "switching lazily opens the buffer".
func (e *Editor) OpenBuffer() *Buffer {
	b := NewBuffer()
	e.Buffers = append(e.Buffers, b)
	e.current = len(e.Buffers) - 1
	return b
}

// PrevBuffer and NextBuffer cycle through the open buffer list.
func (e *Editor) PrevBuffer() {
	if len(e.Buffers) == 0 {
		return
	}
	e.current = (e.current - 1 + len(e.Buffers)) % len(e.Buffers)
}

func (e *Editor) NextBuffer() {
	if len(e.Buffers) == 0 {
		return
	}
	e.current = (e.current + 1) % len(e.Buffers)
}

// Quit closes the current buffer, prompting Y/N/C first when it is dirty.
// YES saves to the buffer's file, or switches to WRITE mode to name one
// when it has none; NO discards; CANCEL aborts the quit. The editor's
// Quitting flag is set once the buffer list empties.
func (e *Editor) Quit() {
	b := e.Current()
	if !b.Dirty {
		e.closeCurrent()
		return
	}
	e.Mode = YNC
	e.ync = &pendingYNC{
		prompt: "Save modified buffer?",
		resume: MAIN,
		onYes: func(ed *Editor) {
			if b.File == "" {
				ed.Mode = WRITE
				return
			}
			if _, err := b.Write(b.File, WriteOptions{Format: b.Format}); err != nil {
				ed.Message = err.Error()
				ed.Mode = MAIN
				return
			}
			ed.closeCurrent()
		},
		onNo: func(ed *Editor) {
			ed.closeCurrent()
		},
	}
}

func (e *Editor) closeCurrent() {
	e.Buffers = append(e.Buffers[:e.current], e.Buffers[e.current+1:]...)
	if len(e.Buffers) == 0 {
		e.quitting = true
		return
	}
	if e.current >= len(e.Buffers) {
		e.current = len(e.Buffers) - 1
	}
}

// Quitting reports whether the last buffer has been closed and the editor
// should terminate, per spec.md §4.2 "Quit ... terminates the editor when
// the buffer list empties".
func (e *Editor) Quitting() bool {
	return e.quitting
}

// AnswerYNC resolves a pending Y/N/C prompt. CANCEL returns to the mode the
// prompt interrupted without side effects.
func (e *Editor) AnswerYNC(choice YNCChoice) {
	pending := e.ync
	if pending == nil {
		return
	}
	e.ync = nil
	switch choice {
	case YNCYes:
		if pending.onYes != nil {
			pending.onYes(e)
		}
	case YNCNo:
		if pending.onNo != nil {
			pending.onNo(e)
		}
	case YNCCancel:
		e.Mode = pending.resume
	}
}

// RunSearch executes a search on the current buffer and updates the
// "search again" state used by OpSearchAgain.
func (e *Editor) RunSearch(term string, flags SearchFlags) {
	e.lastSearchTerm = term
	e.lastSearchFlags = flags
	res, err := e.Current().Search(term, flags)
	if err != nil {
		e.Message = err.Error()
		e.Mode = MAIN
		return
	}
	e.Message = res.Message
	e.Mode = MAIN
}

// SearchAgain repeats the last search with its original flags.
func (e *Editor) SearchAgain() {
	if e.lastSearchTerm == "" {
		e.Message = "No current search"
		return
	}
	e.RunSearch(e.lastSearchTerm, e.lastSearchFlags)
}

// OpenHelp switches into the read-only Help sub-mode with restricted
// shortcuts, per spec.md §4.2 "Help".
func (e *Editor) OpenHelp() {
	if e.helpBuffer == nil {
		e.helpBuffer = NewBuffer()
		e.helpBuffer.Lines = splitLines(helpText)
		e.helpBuffer.RecomputeOffsets(e.helpBuffer.rowWidth)
		e.helpBuffer.File = "(help)"
	}
	e.modeBefore = e.Mode
	e.Mode = HELP
}

// CloseHelp returns from the Help sub-mode to whatever mode preceded it.
func (e *Editor) CloseHelp() {
	e.Mode = e.modeBefore
}

// HelpText returns the bundled help text shown while in the Help sub-mode.
func HelpText() string {
	return helpText
}

// StatusLine renders the current message, falling back to a short position
// indicator when there is none, matching the footer's single message row.
func (e *Editor) StatusLine() string {
	if e.Message != "" {
		return e.Message
	}
	b := e.Current()
	return fmt.Sprintf("line %d, col %d", b.Line+1, b.absoluteColumn()+1)
}
