package editor

// Handle resolves seq against e.KeyMap and applies it to the editor's
// current state, per spec.md §4.2's "bindable command vocabulary". It is
// the single entry point a host's read loop calls per keystroke. seq
// itself is the text OpInsert inserts, verbatim; the YNC and prompt-mode
// handlers also receive seq.
func (e *Editor) Handle(seq string) bool {
	op, ok := Resolve(e.KeyMap, seq)
	if !ok {
		return false
	}

	switch e.Mode {
	case YNC:
		return e.handleYNC(op, seq)
	case HELP:
		return e.handleHelp(op)
	case WRITE, READ, SEARCH:
		return e.handlePrompt(op, seq)
	default:
		return e.dispatchMain(op, seq)
	}
}

func (e *Editor) dispatchMain(op Op, seq string) bool {
	b := e.Current()
	switch op {
	case OpInsert:
		b.Insert(seq)
	case OpMoveLeft:
		b.MoveLeft()
	case OpMoveRight:
		b.MoveRight()
	case OpMoveUp:
		b.MoveUp()
	case OpMoveDown:
		b.MoveDown()
	case OpPrevWord:
		b.PrevWord()
	case OpNextWord:
		b.NextWord()
	case OpBeginningOfLine:
		b.BeginningOfLine()
	case OpEndOfLine:
		b.EndOfLine()
	case OpFirstLine:
		b.FirstLine()
	case OpLastLine:
		b.LastLine()
	case OpPrevPage:
		b.PrevPage(e.PageSize)
	case OpNextPage:
		b.NextPage(e.PageSize)
	case OpScrollUp:
		b.ScrollUp(1)
	case OpScrollDown:
		b.ScrollDown(1)
	case OpBackspace:
		b.Backspace(1)
	case OpDelete:
		b.Delete(1)
	case OpBracketMatch:
		b.BracketMatch()
	case OpSearch:
		e.Mode = SEARCH
	case OpSearchAgain:
		e.SearchAgain()
	case OpWriteOut:
		e.Mode = WRITE
	case OpReadFile:
		e.Mode = READ
	case OpPrevBuffer:
		e.PrevBuffer()
	case OpNextBuffer:
		e.NextBuffer()
	case OpQuit:
		e.Quit()
	case OpHelp:
		e.OpenHelp()
	case OpCancel:
		e.Message = ""
	default:
		return false
	}
	return true
}

// handlePrompt accepts Cancel out of a modal sub-dialog; everything else is
// left to the host, which collects prompt input (file name, search term and
// flags) through its own line-editing UI and calls RunSearch/Write/Read
// directly once the user confirms.
func (e *Editor) handlePrompt(op Op, seq string) bool {
	if op == OpCancel {
		e.Mode = MAIN
		e.Message = ""
		return true
	}
	return false
}

func (e *Editor) handleHelp(op Op) bool {
	if op == OpCancel || op == OpHelp {
		e.CloseHelp()
		return true
	}
	return false
}

func (e *Editor) handleYNC(op Op, seq string) bool {
	switch {
	case op == OpCancel:
		e.AnswerYNC(YNCCancel)
	case seq == "y" || seq == "Y":
		e.AnswerYNC(YNCYes)
	case seq == "n" || seq == "N":
		e.AnswerYNC(YNCNo)
	default:
		return false
	}
	return true
}
