package editor

import "github.com/jline/jline3-sub001/attrline"

// Terminal is the host's abstract terminal surface, per spec.md §6. It
// reports the screen size, accepts bytes to write, delivers resize
// notifications, and provides a non-blocking reader. Nothing in this
// module implements Terminal; the host supplies it.
type Terminal interface {
	Size() (width, height int)
	Write(p []byte) (int, error)
	ReadNonBlocking() ([]byte, bool)
	OnResize(func(width, height int))
}

// Display accepts a list of attributed rows plus a cursor position and
// diff-renders against its last submission, per spec.md §6.
type Display interface {
	Clear()
	Resize(rows, cols int)
	Update(rows []attrline.Line, cursorRow, cursorCol int)
}

// KeyReader delivers resolved key sequences (already matched against a
// KeyMap's alphabet) from the host's input source.
type KeyReader interface {
	ReadKey() (string, error)
}

// ConfigPath resolves configuration file locations for the host platform;
// the editor consults it only for this, never for the buffer's own file.
type ConfigPath interface {
	ConfigDir() (string, error)
}

// ConsoleOption resolves style/color options the host's console theme
// exposes, consumed as a narrow interface per spec.md §1's "configuration
// path lookup and style/color resolution are external facilities consumed
// through narrow interfaces".
type ConsoleOption interface {
	Option(name string) (string, bool)
}
