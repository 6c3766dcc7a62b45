package editor

import (
	"fmt"
	"os"
	"strings"

	"github.com/jline/jline3-sub001/internal/charsetdetect"
)

// ReadResult reports the charset and format a Read call detected.
type ReadResult struct {
	Charset string
	Format  LineEnding
	Lines   int
}

// Read loads name fully into memory, detects its charset, and splits it into
// lines on any of \n, \r\n, or \r, per spec.md §4.2 "Read" and "Encoding".
// When insertAtCursor is true the decoded lines are spliced into b at the
// cursor; otherwise b is replaced wholesale (the "open as new buffer" case
// is the caller creating a fresh Buffer and calling Read on it).
func Read(b *Buffer, name string, insertAtCursor bool) (ReadResult, error) {
	info, err := os.Stat(name)
	if err != nil {
		return ReadResult{}, fmt.Errorf("read: %q: %w", name, err)
	}
	if info.IsDir() {
		return ReadResult{}, fmt.Errorf("read: %q is a directory", name)
	}
	if !info.Mode().IsRegular() {
		return ReadResult{}, fmt.Errorf("read: %q is not a regular file", name)
	}

	raw, err := os.ReadFile(name)
	if err != nil {
		return ReadResult{}, fmt.Errorf("read: %q: %w", name, err)
	}

	charset, text := charsetdetect.Detect(raw)
	format := detectFormat(text)
	lines := splitLines(text)

	if insertAtCursor {
		b.Insert(strings.Join(lines, "\n"))
	} else {
		if len(lines) == 0 {
			lines = []string{""}
		}
		b.Lines = lines
		b.Offsets = nil
		b.Line, b.OffsetInLine, b.Column, b.WantedColumn = 0, 0, 0, 0
		b.FirstLineToDisplay, b.OffsetInLineToDisplay, b.FirstColumnToDisplay = 0, 0, 0
		b.RecomputeOffsets(b.rowWidth)
		b.Dirty = false
	}

	b.File = name
	b.Charset = charset
	b.Format = format

	return ReadResult{Charset: charset, Format: format, Lines: len(lines)}, nil
}

// detectFormat reports the first-seen line terminator in text,
// per spec.md §4.2 "Encoding".
func detectFormat(text string) LineEnding {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return DOS
			}
			return Mac
		case '\n':
			return Unix
		}
	}
	return Unix
}

// splitLines splits text on \n, \r\n, or \r without leaving survivor \r
// bytes embedded in any line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}
