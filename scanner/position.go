package scanner

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrNotFound means a reminder line could not be found in the source it
// was taken from. It indicates a bug, not bad input.
var ErrNotFound = errors.New("reminder text not found in source")

// Cursor marks where the next search in a file starts. The zero value
// starts at the beginning of the file. A cursor belongs to one file's
// contents and must be passed to every Locate call for that file, in
// the order the reminders were found.
type Cursor struct {
	off int
	// Newlines before off, and where off's line starts.
	newlines  int
	lineStart int
}

// Locate finds the first occurrence of target at or after cur and returns
// its 1-based row and 1-based byte column. The returned cursor is placed
// one byte past the start of the occurrence, so a following identical
// target resolves to the next occurrence.
func Locate(contents []byte, target string, cur Cursor) (row, col int, next Cursor, err error) {
	if target == "" || cur.off > len(contents) {
		return 0, 0, cur, fmt.Errorf("%w: %q from offset %d", ErrNotFound, target, cur.off)
	}

	i := bytes.Index(contents[cur.off:], []byte(target))
	if i < 0 {
		return 0, 0, cur, fmt.Errorf("%w: %q from offset %d", ErrNotFound, target, cur.off)
	}
	occ := cur.off + i

	skipped := contents[cur.off:occ]
	newlines := cur.newlines + bytes.Count(skipped, []byte{'\n'})
	lineStart := cur.lineStart
	if nl := bytes.LastIndexByte(skipped, '\n'); nl >= 0 {
		lineStart = cur.off + nl + 1
	}

	next = Cursor{off: occ + 1, newlines: newlines, lineStart: lineStart}
	if contents[occ] == '\n' {
		next.newlines++
		next.lineStart = occ + 1
	}

	return newlines + 1, occ - lineStart + 1, next, nil
}
