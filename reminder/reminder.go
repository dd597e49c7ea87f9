package reminder

import (
	"strconv"
	"strings"
)

// Reminder is a single verb-marked comment line found in a source file.
//
// Row is 1-based. Col is the 1-based byte offset of the first byte of
// Text within its line.
type Reminder struct {
	file string
	row  int
	col  int
	verb string
	text string
}

func New(file string, row, col int, verb, text string) Reminder {
	return Reminder{
		file: file,
		row:  row,
		col:  col,
		verb: verb,
		text: text,
	}
}

func (r Reminder) File() string {
	return r.file
}

func (r Reminder) Row() int {
	return r.row
}

func (r Reminder) Col() int {
	return r.col
}

// Verb is the allow-listed verb the text starts with, e.g. "TODO".
func (r Reminder) Verb() string {
	return r.verb
}

func (r Reminder) Text() string {
	return r.text
}

// String renders the reminder as "file:row:col:text".
// Colons inside the path or text are not escaped.
func (r Reminder) String() string {
	var b strings.Builder
	b.Grow(len(r.file) + len(r.text) + 16)
	b.WriteString(r.file)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(r.row))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(r.col))
	b.WriteByte(':')
	b.WriteString(r.text)
	return b.String()
}
