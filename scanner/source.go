package scanner

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/MHmorgan/remscan/grammar"
	"github.com/MHmorgan/remscan/reminder"
)

// ErrNotText is returned for files which are not valid UTF-8.
var ErrNotText = errors.New("not a UTF-8 text file")

// Source is a source file read into memory together with its comments.
type Source struct {
	Path     string
	Data     []byte
	Comments []Comment
}

// ExtractComments reads the file at path and splits it into comments.
//
// ok is false, with a nil error, when reg has no grammar for the file;
// such files are not source files and are skipped. Read failures and
// non-UTF-8 content are returned as errors.
func ExtractComments(path string, reg *grammar.Registry) (src *Source, ok bool, err error) {
	g, ok := reg.Lookup(path)
	if !ok {
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, true, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, true, fmt.Errorf("read %s: %w", path, ErrNotText)
	}

	return &Source{
		Path:     path,
		Data:     data,
		Comments: Comments(data, g),
	}, true, nil
}

// ScanSource finds the reminders of src in comment order.
//
// A single cursor is threaded through every match of the file, so
// reminders with identical text get successive positions. A line which
// cannot be located is left out and reported in the returned error,
// alongside the reminders which could be.
func ScanSource(src *Source, f Filter) ([]reminder.Reminder, error) {
	var (
		reminders []reminder.Reminder
		errs      []error
		cur       Cursor
	)

	for _, c := range src.Comments {
		for _, line := range f.Lines(c.Text) {
			row, col, next, err := Locate(src.Data, line.Text, cur)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", src.Path, err))
				continue
			}
			cur = next
			reminders = append(reminders, reminder.New(src.Path, row, col, line.Verb, line.Text))
		}
	}

	return reminders, errors.Join(errs...)
}
