package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/MHmorgan/remscan/logger"
	"github.com/MHmorgan/remscan/reminder"
	"github.com/MHmorgan/remscan/scanner"
)

type scanStats struct {
	files     int
	skipped   int
	failed    int
	reminders int
}

// Print the reminders of all received scan results, in the order
// the results are received.
//
// Files which cannot be read are logged and skipped. After a write
// error nothing more is printed, but the results are still drained.
func printResults(p *printer, results <-chan *scanner.Result, log *logger.Logger) (scanStats, error) {
	var (
		stats    scanStats
		writeErr error
	)

	for res := range results {
		reminders, skipped, err := res.Wait()
		stats.files++

		switch {
		case skipped:
			stats.skipped++
			log.Tracef("skipped %s: unknown file type", res.Path)
			continue
		case err != nil && len(reminders) == 0 && !errors.Is(err, scanner.ErrNotFound):
			stats.failed++
			log.Warnf("skipped %s: %v", res.Path, err)
			continue
		case err != nil:
			log.Errorf("%v", err)
		}

		stats.reminders += len(reminders)
		if writeErr != nil {
			continue
		}
		for _, r := range reminders {
			if writeErr = p.print(r); writeErr != nil {
				break
			}
		}
	}

	return stats, writeErr
}

// printer writes reminders as "file:row:col:text" lines, optionally
// colored. Coloring never changes the characters printed.
type printer struct {
	w        io.Writer
	colorize bool
	dir      *color.Color
	base     *color.Color
	verb     *color.Color
}

func newPrinter(w io.Writer, colorize bool) *printer {
	p := &printer{
		w:        w,
		colorize: colorize,
		dir:      color.New(color.Faint),
		base:     color.New(color.Bold),
		verb:     color.New(color.FgYellow, color.Bold),
	}
	if colorize {
		p.dir.EnableColor()
		p.base.EnableColor()
		p.verb.EnableColor()
	}
	return p
}

func (p *printer) print(r reminder.Reminder) error {
	if !p.colorize {
		_, err := fmt.Fprintln(p.w, r.String())
		return err
	}

	path := r.File()
	i := strings.LastIndexByte(path, filepath.Separator) + 1
	text := r.Text()
	rest := strings.TrimPrefix(text, r.Verb())

	_, err := fmt.Fprintf(p.w, "%s%s:%d:%d:%s%s\n",
		p.dir.Sprint(path[:i]), p.base.Sprint(path[i:]),
		r.Row(), r.Col(),
		p.verb.Sprint(text[:len(text)-len(rest)]), rest)
	return err
}

// useColor decides whether output to w is colored. In auto mode, color
// is used for terminals unless NO_COLOR is set.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
