package scanner

import "github.com/MHmorgan/remscan/reminder"

// The results of scanning a single file for reminders.
//
// Results are delivered in the order the files were found, possibly
// before the file has been scanned. Wait blocks until it has.
type Result struct {
	Path string

	done      chan struct{}
	reminders []reminder.Reminder
	skipped   bool
	err       error
}

func newResult(path string) *Result {
	return &Result{Path: path, done: make(chan struct{})}
}

// Wait blocks until the file is scanned and returns its reminders.
//
// skipped is true when the file is not a recognized source file.
// A non-nil error with no reminders means the file could not be read;
// a non-nil error alongside reminders means some lines could not be
// located and were left out.
func (r *Result) Wait() (reminders []reminder.Reminder, skipped bool, err error) {
	<-r.done
	return r.reminders, r.skipped, r.err
}

func (r *Result) finish(reminders []reminder.Reminder, skipped bool, err error) {
	r.reminders = reminders
	r.skipped = skipped
	r.err = err
	close(r.done)
}
