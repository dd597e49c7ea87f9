package scanner

import (
	"sync"

	"github.com/MHmorgan/remscan/grammar"
	"github.com/MHmorgan/remscan/reminder"
	"github.com/MHmorgan/remscan/searcher"
)

// Options configures Scan.
type Options struct {
	// Number of files scanned concurrently. Values below 1 mean 1.
	Workers  int
	Registry *grammar.Registry
	Filter   Filter
}

// Scan for reminders in all the search results received from the
// input channel.
//
// For each searched file, a single [Result] is passed to the output
// channel, in the order the files were received. Files are scanned by
// a pool of workers, each file on its own, so output order does not
// depend on the number of workers.
func Scan(in <-chan searcher.Result, opts Options) <-chan *Result {
	nWorkers := max(opts.Workers, 1)
	if opts.Registry == nil {
		opts.Registry = grammar.Default()
	}

	out := make(chan *Result, nWorkers)
	jobs := make(chan *Result, nWorkers)

	go func() {
		defer close(out)

		var wg sync.WaitGroup
		wg.Add(nWorkers)

		for range nWorkers {
			go func() {
				defer wg.Done()
				work(jobs, opts)
			}()
		}

		// A result is handed out before it is queued, so the reader
		// never waits on a file no worker will pick up.
		for res := range in {
			r := newResult(res.Path)
			out <- r
			jobs <- r
		}
		close(jobs)

		wg.Wait()
	}()

	return out
}

func work(jobs <-chan *Result, opts Options) {
	for r := range jobs {
		r.finish(scanPath(r.Path, opts))
	}
}

func scanPath(path string, opts Options) ([]reminder.Reminder, bool, error) {
	src, ok, err := ExtractComments(path, opts.Registry)
	if !ok {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	reminders, err := ScanSource(src, opts.Filter)
	return reminders, false, err
}
