package searcher

// Result is one entry found by Searcher when searching through
// a file hierarchy for files which should be scanned.
type Result struct {
	// Path as reached from the search root.
	Path string
	// Canonical is the absolute, symlink-free path, or empty when it
	// could not be resolved.
	Canonical string
}
