package scanner

import (
	"regexp"
	"strings"
	"unicode"
)

// Uppercase word, anything, then a colon. This is a pre-filter only;
// the line must also start with an allowed verb.
var reminderPattern = regexp.MustCompile(`^[A-Z]+.*:`)

// DefaultVerbs returns the verbs which are reminders when no others are
// configured.
func DefaultVerbs() []string {
	return []string{"TODO", "FIXME", "BUG"}
}

// Filter decides which comment lines are reminders.
// The zero value uses DefaultVerbs.
type Filter struct {
	verbs []string
}

func NewFilter(verbs []string) Filter {
	if len(verbs) == 0 {
		return Filter{verbs: DefaultVerbs()}
	}
	return Filter{verbs: cloneStrings(verbs)}
}

func (f Filter) Verbs() []string {
	if len(f.verbs) == 0 {
		return DefaultVerbs()
	}
	return cloneStrings(f.verbs)
}

// Match reports whether line is a reminder and which verb it starts with.
func (f Filter) Match(line string) (verb string, ok bool) {
	if !reminderPattern.MatchString(line) {
		return "", false
	}
	verbs := f.verbs
	if len(verbs) == 0 {
		verbs = DefaultVerbs()
	}
	for _, v := range verbs {
		if strings.HasPrefix(line, v) {
			return v, true
		}
	}
	return "", false
}

// Line is a reminder line of a comment.
type Line struct {
	Verb string
	Text string
}

// Lines returns the reminder lines of a comment's text, in order.
// Only the start of the comment is trimmed; following lines are
// matched as they are.
func (f Filter) Lines(comment string) []Line {
	var lines []Line
	for _, l := range strings.Split(strings.TrimLeftFunc(comment, unicode.IsSpace), "\n") {
		l = strings.TrimSuffix(l, "\r")
		if verb, ok := f.Match(l); ok {
			lines = append(lines, Line{Verb: verb, Text: l})
		}
	}
	return lines
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
