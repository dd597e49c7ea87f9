package scanner

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/MHmorgan/remscan/grammar"
)

// Longest escape in a char literal after the backslash, '\u{10FFFF}'.
const maxCharEscape = 9

// Comment is the interior text of a single line or block comment.
// Block comments keep their embedded newlines.
type Comment struct {
	Text string
	// Byte offset of Text within the source.
	Offset int
}

// A Scanner holds the scanner's internal state while splitting
// a source file into comments.
type Scanner struct {
	src []byte
	pos int
	g   grammar.Grammar

	comments []Comment
}

// Comments returns the comments of src in source order, using the
// comment syntax of g.
func Comments(src []byte, g grammar.Grammar) []Comment {
	var s Scanner
	s.Init(src, g)
	s.Scan()
	return s.comments
}

func (s *Scanner) Init(src []byte, g grammar.Grammar) {
	s.src = src
	s.pos = 0
	s.g = g
	s.comments = nil
}

func (s *Scanner) Scan() {
	for !s.eof() {
		if d, ok := s.matchDelim(s.g.Block); ok {
			s.scanBlockComment(d)
			continue
		}
		if marker, ok := s.matchAny(s.g.Line); ok {
			s.scanLineComment(marker)
			continue
		}
		if d, ok := s.matchDelim(s.g.Strings); ok && s.skipString(d) {
			continue
		}
		s.pos++
	}
}

func (s *Scanner) eof() bool {
	return s.pos >= len(s.src)
}

// match reports whether pattern occurs at the current position.
func (s *Scanner) match(pattern string) bool {
	return s.matchAt(s.pos, pattern)
}

func (s *Scanner) matchAt(pos int, pattern string) bool {
	end := pos + len(pattern)
	return pattern != "" && end <= len(s.src) && string(s.src[pos:end]) == pattern
}

func (s *Scanner) matchAny(patterns []string) (string, bool) {
	for _, p := range patterns {
		if s.match(p) {
			return p, true
		}
	}
	return "", false
}

func (s *Scanner) matchDelim(delims []grammar.Delim) (grammar.Delim, bool) {
	for _, d := range delims {
		if s.match(d.Open) {
			return d, true
		}
	}
	return grammar.Delim{}, false
}

// Scan a comment running to the end of the line. The newline is not
// part of the comment.
func (s *Scanner) scanLineComment(marker string) {
	start := s.pos + len(marker)
	end := bytes.IndexByte(s.src[start:], '\n')
	if end < 0 {
		end = len(s.src)
	} else {
		end += start
	}
	s.emit(start, end)
	s.pos = end
}

// Scan a block comment. An unterminated block runs to EOF.
func (s *Scanner) scanBlockComment(d grammar.Delim) {
	start := s.pos + len(d.Open)
	end := bytes.Index(s.src[start:], []byte(d.Close))
	if end < 0 {
		s.emit(start, len(s.src))
		s.pos = len(s.src)
		return
	}
	end += start
	s.emit(start, end)
	s.pos = end + len(d.Close)
}

// Skip the string literal d opens at the current position. It reports
// false, leaving the position alone, when no literal starts here.
func (s *Scanner) skipString(d grammar.Delim) bool {
	pos := s.pos + len(d.Open)
	closer := d.Close

	if d.Fence != 0 {
		n := 0
		for pos < len(s.src) && s.src[pos] == d.Fence {
			pos++
			n++
		}
		if !s.matchAt(pos, d.Close) {
			return false
		}
		pos += len(d.Close)
		closer += strings.Repeat(string(d.Fence), n)
	}

	if d.Char {
		end, ok := s.charEnd(pos, d.Close)
		if ok {
			s.pos = end
		}
		return ok
	}

	for pos < len(s.src) {
		switch c := s.src[pos]; {
		case c == '\\' && !d.Raw:
			pos += 2
			continue
		case c == '\n' && !d.Multiline:
			s.pos = pos
			return true
		case s.matchAt(pos, closer):
			s.pos = pos + len(closer)
			return true
		}
		pos++
	}
	s.pos = len(s.src)
	return true
}

// charEnd returns the end of a char literal whose body starts at pos.
func (s *Scanner) charEnd(pos int, closer string) (int, bool) {
	if pos >= len(s.src) {
		return 0, false
	}

	if s.src[pos] == '\\' {
		for end := pos + 2; end < len(s.src) && end <= pos+1+maxCharEscape; end++ {
			if s.src[end] == '\n' {
				break
			}
			if s.matchAt(end, closer) {
				return end + len(closer), true
			}
		}
		return 0, false
	}

	r, size := utf8.DecodeRune(s.src[pos:])
	if r == '\n' || s.matchAt(pos, closer) || !s.matchAt(pos+size, closer) {
		return 0, false
	}
	return pos + size + len(closer), true
}

func (s *Scanner) emit(start, end int) {
	s.comments = append(s.comments, Comment{
		Text:   string(s.src[start:end]),
		Offset: start,
	})
}
