// Package grammar holds the comment syntax table used to find comments in
// source files, keyed by file extension or file name.
package grammar

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var ErrUnknownGrammar = errors.New("unknown grammar")

// Delim is an open/close delimiter pair.
type Delim struct {
	Open  string
	Close string
	// Multiline strings may span newlines. Other strings end at the
	// end of the line when unterminated.
	Multiline bool
	// Raw strings have no escape sequences.
	Raw bool
	// Fence, when set, may repeat between Open and Close, which then
	// starts the literal. The literal ends at Close followed by as many
	// fences, as in Rust's r#"..."#.
	Fence byte
	// Char literals hold exactly one, possibly escaped, character. An
	// opener not followed by one does not start a literal, so Rust
	// lifetimes ('a) are left alone.
	Char bool
}

// Grammar describes the comment syntax of one family of languages.
type Grammar struct {
	Name string
	// Line comment markers, each running to the end of the line.
	Line []string
	// Block comment delimiters. Nested blocks are not supported.
	Block []Delim
	// String literal delimiters, tried in order. Comment markers inside
	// a string are ignored. Unless the string is raw, a backslash
	// escapes the next byte.
	Strings []Delim
}

var (
	dq  = Delim{Open: `"`, Close: `"`}
	sq  = Delim{Open: `'`, Close: `'`}
	dqm = Delim{Open: `"`, Close: `"`, Multiline: true}
	sqm = Delim{Open: `'`, Close: `'`, Multiline: true}
	sqr = Delim{Open: `'`, Close: `'`, Raw: true}
	bq  = Delim{Open: "`", Close: "`", Multiline: true}
	rq  = Delim{Open: "`", Close: "`", Multiline: true, Raw: true}

	tdq = Delim{Open: `"""`, Close: `"""`, Multiline: true}
	tsq = Delim{Open: `'''`, Close: `'''`, Multiline: true}

	rustRaw  = Delim{Open: "r", Close: `"`, Multiline: true, Raw: true, Fence: '#'}
	rustChar = Delim{Open: `'`, Close: `'`, Char: true}

	cBlock = Delim{Open: "/*", Close: "*/"}
)

// Built-in grammars, by name.
var builtin = map[string]Grammar{
	"c":       {Name: "c", Line: []string{"//"}, Block: []Delim{cBlock}, Strings: []Delim{dq, sq}},
	"rust":    {Name: "rust", Line: []string{"//"}, Block: []Delim{cBlock}, Strings: []Delim{rustRaw, dqm, rustChar}},
	"go":      {Name: "go", Line: []string{"//"}, Block: []Delim{cBlock}, Strings: []Delim{dq, sq, rq}},
	"js":      {Name: "js", Line: []string{"//"}, Block: []Delim{cBlock}, Strings: []Delim{dq, sq, bq}},
	"css":     {Name: "css", Block: []Delim{cBlock}, Strings: []Delim{dq, sq}},
	"scss":    {Name: "scss", Line: []string{"//"}, Block: []Delim{cBlock}, Strings: []Delim{dq, sq}},
	"php":     {Name: "php", Line: []string{"//", "#"}, Block: []Delim{cBlock}, Strings: []Delim{dq, sq}},
	"shell":   {Name: "shell", Line: []string{"#"}, Strings: []Delim{dqm, sqr}},
	"ruby":    {Name: "ruby", Line: []string{"#"}, Strings: []Delim{dqm, sqm}},
	"hash":    {Name: "hash", Line: []string{"#"}, Strings: []Delim{dq}},
	"python":  {Name: "python", Line: []string{"#"}, Strings: []Delim{tdq, tsq, dq, sq}},
	"sql":     {Name: "sql", Line: []string{"--"}, Block: []Delim{cBlock}, Strings: []Delim{sq}},
	"lua":     {Name: "lua", Line: []string{"--"}, Block: []Delim{{Open: "--[[", Close: "]]"}}, Strings: []Delim{dq, sq}},
	"haskell": {Name: "haskell", Line: []string{"--"}, Block: []Delim{{Open: "{-", Close: "-}"}}, Strings: []Delim{dq}},
	"markup":  {Name: "markup", Block: []Delim{{Open: "<!--", Close: "-->"}}},
	"percent": {Name: "percent", Line: []string{"%"}},
	"erlang":  {Name: "erlang", Line: []string{"%"}, Strings: []Delim{dq}},
	"lisp":    {Name: "lisp", Line: []string{";"}, Strings: []Delim{dq}},
	"ini":     {Name: "ini", Line: []string{";", "#"}},
}

var defaultExtensions = map[string]string{
	".c": "c", ".h": "c", ".cc": "c", ".cpp": "c", ".cxx": "c", ".hpp": "c", ".hh": "c",
	".java": "c", ".cs": "c", ".swift": "c", ".kt": "c", ".kts": "c", ".scala": "c",
	".dart": "c", ".m": "c", ".proto": "c", ".zig": "c",
	".rs": "rust",
	".go": "go",
	".js": "js", ".jsx": "js", ".mjs": "js", ".cjs": "js", ".ts": "js", ".tsx": "js",
	".css":  "css",
	".scss": "scss", ".less": "scss",
	".php": "php",
	".sh": "shell", ".bash": "shell", ".zsh": "shell", ".fish": "shell",
	".rb": "ruby", ".pl": "ruby", ".pm": "ruby", ".r": "ruby",
	".yaml": "hash", ".yml": "hash", ".toml": "hash", ".cmake": "hash",
	".nix": "hash", ".mk": "hash", ".tf": "hash",
	".py": "python", ".pyi": "python",
	".sql": "sql",
	".lua": "lua",
	".hs":  "haskell", ".elm": "haskell",
	".html": "markup", ".htm": "markup", ".xml": "markup", ".md": "markup",
	".vue": "markup", ".svg": "markup",
	".tex": "percent", ".sty": "percent",
	".erl": "erlang", ".hrl": "erlang",
	".lisp": "lisp", ".el": "lisp", ".clj": "lisp", ".cljs": "lisp", ".scm": "lisp",
	".asm": "lisp", ".s": "lisp",
	".ini": "ini", ".cfg": "ini",
}

var defaultNames = map[string]string{
	"Makefile":       "hash",
	"makefile":       "hash",
	"GNUmakefile":    "hash",
	"Dockerfile":     "hash",
	"Containerfile":  "hash",
	"CMakeLists.txt": "hash",
	"Rakefile":       "ruby",
	"Gemfile":        "ruby",
	"Vagrantfile":    "ruby",
	"BUILD":          "python",
	"WORKSPACE":      "python",
}

// Registry maps file extensions and file names to grammars.
// It is not safe for concurrent modification; register everything
// before scanning starts.
type Registry struct {
	exts  map[string]Grammar
	names map[string]Grammar
}

// Default returns a registry with the built-in language table.
func Default() *Registry {
	r := &Registry{
		exts:  make(map[string]Grammar, len(defaultExtensions)),
		names: make(map[string]Grammar, len(defaultNames)),
	}
	for ext, name := range defaultExtensions {
		r.exts[ext] = builtin[name]
	}
	for file, name := range defaultNames {
		r.names[file] = builtin[name]
	}
	return r
}

// Register maps key to the built-in grammar called name. Keys starting
// with "." are extensions (matched case-insensitively), anything else is
// an exact file name.
func (r *Registry) Register(key, name string) error {
	g, ok := builtin[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w %q for %q (known: %s)", ErrUnknownGrammar, name, key, strings.Join(Names(), ", "))
	}
	if key == "" {
		return fmt.Errorf("empty key for grammar %q", name)
	}
	if strings.HasPrefix(key, ".") {
		r.exts[strings.ToLower(key)] = g
	} else {
		r.names[key] = g
	}
	return nil
}

// Lookup finds the grammar for path. The file name is tried before the
// extension. ok is false when the file is not a recognized source file.
func (r *Registry) Lookup(path string) (g Grammar, ok bool) {
	base := filepath.Base(path)
	if g, ok = r.names[base]; ok {
		return g, true
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return Grammar{}, false
	}
	g, ok = r.exts[ext]
	return g, ok
}

// Names lists the built-in grammar names.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
