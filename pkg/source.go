// Package syntax implements the lexer, alias layer, and parser that turn
// POSIX shell source text into an abstract syntax tree. It is the front end
// described by the accompanying design notes: everything downstream of the
// AST (expansion, execution, job control, traps) is an external collaborator
// named only by interface in internal/exec.
package syntax

import (
	"fmt"
)

// Source tags the origin of a Code buffer. Its zero value is nil, not
// UnknownSource{}; text of no particular origin is tagged UnknownSource{}.
//
// Source is a closed variant implemented as an interface with unexported
// marker methods, mirroring the Rust original's enum while keeping each
// case's fields distinct (Alias carries an *Alias, CommandSubst/Arith carry
// only a Location, Trap carries a condition name).
type Source interface {
	// Label returns a short display label used when rendering a Location in
	// a diagnostic, e.g. "<stdin>" or "<alias>".
	Label() string

	// IsAliasFor reports whether this source is an alias substitution for
	// name, or is nested (through a chain of alias substitutions) inside
	// one that is. It is the re-entrance check alias substitution uses to
	// avoid infinitely re-expanding an alias within its own replacement.
	IsAliasFor(name string) bool

	isSource()
}

// baseSource gives every concrete Source a no-op IsAliasFor so only Alias
// needs to implement the recursive case.
type baseSource struct{}

func (baseSource) IsAliasFor(string) bool { return false }
func (baseSource) isSource()              {}

// UnknownSource is used for source of no particular origin; mainly useful
// for quick debugging and dummy locations built by tests.
type UnknownSource struct{ baseSource }

func (UnknownSource) Label() string { return "<?>" }

// StdinSource tags text read from the shell's standard input.
type StdinSource struct{ baseSource }

func (StdinSource) Label() string { return "<stdin>" }

// AliasSource tags a code fragment that replaced another as a result of
// alias substitution.
type AliasSource struct {
	baseSource

	// Original is the location of the word that was replaced.
	Original Location

	// Alias is the definition of the alias that was substituted.
	Alias *Alias
}

func (AliasSource) Label() string { return "<alias>" }

// IsAliasFor returns true if this source is substitution for an alias named
// name, or the code it replaced is itself (recursively) inside such a
// substitution.
func (a AliasSource) IsAliasFor(name string) bool {
	if a.Alias != nil && a.Alias.Name == name {
		return true
	}
	return a.Original.Code.Source.IsAliasFor(name)
}

// CommandSubstSource tags text parsed as the body of a command substitution.
type CommandSubstSource struct {
	baseSource
	Original Location
}

func (CommandSubstSource) Label() string { return "<command_substitution>" }

// ArithSource tags text parsed as the body of an arithmetic expansion.
type ArithSource struct {
	baseSource
	Original Location
}

func (ArithSource) Label() string { return "<arith>" }

// TrapSource tags text that is the action of a trap command.
type TrapSource struct {
	baseSource

	// Condition is the trap condition name, typically a signal name.
	Condition string

	// Origin is the location of the simple command that set this trap.
	Origin Location
}

func (t TrapSource) Label() string { return t.Condition }

// Code is a growable character buffer: one contiguous piece of source text,
// with a fixed starting line number and a fixed Source. Many Locations may
// share a single Code by pointer; a Code is never copied, only appended to.
//
// The lexer keeps a stack of frames, each with its own Code: the bottom one
// is filled from its Input, one line at a time and in order, and each alias
// substitution pushes a frame whose Code holds the replacement text. Completed Codes (those whose
// owning Lexer has moved on, e.g. after a command substitution closes) are
// immutable in practice even though nothing prevents further appends.
type Code struct {
	// text holds the accumulated runes of this code. It grows as the lexer
	// pulls more lines from Input; it is never truncated or rewritten, only
	// appended to via Append.
	text []rune

	// StartLine is the line number (counted from 1) of the first line of
	// this code.
	StartLine int

	// Source is the origin of this code.
	Source Source
}

// NewCode creates an empty Code with the given starting line and source.
func NewCode(startLine int, source Source) *Code {
	if startLine < 1 {
		startLine = 1
	}
	return &Code{StartLine: startLine, Source: source}
}

// Append adds s to the end of the buffered text. It is called once per line
// the lexer pulls from its Input.
func (c *Code) Append(s string) {
	c.text = append(c.text, []rune(s)...)
}

// Len returns the number of Unicode scalar values currently buffered.
func (c *Code) Len() int {
	return len(c.text)
}

// RuneAt returns the rune at index i.
func (c *Code) RuneAt(i int) rune {
	return c.text[i]
}

// Value returns the buffered text as a string.
func (c *Code) Value() string {
	return string(c.text)
}

// Location is a half-open character range [Lo, Hi) within a Code, measured
// in Unicode scalar values, not bytes. A single-character location has
// Hi == Lo+1.
type Location struct {
	Code *Code
	Lo   int
	Hi   int
}

// DummyLocation builds a Location of Unknown source spanning the whole of
// value, starting at line 1. It exists for tests and for diagnostics built
// around text that was never actually parsed (e.g. a programmatically
// inserted alias).
func DummyLocation(value string) Location {
	code := NewCode(1, UnknownSource{})
	code.Append(value)
	return Location{Code: code, Lo: 0, Hi: code.Len()}
}

// Text returns the substring of the underlying Code's value denoted by this
// Location.
func (l Location) Text() string {
	lo, hi := l.Lo, l.Hi
	if lo < 0 {
		lo = 0
	}
	if hi > l.Code.Len() {
		hi = l.Code.Len()
	}
	if lo > hi {
		lo = hi
	}
	return string(l.Code.text[lo:hi])
}

// String renders a location as "<label>:<line>:<col>" for diagnostics.
func (l Location) String() string {
	line, col := l.lineCol()
	return fmt.Sprintf("%s:%d:%d", l.Code.Source.Label(), line, col)
}

// lineCol computes the 1-based line and column of Lo within the code,
// counting newlines in the buffered text up to Lo.
func (l Location) lineCol() (line, col int) {
	line = l.Code.StartLine
	col = 1
	limit := l.Lo
	if limit > l.Code.Len() {
		limit = l.Code.Len()
	}
	for i := 0; i < limit; i++ {
		if l.Code.text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Alias is an immutable name-to-replacement-text record.
type Alias struct {
	// Name is the literal spelling this alias is looked up by.
	Name string

	// Replacement is the text substituted in place of a matching token.
	Replacement string

	// Global indicates whether this alias may be substituted outside
	// command-word position (the "global" alias flag).
	Global bool

	// Origin is the location (or a dummy one) of the alias's definition.
	Origin Location
}

// AliasSet is a set of Aliases keyed by name, shared by reference across
// parses. Looking up, inserting, or removing an alias never copies the set
// itself; callers that want an independent set must construct one and copy
// entries explicitly.
type AliasSet struct {
	byName map[string]*Alias
}

// NewAliasSet creates an empty AliasSet.
func NewAliasSet() *AliasSet {
	return &AliasSet{byName: make(map[string]*Alias)}
}

// Get looks up an alias by its exact literal name.
func (s *AliasSet) Get(name string) (*Alias, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// Insert adds or replaces the alias under its Name, returning the
// previously defined alias of that name, if any.
func (s *AliasSet) Insert(a *Alias) (previous *Alias, hadPrevious bool) {
	previous, hadPrevious = s.byName[a.Name]
	s.byName[a.Name] = a
	return previous, hadPrevious
}

// Remove deletes the alias of the given name, returning it if it existed.
func (s *AliasSet) Remove(name string) (removed *Alias, existed bool) {
	removed, existed = s.byName[name]
	if existed {
		delete(s.byName, name)
	}
	return removed, existed
}

// Iter returns every alias currently defined, ordered by name for
// reproducible diagnostic dumps.
func (s *AliasSet) Iter() []*Alias {
	out := make([]*Alias, 0, len(s.byName))
	for _, a := range s.byName {
		out = append(out, a)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Name > out[j].Name; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
