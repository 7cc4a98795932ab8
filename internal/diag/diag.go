// Package diag defines the parse diagnostic record (spec §3.6) shared by
// the escape preprocessor, lexer, parser core, and parse result.
package diag

import "fmt"

// Diagnostic is an immutable structured error record: byte offset into
// the source, 1-based line/column, and a human-readable message.
type Diagnostic struct {
	Offset  int
	Line    int
	Column  int
	Message string
}

// New constructs a Diagnostic.
func New(offset, line, column int, message string) Diagnostic {
	return Diagnostic{Offset: offset, Line: line, Column: column, Message: message}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// List is an ordered collection of diagnostics. A Sink accumulates them
// during lexing/parsing; once handed to a Failure (see internal/result)
// it is defensively copied to guarantee immutability.
type List []Diagnostic

// Sink accumulates diagnostics in order of emission.
type Sink struct {
	items List
}

// Add appends a diagnostic to the sink.
func (s *Sink) Add(d Diagnostic) {
	s.items = append(s.items, d)
}

// Empty reports whether no diagnostics have been recorded.
func (s *Sink) Empty() bool { return len(s.items) == 0 }

// Len returns the number of recorded diagnostics.
func (s *Sink) Len() int { return len(s.items) }

// Items returns a defensive copy of the recorded diagnostics in emission order.
func (s *Sink) Items() List {
	out := make(List, len(s.items))
	copy(out, s.items)
	return out
}
