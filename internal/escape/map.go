package escape

import "sort"

// Map indexes a slice of Escape records by start offset for the lexer's
// per-position lookups ("is there an escape starting here?").
type Map struct {
	escapes []Escape
}

// NewMap builds a Map from escapes produced by Preprocess (already in
// ascending Start order).
func NewMap(escapes []Escape) *Map {
	return &Map{escapes: escapes}
}

// At returns the Escape starting exactly at offset, if any.
func (m *Map) At(offset int) (Escape, bool) {
	i := sort.Search(len(m.escapes), func(i int) bool {
		return m.escapes[i].Start >= offset
	})
	if i < len(m.escapes) && m.escapes[i].Start == offset {
		return m.escapes[i], true
	}
	return Escape{}, false
}

// Any reports whether the half-open range [start, end) overlaps any
// recorded escape; used by the lexer to decide whether a token's
// original_spelling differs from its decoded_text (spec §4.1 fidelity rule).
func (m *Map) Any(start, end int) bool {
	i := sort.Search(len(m.escapes), func(i int) bool {
		return m.escapes[i].Start >= start
	})
	return i < len(m.escapes) && m.escapes[i].Start < end
}
