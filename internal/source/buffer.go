// Package source owns the immutable input text and provides byte-offset
// to line/column lookups (spec §3.1).
package source

import "sort"

// Buffer is an immutable byte sequence. All positions elsewhere in the
// system are half-open byte ranges [start, end) into a Buffer. A Buffer
// is created once from input text and lives as long as the enclosing
// parser scope; it is never mutated.
type Buffer struct {
	text      []byte
	lineStart []int // byte offset of the first byte of each line (0-based lines)
}

// New creates a Buffer over text. text is not copied; callers must not
// mutate the slice afterward.
func New(text []byte) *Buffer {
	b := &Buffer{text: text}
	b.lineStart = computeLineStarts(text)
	return b
}

func computeLineStarts(text []byte) []int {
	starts := make([]int, 1, 16)
	starts[0] = 0
	for i, c := range text {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// Bytes returns the full underlying byte slice. Callers must not mutate it.
func (b *Buffer) Bytes() []byte { return b.text }

// Slice returns the substring [start, end) as a string. Panics if the
// range is out of bounds; callers are expected to pass validated spans.
func (b *Buffer) Slice(start, end int) string {
	return string(b.text[start:end])
}

// At returns the byte at offset i.
func (b *Buffer) At(i int) byte { return b.text[i] }

// LineColumn converts a 0-based byte offset to a 1-based (line, column) pair.
func (b *Buffer) LineColumn(offset int) (line, column int) {
	// Find the last lineStart <= offset.
	idx := sort.Search(len(b.lineStart), func(i int) bool {
		return b.lineStart[i] > offset
	})
	lineIdx := idx - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	line = lineIdx + 1
	column = offset - b.lineStart[lineIdx] + 1
	return
}
