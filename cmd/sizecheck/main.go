// Command sizecheck verifies the arena node record still fits the
// spec's 16-byte budget (spec §3.3, P6), catching a future field
// addition before it silently doubles the dominant cost of a parse.
package main

import (
	"fmt"

	"github.com/standardbeagle/jparse/internal/arena"
	"github.com/standardbeagle/jparse/internal/types"
)

func main() {
	fmt.Printf("Node record size: %d bytes (budget: %d)\n", arena.RecordSize, types.NodeRecordSize)
	if arena.RecordSize != types.NodeRecordSize {
		fmt.Printf("MISMATCH: record size drifted from the spec budget\n")
	}

	const n = 100000
	fmt.Printf("\nIf you have %d nodes:\n", n)
	fmt.Printf("  Record column: %.2f KB\n", float64(n*arena.RecordSize)/1024)
	fmt.Printf("  vs. a naive pointer-based AST node (est. 64 bytes + GC overhead): %.2f KB\n", float64(n*64)/1024)
}
