// Command decode_ids is a small debugging aid: given a parsed file, it
// decodes a NodeID into its node kind, source span, parent id, child
// count and source text, and prints the node's base-63 reference.
// Mirrors the teacher's cmd/decode_ids, adapted from an opaque
// SymbolID bit-packing scheme to this arena's plain integer ids.
package main

import (
	"fmt"
	"os"

	"github.com/standardbeagle/jparse/internal/facade"
	"github.com/standardbeagle/jparse/internal/idcodec"
	"github.com/standardbeagle/jparse/internal/types"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: decode_ids <file.java> [nodeID...]")
		os.Exit(2)
	}

	text, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	scope, err := facade.Open(text, facade.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	defer scope.Release()

	res := scope.Parse(facade.Options{})
	if !res.IsSuccess() {
		errs, _ := res.Errors()
		for _, d := range errs {
			fmt.Println(d.String())
		}
		os.Exit(1)
	}

	root, _ := scope.Root()
	ids := []types.NodeID{root}
	for _, arg := range os.Args[2:] {
		var n int
		if _, err := fmt.Sscanf(arg, "%d", &n); err == nil {
			ids = append(ids, types.NodeID(n))
		}
	}

	for _, id := range ids {
		n, err := scope.Node(id)
		if err != nil {
			fmt.Printf("%d -> error: %v\n", id, err)
			continue
		}
		text, _ := scope.TextOf(id)
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		fmt.Printf("%d (ref=%s) -> kind=%s span=[%d,%d) parent=%d children=%d text=%q\n",
			id, idcodec.EncodeNodeID(id), n.Kind, n.Start, n.End, n.ParentID, len(n.Children), text)
	}
}
