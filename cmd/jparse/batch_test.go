package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/jparse/internal/config"
	"github.com/standardbeagle/jparse/internal/types"
)

// TestConcurrentParseFile_NoLeaksOrRaces exercises the same
// errgroup-bounded pattern batchCommand uses, directly, so a future
// goroutine or resource leak in parseFile shows up under `go test
// -race` without needing a full directory walk.
func TestConcurrentParseFile_NoLeaksOrRaces(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 20; i++ {
		path := filepath.Join(dir, "File"+string(rune('A'+i))+".java")
		require.NoError(t, os.WriteFile(path, []byte("class Foo {}"), 0o644))
		paths = append(paths, path)
	}

	results := make([]fileResult, len(paths))
	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(4)

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			results[i] = parseFile(path, types.FileID(i))
			return nil
		})
	}
	require.NoError(t, group.Wait())

	for _, r := range results {
		assert.True(t, r.OK)
		assert.NotEmpty(t, r.RootRef)
	}
}
