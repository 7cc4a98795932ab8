// Package config loads jparse's project configuration from a
// .jparse.kdl file (spec §9.2 resolution: max input size and the other
// tunables below are configurable rather than hardcoded). Grounded on
// the teacher's internal/config package: a plain struct of defaults,
// a KDL loader, and a separate Validator that both checks and fills in
// smart defaults.
package config

import (
	"runtime"

	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/types"
)

// Config holds every tunable jparse reads from .jparse.kdl, a CLI flag,
// or a built-in default: CLI flags override the file, and the file
// overrides these defaults.
type Config struct {
	// Version is the target language version the parser accepts.
	Version langver.Version

	// MaxInputBytes bounds a single source file's size (spec §6.3).
	MaxInputBytes int

	// ArenaCapacityFactor estimates the node arena's initial capacity
	// as a multiple of input byte length (spec §4.3).
	ArenaCapacityFactor float64

	// RecursionLimit is validated and shown by the CLI; the parser's
	// nesting guard always uses types.MaxRecursionDepth and does not
	// read this value.
	RecursionLimit int

	// MetricsEnabled turns on the process-wide counters at startup
	// (spec §6.4).
	MetricsEnabled bool

	// Workers bounds how many files cmd/jparse's batch mode parses
	// concurrently. 0 means auto-detect (cores - 1, minimum 1).
	Workers int

	// Include/Exclude are doublestar glob patterns applied by cmd/jparse
	// batch mode when walking a source tree.
	Include []string
	Exclude []string
}

// Default returns the built-in Config before any .jparse.kdl or CLI
// flag is applied.
func Default() Config {
	return Config{
		Version:             langver.Latest,
		MaxInputBytes:       types.DefaultMaxInputBytes,
		ArenaCapacityFactor: types.DefaultArenaCapacityFactor,
		RecursionLimit:      types.MaxRecursionDepth,
		MetricsEnabled:      false,
		Workers:             0,
		Include:             []string{"**/*.java"},
		Exclude:             defaultExclusions(),
	}
}

// defaultExclusions mirrors the teacher's build-artifact/VCS exclusion
// list, trimmed to the patterns relevant to a Java source tree rather
// than every language the teacher's indexer ever walked.
func defaultExclusions() []string {
	return []string{
		"**/.git/**",
		"**/target/**",  // Maven
		"**/build/**",   // Gradle
		"**/out/**",
		"**/.gradle/**",
		"**/.m2/**",
		"**/node_modules/**",
		"**/*.class",
	}
}

func defaultWorkers() int {
	return max(1, runtime.NumCPU()-1)
}
