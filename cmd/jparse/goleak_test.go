package main

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures batch mode's errgroup-bounded concurrent parsing
// leaves no goroutines behind once group.Wait returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
