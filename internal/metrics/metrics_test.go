package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_DisabledByDefaultIsNoop(t *testing.T) {
	Disable()
	Reset()

	RecordFileProcessed(5 * time.Millisecond)
	RecordNodesAllocated(10)
	RecordParseError()

	snap := Take()
	assert.Zero(t, snap.FilesProcessed)
	assert.Zero(t, snap.NodesAllocatedTotal)
	assert.Zero(t, snap.ParseErrors)
}

func TestMetrics_EnabledRecordsCounters(t *testing.T) {
	Enable()
	defer Disable()
	Reset()

	RecordFileProcessed(5 * time.Millisecond)
	RecordNodesAllocated(10)
	RecordNodesAllocated(5)
	RecordParseError()

	snap := Take()
	assert.Equal(t, int64(1), snap.FilesProcessed)
	assert.Equal(t, int64(15), snap.NodesAllocatedTotal)
	assert.Equal(t, int64(1), snap.ParseErrors)
	assert.Equal(t, 5*time.Millisecond, snap.ParseTimeTotal)
}

func TestMetrics_ResetZeroesWithoutChangingEnableFlag(t *testing.T) {
	Enable()
	RecordParseError()
	Reset()

	assert.True(t, Enabled())
	snap := Take()
	assert.Zero(t, snap.ParseErrors)
	Disable()
}
