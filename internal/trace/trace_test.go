package trace

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func saveAndRestoreState() func() {
	wasEnabled := Enabled()
	return func() {
		enabled.Store(wasEnabled)
		SetOutput(nil)
	}
}

func TestTracef_NoOutputWhenDisabled(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	Disable()
	Tracef("should not appear")

	assert.Empty(t, buf.String())
}

func TestTracef_WritesWhenEnabled(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	Enable()
	Tracef("parsing %s", "Foo.java")

	assert.Contains(t, buf.String(), "[jparse]")
	assert.Contains(t, buf.String(), "parsing Foo.java")
}

func TestTracef_NilOutputIsSilent(t *testing.T) {
	defer saveAndRestoreState()()

	SetOutput(nil)
	Enable()
	Tracef("test %s", "message")
}

func TestTracef_ConcurrentCallsDoNotRace(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	Enable()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Tracef("goroutine %d", n)
		}(i)
	}
	wg.Wait()
}
