package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnableDebugLogging(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	for _, enabled := range []bool{true, false, true} {
		EnableDebugLogging(enabled)
		assert.Equal(t, enabled, IsDebugEnabled())
	}
}

func TestDebugLogging_SchedulerTicks(t *testing.T) {
	EnableDebugLogging(true)
	t.Cleanup(func() { EnableDebugLogging(false) })

	f := newFixture(t, DefaultConfig(), 1, nil)
	for range 200 {
		f.sched.Tick(0.05)
		f.actor.Tick(0.05)
	}

	casts := 0
	for _, n := range f.actor.Engine().Uses() {
		casts += n
	}
	assert.Positive(t, casts)
}

func TestDebugLogging_ConcurrentToggle(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			for range 1000 {
				EnableDebugLogging(i%2 == 0)
				_ = IsDebugEnabled()
			}
		})
	}
	wg.Wait()
}
