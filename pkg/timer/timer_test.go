package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemTimer(t *testing.T) {
	clock := System()
	defer clock.Stop()

	before := time.Now()
	got := clock.Now()
	assert.False(t, got.Before(before))
}

func TestCachedTimer_Advances(t *testing.T) {
	clock := NewCachedTimer(time.Millisecond)
	defer clock.Stop()

	first := clock.Now()
	assert.Eventually(t, func() bool {
		return clock.Now().After(first)
	}, time.Second, 2*time.Millisecond)
}

func TestCachedTimer_StopIdempotent(t *testing.T) {
	clock := NewCachedTimer(0)
	clock.Stop()
	assert.NotPanics(t, clock.Stop)

	frozen := clock.Now()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, frozen, clock.Now())
}
