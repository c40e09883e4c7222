package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineTimersFire(t *testing.T) {
	timers := NewDeadlineTimers()
	fired := make(chan struct{})
	timers.Schedule(1, 10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Equal(t, 0, timers.Pending())
}

func TestDeadlineTimersCancel(t *testing.T) {
	timers := NewDeadlineTimers()
	var fires int32
	timers.Schedule(1, 20*time.Millisecond, func() { atomic.AddInt32(&fires, 1) })
	timers.Cancel(1)
	// Cancel is idempotent, also for campaigns that never had a timer.
	timers.Cancel(1)
	timers.Cancel(42)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fires))
	assert.Equal(t, 0, timers.Pending())
}

func TestDeadlineTimersOneLivePerCampaign(t *testing.T) {
	timers := NewDeadlineTimers()
	var first, second int32
	timers.Schedule(1, 20*time.Millisecond, func() { atomic.AddInt32(&first, 1) })
	// Re-scheduling replaces the earlier timer entirely.
	timers.Schedule(1, 40*time.Millisecond, func() { atomic.AddInt32(&second, 1) })
	require.Equal(t, 1, timers.Pending())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&first))
	assert.Equal(t, int32(1), atomic.LoadInt32(&second))
}

// TestDeadlineFireChecksLiveState models the payment-vs-deadline race: the
// fire callback re-checks live status and must not cancel once payment won.
func TestDeadlineFireChecksLiveState(t *testing.T) {
	timers := NewDeadlineTimers()
	var status atomic.Value
	status.Store("PENDING_PAYMENT")
	cancelled := make(chan struct{}, 1)

	timers.Schedule(7, 30*time.Millisecond, func() {
		if status.Load() == "PENDING_PAYMENT" {
			cancelled <- struct{}{}
		}
	})
	// payment confirmed just before the deadline
	status.Store("ACTIVE")
	timers.Cancel(7)

	select {
	case <-cancelled:
		t.Fatal("deadline cancelled a paid campaign")
	case <-time.After(80 * time.Millisecond):
	}
}
