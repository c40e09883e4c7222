package service

import (
	"sync"
	"time"
)

// DeadlineTimers keeps at most one live payment-deadline timer per campaign.
// Timers are process-local; the lifecycle service persists the due time on
// the campaign row and re-schedules on startup, so a restart cannot lose a
// deadline for good.
type DeadlineTimers struct {
	mu     sync.Mutex
	timers map[uint]*time.Timer
}

func NewDeadlineTimers() *DeadlineTimers {
	return &DeadlineTimers{timers: make(map[uint]*time.Timer)}
}

// Schedule arms a timer for the campaign, replacing any previous one. fire
// runs on the timer goroutine and must re-check live state itself.
func (d *DeadlineTimers) Schedule(campaignID uint, in time.Duration, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[campaignID]; ok {
		t.Stop()
	}
	d.timers[campaignID] = time.AfterFunc(in, func() {
		d.remove(campaignID)
		fire()
	})
}

// Cancel stops the campaign's timer if one is armed. Safe to call multiple
// times and for campaigns with no timer.
func (d *DeadlineTimers) Cancel(campaignID uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[campaignID]; ok {
		t.Stop()
		delete(d.timers, campaignID)
	}
}

func (d *DeadlineTimers) remove(campaignID uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.timers, campaignID)
}

// Pending returns the number of armed timers.
func (d *DeadlineTimers) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}
