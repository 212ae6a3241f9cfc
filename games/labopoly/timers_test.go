/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"testing"
	"time"
)

func TestTimerSlotIgnoresStaleFire(t *testing.T) {
	sched := &fakeScheduler{}
	slot := timerSlot{sched: sched, post: runInline}

	var fired []string
	slot.arm(time.Second, func() { fired = append(fired, "first") })
	stale := sched.timers[0]

	slot.arm(time.Second, func() { fired = append(fired, "second") })

	// Stop lost the race: the old callback still reaches the owner.
	stale.f()

	if len(fired) != 0 {
		t.Fatalf("stale callback ran: %v", fired)
	}

	sched.fire(t)

	if len(fired) != 1 || fired[0] != "second" || slot.pending() {
		t.Errorf("fired = %v, pending = %v", fired, slot.pending())
	}
}

func TestTimerSlotCancel(t *testing.T) {
	sched := &fakeScheduler{}
	slot := timerSlot{sched: sched, post: runInline}

	slot.arm(time.Second, func() { t.Error("cancelled callback ran") })
	slot.cancel()

	if slot.pending() || len(sched.pending()) != 0 {
		t.Error("timer still pending after cancel")
	}

	sched.timers[0].f()
}

func TestTimersScale(t *testing.T) {
	fast := DefaultTimers().Scale(0.5)

	if fast.StartTurn != 5*time.Second || fast.Auctioning != 22500*time.Millisecond {
		t.Errorf("scaled timers = %+v", fast)
	}
	if got := DefaultTimers().answering(7); got != 65*time.Second {
		t.Errorf("answering(7) = %s, want 65s", got)
	}
}
