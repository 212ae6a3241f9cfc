/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"time"
)

// Timers holds the duration of every timed phase.
type Timers struct {
	StartTurn      time.Duration
	RollingDice    time.Duration
	Moving         time.Duration
	Acting         time.Duration
	Answering      time.Duration
	AnsweringBonus time.Duration
	Jailed         time.Duration
	Auctioning     time.Duration
	Chance         time.Duration
	Nothing        time.Duration
}

func DefaultTimers() Timers {
	return Timers{
		StartTurn:      10 * time.Second,
		RollingDice:    3 * time.Second,
		Moving:         5 * time.Second,
		Acting:         15 * time.Second,
		Answering:      30 * time.Second,
		AnsweringBonus: 5 * time.Second,
		Jailed:         5 * time.Second,
		Auctioning:     45 * time.Second,
		Chance:         10 * time.Second,
		Nothing:        5 * time.Second,
	}
}

// Scale multiplies every duration by f.
func (t Timers) Scale(f float64) Timers {
	s := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * f)
	}

	return Timers{
		StartTurn:      s(t.StartTurn),
		RollingDice:    s(t.RollingDice),
		Moving:         s(t.Moving),
		Acting:         s(t.Acting),
		Answering:      s(t.Answering),
		AnsweringBonus: s(t.AnsweringBonus),
		Jailed:         s(t.Jailed),
		Auctioning:     s(t.Auctioning),
		Chance:         s(t.Chance),
		Nothing:        s(t.Nothing),
	}
}

// answering grants more time for harder collections.
func (t Timers) answering(collection int) time.Duration {
	return t.Answering + time.Duration(collection)*t.AnsweringBonus
}

// Timer is a pending callback. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler arms single-shot callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// timerSlot holds at most one pending callback. Callbacks are handed to post
// so they run on the owner's goroutine, and are dropped if the slot was
// re-armed or cancelled after they fired.
type timerSlot struct {
	sched Scheduler
	post  func(func())
	timer Timer
	gen   uint64
}

func (s *timerSlot) arm(d time.Duration, fn func()) {
	s.cancel()

	gen := s.gen
	s.timer = s.sched.AfterFunc(d, func() {
		s.post(func() {
			if s.gen != gen {
				return
			}

			s.timer = nil
			fn()
		})
	})
}

func (s *timerSlot) cancel() {
	s.gen++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *timerSlot) pending() bool {
	return s.timer != nil
}
