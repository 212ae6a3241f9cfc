/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNoFreeRoomCodes = errors.New("no free room codes")

// maxCodeAttempts bounds room code generation; the word lists only
// produce a handful of distinct codes.
const maxCodeAttempts = 64

// Options configures every room created by a Registry.
// Zero values are replaced with defaults by NewRegistry.
type Options struct {
	Logf           func(format string, args ...any)
	Questions      *QuestionBank
	Timers         Timers
	ReadyDelay     time.Duration
	SessionTimeout time.Duration
	Scheduler      Scheduler
	Rand           Rand
}

func (o Options) withDefaults() (Options, error) {
	if o.Logf == nil {
		o.Logf = func(string, ...any) {}
	}

	if o.Questions == nil {
		bank, err := LoadQuestionBank("")
		if err != nil {
			return o, err
		}

		o.Questions = bank
	}

	if o.Timers == (Timers{}) {
		o.Timers = DefaultTimers()
	}

	if o.ReadyDelay == 0 {
		o.ReadyDelay = 5 * time.Second
	}

	if o.Scheduler == nil {
		o.Scheduler = clockScheduler{}
	}

	if o.Rand == nil {
		o.Rand = globalRand{}
	}

	return o, nil
}

// Registry maps room codes to rooms, so each code is its own isolated game.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	opts  Options
}

func NewRegistry(opts Options) (*Registry, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	return &Registry{
		rooms: make(map[string]*Room),
		opts:  opts,
	}, nil
}

// Create opens a room under a fresh code.
func (reg *Registry) Create() (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for range maxCodeAttempts {
		code := roomCode(reg.opts.Rand)
		if _, exists := reg.rooms[code]; exists {
			continue
		}

		room := newRoom(code, reg, reg.opts)
		reg.rooms[code] = room
		go room.run()

		reg.opts.Logf("GAMES: Created room %s", code)

		return room, nil
	}

	return nil, ErrNoFreeRoomCodes
}

func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[code]

	return room, ok
}

func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.rooms)
}

// remove drops code only while it still maps to room.
func (reg *Registry) remove(code string, room *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.rooms[code] == room {
		delete(reg.rooms, code)
	}
}

// reap closes rooms with no activity since SessionTimeout before now.
func (reg *Registry) reap(now time.Time) int {
	cutoff := now.Add(-reg.opts.SessionTimeout)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	reaped := 0
	for code, room := range reg.rooms {
		if room.idleSince(cutoff) {
			delete(reg.rooms, code)
			room.close()
			reaped++
		}
	}

	return reaped
}

func (reg *Registry) closeAll() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for code, room := range reg.rooms {
		delete(reg.rooms, code)
		room.close()
	}
}

// Run reaps idle rooms until ctx is done, then closes every room.
func (reg *Registry) Run(ctx context.Context) error {
	defer reg.closeAll()

	if reg.opts.SessionTimeout <= 0 {
		<-ctx.Done()

		return nil
	}

	ticker := time.NewTicker(reg.opts.SessionTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := reg.reap(now); n > 0 {
				reg.opts.Logf("GAMES: Reaped %d idle rooms", n)
			}
		}
	}
}
