/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true

	return active
}

// fakeScheduler records timers instead of running them.
type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)

	return t
}

func (s *fakeScheduler) pending() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}

	return out
}

// fire runs the single pending timer and returns its duration.
func (s *fakeScheduler) fire(t *testing.T) time.Duration {
	t.Helper()

	pending := s.pending()
	if len(pending) != 1 {
		t.Fatalf("expected exactly one pending timer, got %d", len(pending))
	}

	timer := pending[0]
	timer.fired = true
	timer.f()

	return timer.d
}

// fakeRand replays scripted values, then returns zeros.
type fakeRand struct {
	ints   []int
	floats []float64
}

func (r *fakeRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}

	v := r.ints[0]
	r.ints = r.ints[1:]

	return v % n
}

func (r *fakeRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}

	v := r.floats[0]
	r.floats = r.floats[1:]

	return v
}

func runInline(fn func()) {
	fn()
}

// testBank has one free-text question per collection, answered "p<n>",
// "u<n>" or "auction".
func testBank(auction bool) *QuestionBank {
	bank := &QuestionBank{}

	for i := range 8 {
		bank.Property = append(bank.Property, []Question{
			{Kind: FreeText, Text: fmt.Sprintf("property %d?", i), Correct: fmt.Sprintf("p%d", i)},
		})
	}

	for i := range 4 {
		bank.Utility = append(bank.Utility, []Question{
			{Kind: FreeText, Text: fmt.Sprintf("utility %d?", i), Correct: fmt.Sprintf("u%d", i)},
		})
	}

	if auction {
		bank.Auction = []Question{{Kind: FreeText, Text: "auction?", Correct: "auction"}}
	}

	return bank
}

func testOptions(t *testing.T, sched Scheduler, auction bool) Options {
	t.Helper()

	opts, err := Options{
		Logf:      t.Logf,
		Questions: testBank(auction),
		Scheduler: sched,
		Rand:      &fakeRand{},
	}.withDefaults()
	if err != nil {
		t.Fatal(err)
	}

	return opts
}

type testGame struct {
	*Game
	sched *fakeScheduler
	emits int
}

func newTestGame(t *testing.T, players ...string) *testGame {
	t.Helper()

	return newTestGameWith(t, true, players...)
}

func newTestGameWith(t *testing.T, auction bool, players ...string) *testGame {
	t.Helper()

	tg := &testGame{sched: &fakeScheduler{}}

	names := make(map[string]string, len(players))
	for _, id := range players {
		names[id] = "Player " + id
	}

	tg.Game = newGame(players, names, testOptions(t, tg.sched, auction), runInline, func(*GameState) {
		tg.emits++
	})

	return tg
}

// roll moves the current player by n through the rolling and moving phases.
func (tg *testGame) roll(t *testing.T, n int) {
	t.Helper()

	tg.rng = &fakeRand{ints: []int{n - 1}}

	if err := tg.RollDice(tg.State.current()); err != nil {
		t.Fatalf("RollDice: %v", err)
	}

	tg.sched.fire(t)
	tg.sched.fire(t)
}

func (tg *testGame) activity() Activity {
	return tg.State.TurnState.Activity
}

func newTestClient(id string) *Client {
	return &Client{id: id, send: make(chan []byte, 256)}
}

// received drains the client's queue.
func received(t *testing.T, c *Client) []Message {
	t.Helper()

	var msgs []Message
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return msgs
			}

			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("decode %s: %v", data, err)
			}
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func types(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Type
	}

	return out
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}

	return data
}
