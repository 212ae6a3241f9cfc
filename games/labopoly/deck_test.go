/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"math/rand/v2"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func TestShuffledCopyIsPermutation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(t, "n")
		seed := rapid.Uint64().Draw(t, "seed")

		d := ShuffledCopy(n, rand.New(rand.NewPCG(seed, seed)))

		sorted := slices.Sorted(slices.Values(d))
		for i, v := range sorted {
			if v != i {
				t.Fatalf("deck %v is not a permutation of [0, %d)", d, n)
			}
		}
		if len(sorted) != n {
			t.Fatalf("len = %d, want %d", len(sorted), n)
		}
	})
}

func TestDrawCyclesThroughDeck(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 32).Draw(t, "n")
		seed := rapid.Uint64().Draw(t, "seed")

		d := ShuffledCopy(n, rand.New(rand.NewPCG(seed, 1)))
		start := slices.Clone(d)

		var drawn []int
		for range n {
			v, ok := d.Draw()
			if !ok {
				t.Fatal("Draw failed on a non-empty deck")
			}
			drawn = append(drawn, v)
		}

		if !slices.Equal(drawn, start) {
			t.Fatalf("drew %v, want %v", drawn, start)
		}
		if !slices.Equal(d, start) {
			t.Fatalf("deck %v did not return to %v after a full cycle", d, start)
		}
	})
}

func TestDrawEmptyDeck(t *testing.T) {
	if _, ok := Deck(nil).Draw(); ok {
		t.Error("Draw on an empty deck should fail")
	}
}

func TestDecksFollowBank(t *testing.T) {
	d := newDecks(testBank(false), &fakeRand{})

	ref, ok := d.draw(CategoryUtility, 3)
	if !ok || ref != (QuestionRef{Category: CategoryUtility, Collection: 3}) {
		t.Errorf("draw = %+v, %v", ref, ok)
	}

	if _, ok := d.draw(CategoryProperty, 8); ok {
		t.Error("draw from a missing collection should fail")
	}
	if _, ok := d.draw(CategoryAuction, 0); ok {
		t.Error("draw from an empty auction pool should fail")
	}
}
