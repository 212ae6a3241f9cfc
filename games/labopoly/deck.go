/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"math/rand/v2"
)

// Rand is the source of randomness for a game. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

func (globalRand) Float64() float64 { return rand.Float64() }

// Fisher-Yates
func shuffle[T any](r Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Deck is a cyclic ordering of question indices within one collection.
type Deck []int

// ShuffledCopy returns a random permutation of [0, n).
func ShuffledCopy(n int, r Rand) Deck {
	d := make(Deck, n)
	for i := range d {
		d[i] = i
	}

	shuffle(r, d)

	return d
}

// Draw rotates the front index to the back and returns it.
// It reports false on an empty deck.
func (d Deck) Draw() (int, bool) {
	if len(d) == 0 {
		return 0, false
	}

	next := d[0]
	copy(d, d[1:])
	d[len(d)-1] = next

	return next, true
}

// decks holds the per-game draw order for every question pool.
type decks struct {
	property []Deck
	utility  []Deck
	auction  Deck
}

func newDecks(bank *QuestionBank, r Rand) decks {
	d := decks{
		property: make([]Deck, len(bank.Property)),
		utility:  make([]Deck, len(bank.Utility)),
		auction:  ShuffledCopy(len(bank.Auction), r),
	}

	for i, qs := range bank.Property {
		d.property[i] = ShuffledCopy(len(qs), r)
	}

	for i, qs := range bank.Utility {
		d.utility[i] = ShuffledCopy(len(qs), r)
	}

	return d
}

func (d decks) deck(category Category, collection int) Deck {
	switch category {
	case CategoryProperty:
		if collection >= 0 && collection < len(d.property) {
			return d.property[collection]
		}
	case CategoryUtility:
		if collection >= 0 && collection < len(d.utility) {
			return d.utility[collection]
		}
	case CategoryAuction:
		return d.auction
	}

	return nil
}

func (d decks) draw(category Category, collection int) (QuestionRef, bool) {
	index, ok := d.deck(category, collection).Draw()
	if !ok {
		return QuestionRef{}, false
	}

	if category == CategoryAuction {
		collection = 0
	}

	return QuestionRef{Category: category, Collection: collection, Index: index}, true
}
