/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"fmt"
)

var (
	adverbs    = []string{"Never", "Always"}
	verbs      = []string{"Eat", "Slice"}
	adjectives = []string{"Shredded", "Whole"}
	nouns      = []string{"Wheat", "Apples"}

	animals = []string{"Alpaca", "Bear", "Cat", "Dog", "Eel", "Flounder", "Giraffe", "Hyena", "Iguana"}
)

func choose(r Rand, words []string) string {
	return words[r.IntN(len(words))]
}

func roomCode(r Rand) string {
	return choose(r, adverbs) + choose(r, verbs) + choose(r, adjectives) + choose(r, nouns)
}

// playerName picks an animal not yet used in the room, numbering it once
// every animal is taken.
func playerName(r Rand, taken func(string) bool) string {
	for range 4 * len(animals) {
		name := choose(r, animals)
		if !taken(name) {
			return name
		}
	}

	for n := 1; ; n++ {
		for _, animal := range animals {
			name := animal
			if n > 1 {
				name = fmt.Sprintf("%s %d", animal, n)
			}

			if !taken(name) {
				return name
			}
		}
	}
}
