/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"slices"
)

const (
	StartingCurrency = 1000
	PassGoBonus      = 200
	UtilityBase      = 200
	UtilityBonus     = 50
	PropertyBase     = 100
	PropertyBonus    = 50
	FullBail         = 200
	HalfBail         = 100
	AuctionBounty    = 100

	FullJailTerm = 6
	HalfJailTerm = 3

	// MaxUpgrade is the highest upgrade level a property can reach.
	MaxUpgrade = 2
)

// upgradeSteps holds, per upgrade level, the multiplier increment in tenths
// of the base value. A level's multiplier is the sum of every step up to and
// including it: 1.0, 1.5, 2.2.
var upgradeSteps = [MaxUpgrade + 1]int{10, 5, 7}

func multiplierTenths(level int) int {
	level = min(max(level, 0), MaxUpgrade)

	total := 0
	for _, step := range upgradeSteps[:level+1] {
		total += step
	}

	return total
}

// roundUpToFive rounds numerator/denominator up to the next multiple of five.
func roundUpToFive(numerator, denominator int) int {
	d := denominator * 5

	return (numerator + d - 1) / d * 5
}

func sellPrice(value int) int {
	return roundUpToFive(value*7, 10)
}

func rentPrice(value int) int {
	return roundUpToFive(value*5, 10)
}

// BaseValue returns the unupgraded value of a property in the given collection.
func BaseValue(collection int) int {
	return PropertyBase + collection*PropertyBonus
}

// PropertyValue returns a property's value at its current upgrade level.
func PropertyValue(t Tile) int {
	return t.BaseValue * multiplierTenths(t.Upgrade) / 10
}

// PropertyUpgradedValue returns a property's value one upgrade level higher.
// A fully upgraded property reports its current value.
func PropertyUpgradedValue(t Tile) int {
	return t.BaseValue * multiplierTenths(t.Upgrade+1) / 10
}

func PropertyBuyPrice(t Tile) int {
	return t.BaseValue
}

// PropertyUpgradePrice is zero once a property can no longer be upgraded.
func PropertyUpgradePrice(t Tile) int {
	if t.Upgrade < 0 || t.Upgrade >= MaxUpgrade {
		return 0
	}

	return t.BaseValue * upgradeSteps[t.Upgrade+1] / 10
}

func PropertySellValue(t Tile) int {
	return sellPrice(PropertyValue(t))
}

func PropertyRentValue(t Tile) int {
	return rentPrice(PropertyValue(t))
}

func PropertyUpgradedSellValue(t Tile) int {
	return sellPrice(PropertyUpgradedValue(t))
}

func PropertyUpgradedRentValue(t Tile) int {
	return rentPrice(PropertyUpgradedValue(t))
}

func UtilityBuyPrice() int {
	return UtilityBase
}

func UtilitySellValue() int {
	return sellPrice(UtilityBase)
}

// UtilityRentValue scales with the number of utilities the owner controls.
func UtilityRentValue(owned int) int {
	return rentPrice(UtilityBase + owned*UtilityBonus)
}

// Sets returns the board indices of every property collection fully
// contained in owned, in ascending board order.
func Sets(board []Tile, owned []int) []int {
	have := make(map[int]bool, len(owned))
	for _, i := range owned {
		have[i] = true
	}

	members := make(map[int][]int)
	for i, t := range board {
		if t.Kind == KindProperty {
			members[t.Collection] = append(members[t.Collection], i)
		}
	}

	var sets []int
	for _, indices := range members {
		complete := true
		for _, i := range indices {
			if !have[i] {
				complete = false
				break
			}
		}
		if complete {
			sets = append(sets, indices...)
		}
	}

	slices.Sort(sets)

	return sets
}

// sellValue prices any ownable tile.
func sellValue(t Tile) int {
	if t.Kind == KindUtility {
		return UtilitySellValue()
	}

	return PropertySellValue(t)
}
