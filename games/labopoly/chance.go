/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

type ChanceOutcome string

const (
	ChanceCreativity ChanceOutcome = "Creativity"
	ChanceActivity   ChanceOutcome = "Activity"
	ChanceService    ChanceOutcome = "Service"
)

const (
	CreativityBonus = 150
	ActivityPenalty = 100
	ServiceFee      = 50
)

type SpinnerSlot struct {
	Outcome  ChanceOutcome
	MaxValue float64
}

// Spinner maps a uniform sample to an outcome by cumulative threshold.
type Spinner []SpinnerSlot

var chanceSpinner = Spinner{
	{Outcome: ChanceCreativity, MaxValue: 0.33},
	{Outcome: ChanceActivity, MaxValue: 0.67},
	{Outcome: ChanceService, MaxValue: 1},
}

// Spin returns the first slot whose threshold the sample does not exceed,
// so a sample on a boundary lands in the earlier slot.
func (s Spinner) Spin(sample float64) ChanceOutcome {
	for _, slot := range s {
		if sample <= slot.MaxValue {
			return slot.Outcome
		}
	}

	return s[len(s)-1].Outcome
}

// ChanceResult is shown to players after a spin.
type ChanceResult struct {
	Outcome ChanceOutcome `json:"outcome"`
	Amount  int           `json:"amount"`
}
