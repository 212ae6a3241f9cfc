/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"errors"
	"slices"
)

var (
	ErrNotYourTurn       = errors.New("not your turn")
	ErrWrongPhase        = errors.New("action not allowed right now")
	ErrInvalidReaction   = errors.New("invalid reaction")
	ErrJailed            = errors.New("player is jailed")
	ErrNotJailed         = errors.New("player is not jailed")
	ErrNothingToUpgrade  = errors.New("no properties can be upgraded")
	ErrNothingToSell     = errors.New("no tiles to sell")
	ErrInvalidTile       = errors.New("tile not available for this action")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidTrade      = errors.New("invalid trade offer")
	ErrNoOffer           = errors.New("no trade offer to answer")
	ErrNotInGame         = errors.New("player is not in this game")
)

// Activity is the current phase of a turn.
type Activity string

const (
	ActivityStartingTurn   Activity = "starting turn"
	ActivityStayingInJail  Activity = "staying in jail"
	ActivitySelling        Activity = "selling"
	ActivityUpgrading      Activity = "upgrading"
	ActivityRollingDice    Activity = "rolling dice"
	ActivityMoving         Activity = "moving"
	ActivityActing         Activity = "acting"
	ActivitySpinningChance Activity = "spinning chance"
	ActivityAnswering      Activity = "answering question"
	ActivityFinishingTurn  Activity = "finishing turn"
	ActivityAuctioning     Activity = "auctioning"
)

// Reactions accepted while acting.
const (
	ReactionAccept  = "accept"
	ReactionDecline = "decline"
	ReactionFull    = "full"
	ReactionHalf    = "half"
	ReactionStay    = "stay"
)

type GamePlayer struct {
	Currency   int   `json:"currency"`
	Properties []int `json:"properties"`
	Utilities  []int `json:"utilities"`
	Position   int   `json:"currentTile"`
	Jailed     int   `json:"jailed"`
}

func newGamePlayer() *GamePlayer {
	return &GamePlayer{
		Currency:   StartingCurrency,
		Properties: []int{},
		Utilities:  []int{},
	}
}

func (p *GamePlayer) owns() bool {
	return len(p.Properties)+len(p.Utilities) > 0
}

func (p *GamePlayer) take(t Tile, index int) {
	if t.Kind == KindUtility {
		p.Utilities = append(p.Utilities, index)
		slices.Sort(p.Utilities)

		return
	}

	p.Properties = append(p.Properties, index)
	slices.Sort(p.Properties)
}

func (p *GamePlayer) give(t Tile, index int) {
	drop := func(s []int) []int {
		return slices.DeleteFunc(s, func(i int) bool { return i == index })
	}

	if t.Kind == KindUtility {
		p.Utilities = drop(p.Utilities)

		return
	}

	p.Properties = drop(p.Properties)
}

type StartOptions struct {
	Roll    bool `json:"roll"`
	Bail    bool `json:"bail"`
	Upgrade bool `json:"upgrade"`
	Sell    bool `json:"sell"`
}

type Move struct {
	Rolled   int  `json:"rolled"`
	NewTile  int  `json:"newTile"`
	PassedGo bool `json:"passedGo"`
}

// ActionData carries the prices shown with a landing prompt.
type ActionData struct {
	BuyPrice  int `json:"buyPrice,omitempty"`
	RentValue int `json:"rentValue,omitempty"`
	SellValue int `json:"sellValue,omitempty"`
	FullBail  int `json:"fullBail,omitempty"`
	HalfBail  int `json:"halfBail,omitempty"`
	Bounty    int `json:"bounty,omitempty"`
}

// Purpose marks a question asked for something other than the landed tile.
type Purpose struct {
	Purpose string `json:"purpose"`
	Tile    int    `json:"tile"`
}

const purposeUpgrading = "upgrading"

type UpgradeOption struct {
	Name             string `json:"name"`
	Position         int    `json:"position"`
	Collection       int    `json:"collection"`
	UpgradeName      string `json:"upgradeName"`
	UpgradePrice     int    `json:"upgradePrice"`
	CurrentRentValue int    `json:"currentRentValue"`
	NewRentValue     int    `json:"newRentValue"`
	NewSellValue     int    `json:"newSellValue"`
}

type SellOption struct {
	Name       string   `json:"name"`
	Kind       TileKind `json:"type"`
	Position   int      `json:"position"`
	Collection int      `json:"collection"`
	SellValue  int      `json:"sellValue"`
}

type TradeOffer struct {
	To    string `json:"to"`
	Tile  int    `json:"tile"`
	Price int    `json:"price"`
}

type AuctionState struct {
	Auctioneer string      `json:"auctioneer"`
	Bounty     int         `json:"bounty"`
	Offer      *TradeOffer `json:"offer,omitempty"`
}

// TurnState is the current phase plus the payload that phase needs.
// Only the fields belonging to Activity are set.
type TurnState struct {
	Activity  Activity `json:"activity"`
	TimerMs   int64    `json:"timer"`
	ShowTimer bool     `json:"showTimer"`

	Options     *StartOptions   `json:"options,omitempty"`
	Move        *Move           `json:"move,omitempty"`
	Action      Action          `json:"action,omitempty"`
	ActionData  *ActionData     `json:"actionData,omitempty"`
	Chance      *ChanceResult   `json:"chance,omitempty"`
	Question    *QuestionPrompt `json:"questionPrompt,omitempty"`
	Purpose     *Purpose        `json:"otherPurpose,omitempty"`
	UpgradeData []UpgradeOption `json:"upgradeData,omitempty"`
	SellData    []SellOption    `json:"sellData,omitempty"`
	Auction     *AuctionState   `json:"auction,omitempty"`

	question QuestionRef
}

// awaitingReaction reports whether the acting prompt expects a reaction.
func (ts TurnState) awaitingReaction() bool {
	if ts.Activity != ActivityActing {
		return false
	}

	switch ts.Action {
	case ActionBuyProperty, ActionBuyUtility, ActionJail, ActionAuction:
		return true
	}

	return false
}

// GameState is everything players see about a running game.
type GameState struct {
	PlayerOrder []string               `json:"playerOrder"`
	Turn        int                    `json:"turn"`
	TurnState   TurnState              `json:"turnState"`
	Players     map[string]*GamePlayer `json:"players"`
	Board       []Tile                 `json:"board"`
	Log         []string               `json:"log"`
}

func (s *GameState) current() string {
	return s.PlayerOrder[s.Turn]
}
