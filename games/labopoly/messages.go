/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"encoding/json"
)

// Messages coming from clients
const (
	msgJoinRoom        = "joinRoom"
	msgChangeName      = "changeName"
	msgChooseCharacter = "chooseCharacter"
	msgChooseSpectate  = "chooseSpectate"
	msgToggleReady     = "toggleReady"
	msgRollDice        = "rollDice"
	msgReaction        = "reaction"
	msgAnswerQuestion  = "answerQuestion"
	msgPayBail         = "payBail"
	msgStayInJail      = "stayInJail"
	msgRequestUpgrade  = "requestUpgrade"
	msgUpgradeProperty = "upgradeProperty"
	msgRequestSell     = "requestSell"
	msgSellTile        = "sellTile"
	msgCancel          = "cancel"
	msgOfferTrade      = "offerTrade"
	msgAcceptTrade     = "acceptTrade"
	msgDeclineTrade    = "declineTrade"
)

// Messages sent to clients
const (
	msgErrorNoRoom        = "errorNoRoom"
	msgJoinedRoom         = "joinedRoom"
	msgNewPlayer          = "newPlayer"
	msgRemovePlayer       = "removePlayer"
	msgChangedName        = "changedName"
	msgChoseCharacter     = "choseCharacter"
	msgChoseSpectate      = "choseSpectate"
	msgToggledReady       = "toggledReady"
	msgAboutToStartGame   = "aboutToStartGame"
	msgCancelledStartGame = "cancelledStartGame"
	msgUpdateGameState    = "updateGameState"
	msgRejected           = "rejected"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type joinRoomArgs struct {
	RoomID string `json:"roomId"`
}

type changeNameArgs struct {
	Name string `json:"name"`
}

type chooseCharacterArgs struct {
	Character Character `json:"character"`
}

type tileArgs struct {
	Tile int `json:"tile"`
}

type tradeArgs struct {
	To    string `json:"to"`
	Tile  int    `json:"tile"`
	Price int    `json:"price"`
}

type joinedRoomPayload struct {
	PlayerID string `json:"playerId"`
	Room     Lobby  `json:"game"`
}

type playerPayload struct {
	PlayerID  string    `json:"playerId"`
	Name      string    `json:"name,omitempty"`
	Character Character `json:"character,omitempty"`
	Ready     *bool     `json:"ready,omitempty"`
}

type startPayload struct {
	DelayMs int64 `json:"delayMs"`
}

type rejectedPayload struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type noRoomPayload struct {
	RoomID string `json:"roomId"`
}

func encode(typ string, payload any) ([]byte, error) {
	return json.Marshal(outbound{Type: typ, Payload: payload})
}
