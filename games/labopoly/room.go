/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var (
	ErrGameInProgress   = errors.New("a game is already in progress")
	ErrNoGame           = errors.New("no game in progress")
	ErrInvalidName      = errors.New("invalid name")
	ErrNameTaken        = errors.New("name already taken")
	ErrUnknownCharacter = errors.New("unknown character")
	ErrCharacterTaken   = errors.New("character already taken")
	ErrAlreadyInRoom    = errors.New("already in another room")
	ErrUnknownMessage   = errors.New("unknown message type")
	ErrBadPayload       = errors.New("malformed payload")
)

const maxNameLength = 24

type Character string

const (
	Alfred Character = "Alfred"
	Benny  Character = "Benny"
	Hal    Character = "Hal"
	Nat    Character = "Nat"
)

var characters = []Character{Alfred, Benny, Hal, Nat}

// Player is a connected participant. It lives from join to disconnect.
type Player struct {
	Name      string    `json:"name"`
	Character Character `json:"character,omitempty"`
	Ready     bool      `json:"ready"`
}

// Lobby is the room snapshot sent to a joining player.
type Lobby struct {
	Players    map[string]*Player   `json:"players"`
	Characters map[Character]string `json:"characters"`
	Active     []string             `json:"activePlayersList"`
	State      *GameState           `json:"state"`
	Starting   bool                 `json:"starting"`
}

type intent struct {
	client *Client
	msg    Message
}

// Room owns one lobby and at most one game. All of its state is touched
// only by run.
type Room struct {
	code     string
	registry *Registry
	opts     Options
	logf     func(format string, args ...any)

	clients    map[*Client]bool
	players    map[string]*Player
	characters map[Character]string
	active     []string
	game       *Game
	ready      timerSlot
	post       func(func())

	register chan *Client
	unreg    chan *Client
	intents  chan intent
	timers   chan func()
	quit     chan struct{}
	done     chan struct{}

	closeOnce sync.Once

	mu         sync.RWMutex
	createdAt  time.Time
	lastActive time.Time
}

func newRoom(code string, registry *Registry, opts Options) *Room {
	now := time.Now()

	r := &Room{
		code:       code,
		registry:   registry,
		opts:       opts,
		clients:    make(map[*Client]bool),
		players:    make(map[string]*Player),
		characters: make(map[Character]string),
		active:     []string{},
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		intents:    make(chan intent),
		timers:     make(chan func()),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}

	r.logf = func(format string, args ...any) {
		opts.Logf("GAMES: [%s] "+format, append([]any{code}, args...)...)
	}
	r.post = r.enqueue
	r.ready = timerSlot{sched: opts.Scheduler, post: r.post}

	return r
}

func (r *Room) Code() string {
	return r.code
}

func (r *Room) run() {
	defer close(r.done)

	for {
		select {
		case c := <-r.register:
			r.touch()
			r.join(c)

		case c := <-r.unreg:
			r.touch()
			r.leave(c)

			if len(r.players) == 0 {
				r.logf("Closing empty room")
				r.registry.remove(r.code, r)
				r.shutdown()

				return
			}

		case in := <-r.intents:
			r.touch()
			r.handle(in)

		case fn := <-r.timers:
			fn()

		case <-r.quit:
			r.logf("Closing idle room")
			r.shutdown()

			return
		}
	}
}

// enter hands a client to the room loop. It reports false once the room is closed.
func (r *Room) enter(c *Client) bool {
	select {
	case r.register <- c:
		return true
	case <-r.done:
		return false
	}
}

func (r *Room) exit(c *Client) {
	select {
	case r.unreg <- c:
	case <-r.done:
	}
}

func (r *Room) submit(c *Client, msg Message) bool {
	select {
	case r.intents <- intent{client: c, msg: msg}:
		return true
	case <-r.done:
		return false
	}
}

// enqueue runs fn on the room loop.
func (r *Room) enqueue(fn func()) {
	select {
	case r.timers <- fn:
	case <-r.done:
	}
}

func (r *Room) close() {
	r.closeOnce.Do(func() {
		close(r.quit)
	})
}

func (r *Room) shutdown() {
	r.ready.cancel()

	if r.game != nil {
		r.game.Stop()
	}

	for c := range r.clients {
		r.drop(c)
	}
}

func (r *Room) touch() {
	r.mu.Lock()
	r.lastActive = time.Now()
	r.mu.Unlock()
}

func (r *Room) idleSince(cutoff time.Time) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastActive.Before(cutoff)
}

func (r *Room) drop(c *Client) {
	if _, ok := r.clients[c]; ok {
		delete(r.clients, c)
		close(c.send)
	}
}

// deliver queues data for c, dropping it if its queue is full. Clients
// already dropped are skipped; their send channel is closed.
func (r *Room) deliver(c *Client, data []byte) {
	if !r.clients[c] {
		return
	}

	select {
	case c.send <- data:
	default:
		r.drop(c)
	}
}

func (r *Room) reply(c *Client, typ string, payload any) {
	data, err := encode(typ, payload)
	if err != nil {
		r.logf("encode %s: %v", typ, err)

		return
	}

	r.deliver(c, data)
}

// broadcast sends to every client except skip, which may be nil.
func (r *Room) broadcast(typ string, payload any, skip *Client) {
	data, err := encode(typ, payload)
	if err != nil {
		r.logf("encode %s: %v", typ, err)

		return
	}

	for c := range r.clients {
		if c != skip {
			r.deliver(c, data)
		}
	}
}

func (r *Room) lobby() Lobby {
	var state *GameState
	if r.game != nil {
		state = &r.game.State
	}

	return Lobby{
		Players:    r.players,
		Characters: r.characters,
		Active:     r.active,
		State:      state,
		Starting:   r.ready.pending(),
	}
}

func (r *Room) nameTaken(name string) bool {
	for _, p := range r.players {
		if p.Name == name {
			return true
		}
	}

	return false
}

func (r *Room) join(c *Client) {
	r.clients[c] = true

	name := playerName(r.opts.Rand, r.nameTaken)
	r.players[c.id] = &Player{Name: name}

	r.logf("Player %q joined as %s", name, c.id)

	r.reply(c, msgJoinedRoom, joinedRoomPayload{PlayerID: c.id, Room: r.lobby()})
	r.broadcast(msgNewPlayer, playerPayload{PlayerID: c.id, Name: name}, c)
}

// leave removes a disconnected player. Mid-game their seat stays in the
// turn order and their turns run out on the phase timers.
func (r *Room) leave(c *Client) {
	r.drop(c)

	p, ok := r.players[c.id]
	if !ok {
		return
	}

	if r.game == nil {
		r.release(c.id, p)
	}

	delete(r.players, c.id)

	r.logf("Player %q left", p.Name)

	r.broadcast(msgRemovePlayer, playerPayload{PlayerID: c.id}, nil)
	r.rosterChanged()
}

func (r *Room) handle(in intent) {
	// A dropped client stays a player until its read pump exits.
	if !r.clients[in.client] {
		r.logf("Ignored %s from dropped client %s", in.msg.Type, in.client.id)

		return
	}

	if err := r.dispatch(in.client.id, in.msg); err != nil {
		r.logf("Rejected %s from %s: %v", in.msg.Type, in.client.id, err)
		r.reply(in.client, msgRejected, rejectedPayload{Type: in.msg.Type, Reason: err.Error()})
	}
}

func decode(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	return nil
}

func (r *Room) dispatch(id string, msg Message) error {
	if _, ok := r.players[id]; !ok {
		return ErrNotInGame
	}

	switch msg.Type {
	case msgJoinRoom:
		var args joinRoomArgs
		if err := decode(msg.Payload, &args); err != nil {
			return err
		}

		if args.RoomID != r.code {
			return ErrAlreadyInRoom
		}

		return nil
	case msgChangeName:
		var args changeNameArgs
		if err := decode(msg.Payload, &args); err != nil {
			return err
		}

		return r.changeName(id, args.Name)
	case msgChooseCharacter:
		var args chooseCharacterArgs
		if err := decode(msg.Payload, &args); err != nil {
			return err
		}

		return r.chooseCharacter(id, args.Character)
	case msgChooseSpectate:
		return r.chooseSpectate(id)
	case msgToggleReady:
		return r.toggleReady(id)
	}

	return r.dispatchGame(id, msg)
}

func (r *Room) dispatchGame(id string, msg Message) error {
	g := r.game
	if g == nil {
		return ErrNoGame
	}

	switch msg.Type {
	case msgRollDice:
		return g.RollDice(id)
	case msgReaction:
		var reaction string
		if err := decode(msg.Payload, &reaction); err != nil {
			return err
		}

		return g.React(id, reaction)
	case msgAnswerQuestion:
		var answer string
		if err := decode(msg.Payload, &answer); err != nil {
			return err
		}

		return g.Answer(id, answer)
	case msgPayBail:
		return g.PayBail(id)
	case msgStayInJail:
		return g.StayInJail(id)
	case msgRequestUpgrade:
		return g.RequestUpgrade(id)
	case msgUpgradeProperty:
		var args tileArgs
		if err := decode(msg.Payload, &args); err != nil {
			return err
		}

		return g.Upgrade(id, args.Tile)
	case msgRequestSell:
		return g.RequestSell(id)
	case msgSellTile:
		var args tileArgs
		if err := decode(msg.Payload, &args); err != nil {
			return err
		}

		return g.Sell(id, args.Tile)
	case msgCancel:
		return g.Cancel(id)
	case msgOfferTrade:
		var args tradeArgs
		if err := decode(msg.Payload, &args); err != nil {
			return err
		}

		return g.OfferTrade(id, args.To, args.Tile, args.Price)
	case msgAcceptTrade:
		return g.AcceptTrade(id)
	case msgDeclineTrade:
		return g.DeclineTrade(id)
	}

	return ErrUnknownMessage
}

func (r *Room) changeName(id, name string) error {
	if r.game != nil {
		return ErrGameInProgress
	}

	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return ErrInvalidName
	}

	p := r.players[id]
	if p.Name == name {
		return nil
	}

	if r.nameTaken(name) {
		return ErrNameTaken
	}

	p.Name = name

	r.broadcast(msgChangedName, playerPayload{PlayerID: id, Name: name}, nil)

	return nil
}

// release frees the player's character and removes them from the active list.
func (r *Room) release(id string, p *Player) {
	if p.Character == "" {
		return
	}

	delete(r.characters, p.Character)
	r.active = slices.DeleteFunc(r.active, func(a string) bool { return a == id })
	p.Character = ""
}

func (r *Room) chooseCharacter(id string, character Character) error {
	if r.game != nil {
		return ErrGameInProgress
	}

	if !slices.Contains(characters, character) {
		return ErrUnknownCharacter
	}

	if owner, taken := r.characters[character]; taken {
		if owner == id {
			return nil
		}

		return ErrCharacterTaken
	}

	p := r.players[id]
	r.release(id, p)

	p.Character = character
	r.characters[character] = id
	r.active = append(r.active, id)

	r.broadcast(msgChoseCharacter, playerPayload{PlayerID: id, Character: character}, nil)
	r.rosterChanged()

	return nil
}

func (r *Room) chooseSpectate(id string) error {
	if r.game != nil {
		return ErrGameInProgress
	}

	r.release(id, r.players[id])

	r.broadcast(msgChoseSpectate, playerPayload{PlayerID: id}, nil)
	r.rosterChanged()

	return nil
}

func (r *Room) toggleReady(id string) error {
	if r.game != nil {
		return ErrGameInProgress
	}

	p := r.players[id]
	p.Ready = !p.Ready

	ready := p.Ready
	r.broadcast(msgToggledReady, playerPayload{PlayerID: id, Ready: &ready}, nil)
	r.checkReady()

	return nil
}

func (r *Room) allReady() bool {
	if len(r.active) == 0 {
		return false
	}

	for _, id := range r.active {
		if p, ok := r.players[id]; !ok || !p.Ready {
			return false
		}
	}

	return true
}

// rosterChanged restarts a pending countdown, since the players it would
// start the game with have changed.
func (r *Room) rosterChanged() {
	if r.game == nil && r.ready.pending() {
		r.ready.cancel()
		r.broadcast(msgCancelledStartGame, nil, nil)
	}

	r.checkReady()
}

// checkReady arms the start countdown once every player holding a character
// is ready, and cancels it as soon as that stops being true.
func (r *Room) checkReady() {
	if r.game != nil {
		return
	}

	ready := r.allReady()

	switch {
	case ready && !r.ready.pending():
		r.ready.arm(r.opts.ReadyDelay, r.startGame)
		r.broadcast(msgAboutToStartGame, startPayload{DelayMs: r.opts.ReadyDelay.Milliseconds()}, nil)
	case !ready && r.ready.pending():
		r.ready.cancel()
		r.broadcast(msgCancelledStartGame, nil, nil)
	}
}

func (r *Room) startGame() {
	if r.game != nil || !r.allReady() {
		return
	}

	order := slices.Clone(r.active)
	shuffle(r.opts.Rand, order)

	names := make(map[string]string, len(order))
	for _, id := range order {
		names[id] = r.players[id].Name
	}

	opts := r.opts
	opts.Logf = r.logf

	r.game = newGame(order, names, opts, r.post, func(s *GameState) {
		r.broadcast(msgUpdateGameState, s, nil)
	})

	r.logf("Starting game with %d players", len(order))

	r.game.Start()
}
