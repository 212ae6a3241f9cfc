/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"fmt"
	"slices"
	"time"
)

// Game runs the turn state machine for one room. It is not safe for
// concurrent use: every method, and every timer callback handed to post,
// must run on the owning room's goroutine.
type Game struct {
	State GameState

	names  map[string]string
	bank   *QuestionBank
	decks  decks
	timers Timers
	rng    Rand
	slot   timerSlot
	emit   func(*GameState)
	logf   func(format string, args ...any)
}

func newGame(order []string, names map[string]string, opts Options, post func(func()), emit func(*GameState)) *Game {
	players := make(map[string]*GamePlayer, len(order))
	for _, id := range order {
		players[id] = newGamePlayer()
	}

	return &Game{
		State: GameState{
			PlayerOrder: order,
			Players:     players,
			Board:       NewBoard(),
			Log:         []string{},
		},
		names:  names,
		bank:   opts.Questions,
		decks:  newDecks(opts.Questions, opts.Rand),
		timers: opts.Timers,
		rng:    opts.Rand,
		slot:   timerSlot{sched: opts.Scheduler, post: post},
		emit:   emit,
		logf:   opts.Logf,
	}
}

// Start enters the first player's turn.
func (g *Game) Start() {
	g.record("The game has started")
	g.startTurn(false)
}

// Stop cancels any pending phase timer.
func (g *Game) Stop() {
	g.slot.cancel()
}

func (g *Game) player() *GamePlayer {
	return g.State.Players[g.State.current()]
}

func (g *Game) name(id string) string {
	if name, ok := g.names[id]; ok {
		return name
	}

	return id
}

func (g *Game) record(format string, args ...any) {
	entry := fmt.Sprintf(format, args...)
	g.State.Log = append(g.State.Log, entry)
	g.logf("%s", entry)
}

// enter replaces the turn state, cancelling the previous phase's timer and
// arming next after d when next is non-nil.
func (g *Game) enter(ts TurnState, d time.Duration, next func()) {
	g.slot.cancel()

	ts.TimerMs = d.Milliseconds()
	g.State.TurnState = ts

	if next != nil {
		g.slot.arm(d, next)
	}

	g.emit(&g.State)
}

func (g *Game) expect(playerID string, activities ...Activity) error {
	if _, ok := g.State.Players[playerID]; !ok {
		return ErrNotInGame
	}

	if g.State.current() != playerID {
		return ErrNotYourTurn
	}

	if !slices.Contains(activities, g.State.TurnState.Activity) {
		return ErrWrongPhase
	}

	return nil
}

func (g *Game) startTurn(advance bool) {
	if advance {
		g.State.Turn = (g.State.Turn + 1) % len(g.State.PlayerOrder)
	}

	p := g.player()

	g.enter(TurnState{
		Activity:  ActivityStartingTurn,
		ShowTimer: true,
		Options: &StartOptions{
			Roll:    p.Jailed == 0,
			Bail:    p.Jailed > 0,
			Upgrade: len(g.upgradeOptions(p)) > 0,
			Sell:    p.owns(),
		},
	}, g.timers.StartTurn, g.startTurnTimedOut)
}

func (g *Game) startTurnTimedOut() {
	if g.player().Jailed > 0 {
		g.serveJail()

		return
	}

	g.record("%s ran out of time and lost their turn", g.name(g.State.current()))
	g.startTurn(true)
}

func (g *Game) RollDice(playerID string) error {
	if err := g.expect(playerID, ActivityStartingTurn); err != nil {
		return err
	}

	if g.player().Jailed > 0 {
		return ErrJailed
	}

	g.enter(TurnState{Activity: ActivityRollingDice}, g.timers.RollingDice, g.move)

	return nil
}

func (g *Game) move() {
	p := g.player()

	rolled := g.rng.IntN(6) + 1
	newTile := (p.Position + rolled) % len(g.State.Board)
	mv := &Move{Rolled: rolled, NewTile: newTile, PassedGo: newTile < rolled}

	g.record("%s rolled a %d", g.name(g.State.current()), rolled)

	g.enter(TurnState{Activity: ActivityMoving, Move: mv}, g.timers.Moving, func() {
		g.commitMove(mv)
	})
}

func (g *Game) commitMove(mv *Move) {
	p := g.player()
	p.Position = mv.NewTile

	if mv.PassedGo {
		p.Currency += PassGoBonus
		g.record("%s passed GO and collected %d", g.name(g.State.current()), PassGoBonus)
	}

	g.act()
}

func (g *Game) act() {
	id := g.State.current()
	p := g.player()
	t := g.State.Board[p.Position]

	switch {
	case t.ownable():
		if t.owned() {
			if t.OwnerID != id {
				g.payRent(id, t)
			}
			g.nothing()

			return
		}

		data := &ActionData{BuyPrice: PropertyBuyPrice(t), RentValue: PropertyRentValue(t), SellValue: PropertySellValue(t)}
		if t.Kind == KindUtility {
			data = &ActionData{BuyPrice: UtilityBuyPrice(), RentValue: UtilityRentValue(1), SellValue: UtilitySellValue()}
		}

		if p.Currency < data.BuyPrice {
			g.nothing()

			return
		}

		g.prompt(t.Action, data)
	case t.Kind == KindJail:
		g.prompt(ActionJail, &ActionData{FullBail: FullBail, HalfBail: HalfBail})
	case t.Kind == KindAuction:
		if len(g.decks.auction) == 0 {
			g.nothing()

			return
		}

		g.prompt(ActionAuction, &ActionData{Bounty: AuctionBounty})
	case t.Kind == KindChance:
		g.enter(TurnState{Activity: ActivityActing, Action: ActionChance}, g.timers.Nothing, g.spin)
	case t.Kind == KindGo:
		g.nothing()
	default:
		g.logf("unknown tile kind %q at position %d, skipping to next turn", t.Kind, p.Position)
		g.startTurn(true)
	}
}

func (g *Game) prompt(action Action, data *ActionData) {
	g.enter(TurnState{
		Activity:   ActivityActing,
		ShowTimer:  true,
		Action:     action,
		ActionData: data,
	}, g.timers.Acting, g.actingTimedOut)
}

func (g *Game) nothing() {
	g.enter(TurnState{Activity: ActivityActing, Action: ActionNothing}, g.timers.Nothing, func() {
		g.startTurn(true)
	})
}

func (g *Game) payRent(id string, t Tile) {
	owner, ok := g.State.Players[t.OwnerID]
	if !ok {
		return
	}

	rent := PropertyRentValue(t)
	if t.Kind == KindUtility {
		rent = UtilityRentValue(len(owner.Utilities))
	}

	g.player().Currency -= rent
	owner.Currency += rent

	g.record("%s paid %d rent to %s for %s", g.name(id), rent, g.name(t.OwnerID), t.Name)
}

// React answers the prompt presented on the landed tile.
func (g *Game) React(playerID, reaction string) error {
	if err := g.expect(playerID, ActivityActing); err != nil {
		return err
	}

	if !g.State.TurnState.awaitingReaction() {
		return ErrWrongPhase
	}

	return g.react(reaction)
}

func (g *Game) react(reaction string) error {
	name := g.name(g.State.current())
	p := g.player()
	t := g.State.Board[p.Position]

	switch g.State.TurnState.Action {
	case ActionBuyProperty, ActionBuyUtility:
		switch reaction {
		case ReactionAccept:
			category := CategoryProperty
			if t.Kind == KindUtility {
				category = CategoryUtility
			}
			g.ask(category, t.Collection, nil)
		case ReactionDecline:
			g.record("%s declined to buy %s", name, t.Name)
			g.startTurn(true)
		default:
			return ErrInvalidReaction
		}
	case ActionJail:
		switch reaction {
		case ReactionFull:
			p.Currency -= FullBail
			g.record("%s paid %d to stay out of jail", name, FullBail)
		case ReactionHalf:
			p.Currency -= HalfBail
			p.Jailed += HalfJailTerm
			g.record("%s paid %d and will spend %d turns in jail", name, HalfBail, HalfJailTerm)
		case ReactionStay:
			p.Jailed += FullJailTerm
			g.record("%s will spend %d turns in jail", name, FullJailTerm)
		default:
			return ErrInvalidReaction
		}
		g.startTurn(true)
	case ActionAuction:
		switch reaction {
		case ReactionAccept:
			g.ask(CategoryAuction, 0, nil)
		case ReactionDecline:
			g.record("%s declined to hold an auction", name)
			g.startTurn(true)
		default:
			return ErrInvalidReaction
		}
	default:
		return ErrInvalidReaction
	}

	return nil
}

// actingTimedOut declines a purchase or auction, and keeps a jailed player in.
func (g *Game) actingTimedOut() {
	reaction := ReactionDecline
	if g.State.TurnState.Action == ActionJail {
		reaction = ReactionStay
	}

	g.record("%s ran out of time", g.name(g.State.current()))

	if err := g.react(reaction); err != nil {
		g.logf("timeout reaction %q: %v", reaction, err)
		g.startTurn(true)
	}
}

func (g *Game) spin() {
	id := g.State.current()
	p := g.player()

	result := &ChanceResult{Outcome: chanceSpinner.Spin(g.rng.Float64())}

	switch result.Outcome {
	case ChanceCreativity:
		p.Currency += CreativityBonus
		result.Amount = CreativityBonus
	case ChanceActivity:
		p.Currency -= ActivityPenalty
		result.Amount = -ActivityPenalty
	case ChanceService:
		for _, other := range g.State.PlayerOrder {
			if other == id {
				continue
			}

			g.State.Players[other].Currency += ServiceFee
			p.Currency -= ServiceFee
			result.Amount -= ServiceFee
		}
	}

	g.record("%s spun %s (%+d)", g.name(id), result.Outcome, result.Amount)

	g.enter(TurnState{Activity: ActivitySpinningChance, Chance: result}, g.timers.Chance, func() {
		g.startTurn(true)
	})
}

func (g *Game) ask(category Category, collection int, purpose *Purpose) {
	ref, ok := g.decks.draw(category, collection)
	if !ok {
		g.record("There are no %s questions to ask", category)
		g.startTurn(purpose == nil)

		return
	}

	q, err := g.bank.Lookup(ref)
	if err != nil {
		g.logf("draw %s question: %v", category, err)
		g.startTurn(purpose == nil)

		return
	}

	prompt := q.Prompt(g.rng)

	g.enter(TurnState{
		Activity:  ActivityAnswering,
		ShowTimer: true,
		Question:  &prompt,
		Purpose:   purpose,
		question:  ref,
	}, g.timers.answering(ref.Collection), g.answerTimedOut)
}

func (g *Game) Answer(playerID, answer string) error {
	if err := g.expect(playerID, ActivityAnswering); err != nil {
		return err
	}

	q, err := g.bank.Lookup(g.State.TurnState.question)
	if err != nil {
		return err
	}

	g.resolve(q.Check(answer))

	return nil
}

func (g *Game) answerTimedOut() {
	g.record("%s ran out of time to answer", g.name(g.State.current()))
	g.resolve(false)
}

func (g *Game) resolve(correct bool) {
	ts := g.State.TurnState
	if ts.Purpose != nil && ts.Purpose.Purpose == purposeUpgrading {
		g.resolveUpgrade(correct, ts.Purpose.Tile)

		return
	}

	id := g.State.current()
	name := g.name(id)

	if !correct {
		g.record("%s answered incorrectly", name)
		g.startTurn(true)

		return
	}

	if ts.question.Category == CategoryAuction {
		g.record("%s answered correctly and may hold an auction", name)
		g.startAuction()

		return
	}

	p := g.player()
	t := &g.State.Board[p.Position]

	price := PropertyBuyPrice(*t)
	if t.Kind == KindUtility {
		price = UtilityBuyPrice()
	}

	p.Currency -= price
	p.take(*t, p.Position)
	t.OwnerID = id

	g.record("%s answered correctly and bought %s for %d", name, t.Name, price)
	g.finish(true)
}

func (g *Game) finish(advance bool) {
	g.enter(TurnState{Activity: ActivityFinishingTurn}, g.timers.Nothing, func() {
		g.startTurn(advance)
	})
}

func (g *Game) upgradeOptions(p *GamePlayer) []UpgradeOption {
	var opts []UpgradeOption

	for _, i := range Sets(g.State.Board, p.Properties) {
		t := g.State.Board[i]
		if t.Upgrade >= MaxUpgrade {
			continue
		}

		opts = append(opts, UpgradeOption{
			Name:             t.Name,
			Position:         i,
			Collection:       t.Collection,
			UpgradeName:      UpgradeNames[t.Upgrade+1],
			UpgradePrice:     PropertyUpgradePrice(t),
			CurrentRentValue: PropertyRentValue(t),
			NewRentValue:     PropertyUpgradedRentValue(t),
			NewSellValue:     PropertyUpgradedSellValue(t),
		})
	}

	return opts
}

func (g *Game) sellOptions(p *GamePlayer) []SellOption {
	owned := slices.Concat(p.Properties, p.Utilities)
	slices.Sort(owned)

	opts := make([]SellOption, 0, len(owned))
	for _, i := range owned {
		t := g.State.Board[i]
		opts = append(opts, SellOption{
			Name:       t.Name,
			Kind:       t.Kind,
			Position:   i,
			Collection: t.Collection,
			SellValue:  sellValue(t),
		})
	}

	return opts
}

// RequestUpgrade lists the properties the current player may upgrade.
func (g *Game) RequestUpgrade(playerID string) error {
	if err := g.expect(playerID, ActivityStartingTurn); err != nil {
		return err
	}

	opts := g.upgradeOptions(g.player())
	if len(opts) == 0 {
		return ErrNothingToUpgrade
	}

	g.enter(TurnState{
		Activity:    ActivityUpgrading,
		ShowTimer:   true,
		UpgradeData: opts,
	}, g.timers.Acting, g.sideTimedOut)

	return nil
}

// Upgrade asks a question from the tile's collection; a correct answer
// builds the next upgrade.
func (g *Game) Upgrade(playerID string, tile int) error {
	if err := g.expect(playerID, ActivityUpgrading); err != nil {
		return err
	}

	i := slices.IndexFunc(g.State.TurnState.UpgradeData, func(o UpgradeOption) bool {
		return o.Position == tile
	})
	if i < 0 {
		return ErrInvalidTile
	}

	opt := g.State.TurnState.UpgradeData[i]
	if g.player().Currency < opt.UpgradePrice {
		return ErrInsufficientFunds
	}

	g.ask(CategoryProperty, opt.Collection, &Purpose{Purpose: purposeUpgrading, Tile: tile})

	return nil
}

func (g *Game) resolveUpgrade(correct bool, index int) {
	id := g.State.current()
	name := g.name(id)
	p := g.player()
	t := &g.State.Board[index]

	if !correct {
		g.record("%s answered incorrectly and could not upgrade %s", name, t.Name)
		g.startTurn(false)

		return
	}

	price := PropertyUpgradePrice(*t)
	if t.OwnerID != id || price == 0 {
		g.startTurn(false)

		return
	}

	p.Currency -= price
	t.Upgrade++

	g.record("%s built a %s on %s for %d", name, UpgradeNames[t.Upgrade], t.Name, price)
	g.finish(false)
}

// RequestSell lists the tiles the current player may sell.
func (g *Game) RequestSell(playerID string) error {
	if err := g.expect(playerID, ActivityStartingTurn); err != nil {
		return err
	}

	p := g.player()
	if !p.owns() {
		return ErrNothingToSell
	}

	g.enter(TurnState{
		Activity:  ActivitySelling,
		ShowTimer: true,
		SellData:  g.sellOptions(p),
	}, g.timers.Acting, g.sideTimedOut)

	return nil
}

func (g *Game) Sell(playerID string, tile int) error {
	if err := g.expect(playerID, ActivitySelling); err != nil {
		return err
	}

	i := slices.IndexFunc(g.State.TurnState.SellData, func(o SellOption) bool {
		return o.Position == tile
	})
	if i < 0 {
		return ErrInvalidTile
	}

	opt := g.State.TurnState.SellData[i]
	p := g.player()
	t := &g.State.Board[tile]

	p.Currency += opt.SellValue
	p.give(*t, tile)
	t.OwnerID = ""
	t.Upgrade = 0

	g.record("%s sold %s for %d", g.name(playerID), t.Name, opt.SellValue)
	g.startTurn(false)

	return nil
}

// Cancel leaves the upgrade or sell listing, or closes an auction early.
func (g *Game) Cancel(playerID string) error {
	if err := g.expect(playerID, ActivityUpgrading, ActivitySelling, ActivityAuctioning); err != nil {
		return err
	}

	if g.State.TurnState.Activity == ActivityAuctioning {
		g.record("%s closed the auction", g.name(playerID))
		g.startTurn(true)

		return nil
	}

	g.startTurn(false)

	return nil
}

func (g *Game) sideTimedOut() {
	g.record("%s ran out of time and lost their turn", g.name(g.State.current()))
	g.startTurn(true)
}

// PayBail frees a jailed player at the start of their turn.
func (g *Game) PayBail(playerID string) error {
	if err := g.expect(playerID, ActivityStartingTurn); err != nil {
		return err
	}

	p := g.player()
	if p.Jailed == 0 {
		return ErrNotJailed
	}

	p.Currency -= FullBail
	p.Jailed = 0

	g.record("%s paid %d bail", g.name(playerID), FullBail)
	g.startTurn(false)

	return nil
}

// StayInJail serves one jail turn.
func (g *Game) StayInJail(playerID string) error {
	if err := g.expect(playerID, ActivityStartingTurn); err != nil {
		return err
	}

	if g.player().Jailed == 0 {
		return ErrNotJailed
	}

	g.serveJail()

	return nil
}

func (g *Game) serveJail() {
	p := g.player()
	p.Jailed--

	g.record("%s stays in jail (%d turns left)", g.name(g.State.current()), p.Jailed)

	g.enter(TurnState{Activity: ActivityStayingInJail}, g.timers.Jailed, func() {
		g.startTurn(true)
	})
}

func (g *Game) startAuction() {
	g.enter(TurnState{
		Activity:  ActivityAuctioning,
		ShowTimer: true,
		Auction:   &AuctionState{Auctioneer: g.State.current(), Bounty: AuctionBounty},
	}, g.timers.Auctioning, g.auctionTimedOut)
}

func (g *Game) auctionTimedOut() {
	g.record("The auction closed without a trade")
	g.startTurn(true)
}

// OfferTrade lets the auctioneer offer one of their tiles to another player.
// A newer offer replaces the pending one.
func (g *Game) OfferTrade(playerID, to string, tile, price int) error {
	if err := g.expect(playerID, ActivityAuctioning); err != nil {
		return err
	}

	if _, ok := g.State.Players[to]; !ok || to == playerID || price < 0 {
		return ErrInvalidTrade
	}

	if tile < 0 || tile >= len(g.State.Board) || g.State.Board[tile].OwnerID != playerID {
		return ErrInvalidTile
	}

	g.State.TurnState.Auction.Offer = &TradeOffer{To: to, Tile: tile, Price: price}

	g.record("%s offered %s to %s for %d", g.name(playerID), g.State.Board[tile].Name, g.name(to), price)
	g.emit(&g.State)

	return nil
}

func (g *Game) pendingOffer(playerID string) (*TradeOffer, error) {
	if _, ok := g.State.Players[playerID]; !ok {
		return nil, ErrNotInGame
	}

	if g.State.TurnState.Activity != ActivityAuctioning {
		return nil, ErrWrongPhase
	}

	offer := g.State.TurnState.Auction.Offer
	if offer == nil || offer.To != playerID {
		return nil, ErrNoOffer
	}

	return offer, nil
}

// AcceptTrade completes the pending offer. Both parties receive the bounty.
func (g *Game) AcceptTrade(playerID string) error {
	offer, err := g.pendingOffer(playerID)
	if err != nil {
		return err
	}

	sellerID := g.State.current()
	seller := g.player()
	buyer := g.State.Players[playerID]
	t := &g.State.Board[offer.Tile]

	buyer.Currency -= offer.Price
	seller.Currency += offer.Price

	seller.give(*t, offer.Tile)
	buyer.take(*t, offer.Tile)
	t.OwnerID = playerID

	buyer.Currency += AuctionBounty
	seller.Currency += AuctionBounty

	g.record("%s bought %s from %s for %d", g.name(playerID), t.Name, g.name(sellerID), offer.Price)
	g.finish(true)

	return nil
}

func (g *Game) DeclineTrade(playerID string) error {
	if _, err := g.pendingOffer(playerID); err != nil {
		return err
	}

	g.State.TurnState.Auction.Offer = nil

	g.record("%s declined the offer", g.name(playerID))
	g.emit(&g.State)

	return nil
}
