package game

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/minaorangina/kabo/deck"
)

// minReshuffle is the smallest discard pile that can be turned into a new deck
const minReshuffle = 4

// Game is the turn engine. It is not safe for concurrent use: callers apply
// one action at a time.
type Game struct {
	deck    deck.Deck
	pile    deck.Pile
	players []*Player
	current int
	kabo    *int
	phase   Phase
	held    deck.Card
	over    bool
	rng     *rand.Rand
}

// GameOpts describes an existing game, mostly useful for setting up
// specific situations
type GameOpts struct {
	Deck          deck.Deck
	Pile          deck.Pile
	Players       []*Player
	CurrentPlayer int
	Kabo          *int
	Held          *deck.Card
	Rand          *rand.Rand
}

// ExistingGame constructs a game mid-play. Unlike PreGame.ToGame it does not
// require a full deck.
func ExistingGame(opts GameOpts) *Game {
	if len(opts.Players) == 0 {
		panic("game has no players")
	}
	if opts.CurrentPlayer < 0 || opts.CurrentPlayer >= len(opts.Players) {
		panic(fmt.Sprintf("player index %d out of range", opts.CurrentPlayer))
	}

	g := &Game{
		deck:    opts.Deck,
		pile:    opts.Pile,
		players: opts.Players,
		current: opts.CurrentPlayer,
		kabo:    opts.Kabo,
		rng:     opts.Rand,
	}
	if g.deck == nil {
		g.deck = deck.Deck{}
	}
	if g.pile == nil {
		g.pile = deck.Pile{}
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Held != nil {
		g.hold(*opts.Held)
	}

	return g
}

func (g *Game) player(i int) *Player {
	if i < 0 || i >= len(g.players) {
		panic(fmt.Sprintf("player index %d out of range", i))
	}
	return g.players[i]
}

func (g *Game) guard(want Phase) error {
	if g.over {
		return ErrGameOver
	}
	if g.phase != want {
		return ErrWrongPhase
	}
	return nil
}

func (g *Game) hold(card deck.Card) {
	g.held = card
	g.phase = HoldingCard
}

func (g *Game) release() deck.Card {
	card := g.held
	g.held = deck.Card{}
	g.phase = AwaitingDraw
	return card
}

// DeckDraw takes the top card of the deck into the current player's hand.
// An empty deck is first refilled from the discard pile.
func (g *Game) DeckDraw() ([]Event, error) {
	if err := g.guard(AwaitingDraw); err != nil {
		return nil, err
	}

	events := []Event{}
	if len(g.deck) == 0 {
		if len(g.pile) < minReshuffle {
			panic(fmt.Sprintf("deck is empty and only %d cards are on the discard pile", len(g.pile)))
		}
		g.deck.Refill(&g.pile, g.rng)
		events = append(events, Event{Kind: DiscardShuffle})
	}

	card, _ := g.deck.Draw()
	g.hold(card)

	return append(events, Event{Kind: DeckDrawn, PlayerIndex: g.current, Card: card}), nil
}

// DiscardDraw takes the visible discard into the current player's hand
func (g *Game) DiscardDraw() ([]Event, error) {
	if err := g.guard(AwaitingDraw); err != nil {
		return nil, err
	}

	card, ok := g.pile.Pop()
	if !ok {
		panic("discard pile is empty")
	}
	g.hold(card)

	return []Event{{Kind: DiscardDrawn, PlayerIndex: g.current, Card: card}}, nil
}

// AnnounceKabo ends the current player's turn. The game ends when play
// comes back round to them.
func (g *Game) AnnounceKabo() ([]Event, error) {
	if g.over {
		return nil, ErrGameOver
	}
	if g.kabo != nil {
		return nil, AlreadyKaboError{PlayerIndex: *g.kabo}
	}
	if g.phase != AwaitingDraw {
		return nil, ErrWrongPhase
	}

	caller := g.current
	g.kabo = &caller
	called := Event{Kind: Kabo, PlayerIndex: caller}

	end := g.endTurn()
	return []Event{called, end}, nil
}

// Discard puts the held card on the discard pile
func (g *Game) Discard() ([]Event, error) {
	if err := g.guard(HoldingCard); err != nil {
		return nil, err
	}

	return g.discardAndEnd(g.release()), nil
}

// Replace puts the held card face down at cardIndex in the player's hand and
// discards the card it displaces.
func (g *Game) Replace(playerIndex, cardIndex int) ([]Event, error) {
	if err := g.guard(HoldingCard); err != nil {
		return nil, err
	}

	p := g.player(playerIndex)
	old, err := p.card(cardIndex)
	if err != nil {
		return nil, err
	}

	p.Hand[cardIndex] = g.release()

	events := []Event{{
		Kind:        Replaced,
		PlayerIndex: playerIndex,
		CardIndex:   cardIndex,
		CardIndices: []int{cardIndex},
	}}

	return append(events, g.discardAndEnd(old)...), nil
}

// MultiReplace swaps several cards the player claims are all of rank
// claimed for the held card. If any named card is not of that rank, the
// named cards are shown to everyone, the hand is left alone and the held
// card is discarded instead.
func (g *Game) MultiReplace(playerIndex int, claimed deck.Rank, cardIndices []int) ([]Event, error) {
	if err := g.guard(HoldingCard); err != nil {
		return nil, err
	}
	if !claimed.Valid() {
		return nil, ErrInvalidRank
	}
	if len(cardIndices) < 2 {
		return nil, ErrTooFewIndices
	}

	p := g.player(playerIndex)
	if !indicesValid(p, cardIndices) {
		return nil, ErrInvalidIndex
	}

	indices := sortedCopy(cardIndices)
	named := make([]deck.Card, 0, len(indices))
	for _, i := range indices {
		named = append(named, p.Hand[i])
	}

	if !allOfRank(named, claimed) {
		events := []Event{{
			Kind:        MultiReplaceFailed,
			PlayerIndex: playerIndex,
			CardIndices: indices,
			Cards:       named,
			Claimed:     claimed,
		}}
		return append(events, g.discardAndEnd(g.release())...), nil
	}

	remove := intSliceToSet(indices[1:])
	hand := make([]deck.Card, 0, len(p.Hand)-len(remove))
	for i, c := range p.Hand {
		if _, ok := remove[i]; ok {
			continue
		}
		if i == indices[0] {
			c = g.release()
		}
		hand = append(hand, c)
	}
	p.Hand = hand

	events := []Event{{
		Kind:        Replaced,
		PlayerIndex: playerIndex,
		CardIndex:   indices[0],
		CardIndices: indices,
		Claimed:     claimed,
	}}

	return append(events, g.discardAndEnd(named...)...), nil
}

// Peek uses a held 7 or 8 to look at one of the player's own cards
func (g *Game) Peek(playerIndex, cardIndex int) ([]Event, error) {
	if err := g.guard(HoldingCard); err != nil {
		return nil, err
	}
	if !canPeek(g.held) {
		return nil, ErrWrongCard
	}

	card, err := g.player(playerIndex).card(cardIndex)
	if err != nil {
		return nil, err
	}

	events := []Event{{Kind: Seen, PlayerIndex: playerIndex, CardIndex: cardIndex, Card: card}}

	return append(events, g.discardAndEnd(g.release())...), nil
}

// Spy uses a held 9 or 10 to look at another player's card. The target is
// chosen by the acting player, so a bad target is an ErrInvalidIndex.
func (g *Game) Spy(otherPlayer, cardIndex int) ([]Event, error) {
	if err := g.guard(HoldingCard); err != nil {
		return nil, err
	}
	if !canSpy(g.held) {
		return nil, ErrWrongCard
	}

	other, err := g.opponent(otherPlayer)
	if err != nil {
		return nil, err
	}
	card, err := other.card(cardIndex)
	if err != nil {
		return nil, err
	}

	events := []Event{{Kind: Seen, PlayerIndex: otherPlayer, CardIndex: cardIndex, Card: card}}

	return append(events, g.discardAndEnd(g.release())...), nil
}

// Swap uses a held 11 or 12 to exchange, unseen, one of the current player's
// cards with another player's card.
func (g *Game) Swap(myCardIndex, otherPlayer, otherCardIndex int) ([]Event, error) {
	if err := g.guard(HoldingCard); err != nil {
		return nil, err
	}
	if !canSwap(g.held) {
		return nil, ErrWrongCard
	}

	me := g.player(g.current)
	other, err := g.opponent(otherPlayer)
	if err != nil {
		return nil, err
	}
	if !me.validIndex(myCardIndex) || !other.validIndex(otherCardIndex) {
		return nil, ErrInvalidIndex
	}

	mine, theirs := me.Hand[myCardIndex], other.Hand[otherCardIndex]
	me.Hand[myCardIndex], other.Hand[otherCardIndex] = theirs, mine

	events := []Event{{
		Kind:           Swapped,
		PlayerIndex:    g.current,
		CardIndex:      myCardIndex,
		OtherPlayer:    otherPlayer,
		OtherCardIndex: otherCardIndex,
	}}

	return append(events, g.discardAndEnd(g.release())...), nil
}

func (g *Game) opponent(i int) (*Player, error) {
	if i < 0 || i >= len(g.players) || i == g.current {
		return nil, ErrInvalidIndex
	}
	return g.players[i], nil
}

// discardAndEnd puts resolved cards on the pile and ends the turn.
// The discard is credited to the player whose turn is ending.
func (g *Game) discardAndEnd(cards ...deck.Card) []Event {
	actor := g.current
	g.pile.Push(cards...)
	discards := Event{Kind: Discards, PlayerIndex: actor, Cards: cards}

	end := g.endTurn()
	return []Event{discards, end}
}

// endTurn moves play on to the next player
func (g *Game) endTurn() Event {
	if g.phase == HoldingCard {
		panic("turn ended while a card is still held")
	}

	g.current = (g.current + 1) % len(g.players)

	if g.kabo != nil && *g.kabo == g.current {
		g.over = true
		return Event{Kind: GameOver}
	}

	return Event{Kind: EndTurn, NextPlayer: g.current}
}

func (g *Game) CurrentPlayer() int {
	return g.current
}

func (g *Game) NumPlayers() int {
	return len(g.players)
}

func (g *Game) Phase() Phase {
	return g.phase
}

// Held returns the card the current player has drawn, if any. It is private
// to the current player.
func (g *Game) Held() (deck.Card, bool) {
	return g.held, g.phase == HoldingCard
}

// KaboCaller returns the index of the player who called kabo
func (g *Game) KaboCaller() (int, bool) {
	if g.kabo == nil {
		return 0, false
	}
	return *g.kabo, true
}

func (g *Game) Over() bool {
	return g.over
}

func (g *Game) DeckCount() int {
	return len(g.deck)
}

func (g *Game) DiscardTop() (deck.Card, bool) {
	return g.pile.Top()
}

// Hand returns a copy of a player's hand. It is private to that player.
func (g *Game) Hand(playerIndex int) []deck.Card {
	return g.player(playerIndex).cards()
}

// PlayerState returns the public view of a player
func (g *Game) PlayerState(playerIndex int) PlayerState {
	p := g.player(playerIndex)
	s := PlayerState{
		Name:     p.Name,
		HandSize: len(p.Hand),
		Phase:    Waiting,
	}

	if caller, ok := g.KaboCaller(); ok && caller == playerIndex {
		s.CalledKabo = true
	}

	switch {
	case g.over:
		s.Phase = Finished
	case playerIndex == g.current && g.phase == HoldingCard:
		s.Phase = Holding
	case playerIndex == g.current:
		s.Phase = Drawing
	}

	return s
}

// Cards returns every card in the game: deck, discard pile, hands and the
// held card.
func (g *Game) Cards() []deck.Card {
	cards := []deck.Card{}
	cards = append(cards, g.deck...)
	cards = append(cards, g.pile...)
	for _, p := range g.players {
		cards = append(cards, p.Hand...)
	}
	if held, ok := g.Held(); ok {
		cards = append(cards, held)
	}
	return cards
}

func indicesValid(p *Player, indices []int) bool {
	seen := map[int]struct{}{}
	for _, i := range indices {
		if !p.validIndex(i) {
			return false
		}
		if _, ok := seen[i]; ok {
			return false
		}
		seen[i] = struct{}{}
	}
	return true
}

func sortedCopy(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	sort.Ints(out)
	return out
}
