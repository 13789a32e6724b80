package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/minaorangina/kabo/deck"
)

// PeeksPerPlayer is how many of their own cards each player may look at before play starts
const PeeksPerPlayer = 2

// PreGame is the setup phase: hands are dealt and each player peeks at
// some of their own cards.
type PreGame struct {
	deck       deck.Deck
	pile       deck.Pile
	players    []*Player
	peeks      []int
	totalPeeks int
	rng        *rand.Rand
}

// NewPreGame shuffles a full deck, starts the discard pile and deals
// cardsPerPlayer cards to every named player. It panics if the deal does
// not fit in the deck. A nil rng is seeded from the clock.
func NewPreGame(names []string, cardsPerPlayer int, rng *rand.Rand) *PreGame {
	if len(names) == 0 {
		panic("a game needs at least one player")
	}
	if cardsPerPlayer < 1 || len(names)*cardsPerPlayer > deck.Size-1 {
		panic(fmt.Sprintf("cannot deal %d cards to %d players", cardsPerPlayer, len(names)))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d := deck.New()
	d.Shuffle(rng)

	first, _ := d.Draw()
	pg := &PreGame{
		deck:    d,
		pile:    deck.Pile{first},
		players: make([]*Player, 0, len(names)),
		peeks:   make([]int, len(names)),
		rng:     rng,
	}

	for i, name := range names {
		pg.players = append(pg.players, NewPlayer(name))
		pg.peeks[i] = PeeksPerPlayer
		pg.totalPeeks += PeeksPerPlayer
	}

	// initial card deal, one round at a time
	for i := 0; i < cardsPerPlayer; i++ {
		for _, p := range pg.players {
			card, _ := pg.deck.Draw()
			p.Hand = append(p.Hand, card)
		}
	}

	return pg
}

func (pg *PreGame) player(i int) *Player {
	if i < 0 || i >= len(pg.players) {
		panic(fmt.Sprintf("player index %d out of range", i))
	}
	return pg.players[i]
}

// Peek reveals one of the player's own cards and uses up one of their peeks.
func (pg *PreGame) Peek(playerIndex, cardIndex int) (deck.Card, error) {
	p := pg.player(playerIndex)
	if pg.peeks[playerIndex] == 0 {
		return deck.Card{}, ErrNoPeeksLeft
	}

	card, err := p.card(cardIndex)
	if err != nil {
		return deck.Card{}, err
	}

	pg.peeks[playerIndex]--
	pg.totalPeeks--

	return card, nil
}

// PeeksLeft returns the player's remaining peek allowance
func (pg *PreGame) PeeksLeft(playerIndex int) int {
	pg.player(playerIndex)
	return pg.peeks[playerIndex]
}

// Ready reports whether every peek has been used, so that ToGame may be called
func (pg *PreGame) Ready() bool {
	return pg.totalPeeks == 0
}

func (pg *PreGame) NumPlayers() int {
	return len(pg.players)
}

func (pg *PreGame) DeckCount() int {
	return len(pg.deck)
}

func (pg *PreGame) DiscardTop() (deck.Card, bool) {
	return pg.pile.Top()
}

// Hand returns a copy of a player's hand. It is private to that player.
func (pg *PreGame) Hand(playerIndex int) []deck.Card {
	return pg.player(playerIndex).cards()
}

func (pg *PreGame) PlayerState(playerIndex int) PlayerState {
	p := pg.player(playerIndex)
	phase := Peeking
	if pg.peeks[playerIndex] == 0 {
		phase = Ready
	}
	return PlayerState{
		Name:      p.Name,
		HandSize:  len(p.Hand),
		Phase:     phase,
		PeeksLeft: pg.peeks[playerIndex],
	}
}

func (pg *PreGame) cardCount() int {
	n := len(pg.deck) + len(pg.pile)
	for _, p := range pg.players {
		n += len(p.Hand)
	}
	return n
}

// ToGame hands the dealt cards over to a Game. The PreGame must not be used
// afterwards. It panics if peeks remain or cards have gone missing.
func (pg *PreGame) ToGame() *Game {
	sum := 0
	for _, n := range pg.peeks {
		sum += n
	}
	if pg.totalPeeks != 0 || sum != 0 {
		panic(fmt.Sprintf("cannot start game with %d peeks remaining", pg.totalPeeks))
	}
	if n := pg.cardCount(); n != deck.Size {
		panic(fmt.Sprintf("card count is %d, want %d", n, deck.Size))
	}

	g := &Game{
		deck:    pg.deck,
		pile:    pg.pile,
		players: pg.players,
		rng:     pg.rng,
	}

	pg.deck, pg.pile, pg.players = nil, nil, nil

	return g
}
