package deck

import (
	"math/rand"
)

// Size is the number of cards in a full Kabo deck
const Size = 52

// copies returns how many cards of a rank a full deck holds.
func copies(r Rank) int {
	if r == MinRank || r == MaxRank {
		return 2
	}
	return 4
}

// Deck represents a face-down stack of cards. The end of the slice is the top.
type Deck []Card

// New creates a full, ordered deck of cards
func New() Deck {
	cards := make(Deck, 0, Size)
	for r := MinRank; r <= MaxRank; r++ {
		for i := 0; i < copies(r); i++ {
			cards = append(cards, NewCard(r))
		}
	}
	return cards
}

// Shuffle shuffles the deck using rng
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw pops the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	card = (*d)[len(*d)-1]
	*d = (*d)[:len(*d)-1]
	return card, true
}

// Deal deals n number of cards from the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	dealt := make([]Card, n)
	copy(dealt, (*d)[startingIndex:])
	*d = (*d)[:startingIndex]
	return dealt
}

// Refill moves every card of the pile into the deck and shuffles it.
// The pile is left empty.
func (d *Deck) Refill(p *Pile, rng *rand.Rand) {
	*d = append(*d, (*p)...)
	*p = Pile{}
	d.Shuffle(rng)
}

// Pile represents the face-up discard pile. The end of the slice is the top.
type Pile []Card

// Push puts cards on top of the pile, the last one ending up visible
func (p *Pile) Push(cards ...Card) {
	*p = append(*p, cards...)
}

// Top returns the visible card without removing it
func (p Pile) Top() (Card, bool) {
	if len(p) == 0 {
		return Card{}, false
	}
	return p[len(p)-1], true
}

// Pop removes and returns the visible card
func (p *Pile) Pop() (Card, bool) {
	card, ok := p.Top()
	if !ok {
		return card, false
	}
	*p = (*p)[:len(*p)-1]
	return card, true
}

// RankCounts tallies the ranks across any number of card groups
func RankCounts(groups ...[]Card) map[Rank]int {
	counts := map[Rank]int{}
	for _, g := range groups {
		for _, c := range g {
			counts[c.Rank]++
		}
	}
	return counts
}

// FullRankCounts returns the rank tally of a complete deck
func FullRankCounts() map[Rank]int {
	return RankCounts(New())
}
