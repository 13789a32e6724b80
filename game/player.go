package game

import "github.com/minaorangina/kabo/deck"

// Player is a named, ordered hand of face-down cards
type Player struct {
	Name string
	Hand []deck.Card
}

func NewPlayer(name string) *Player {
	return &Player{Name: name, Hand: []deck.Card{}}
}

func (p *Player) validIndex(i int) bool {
	return i >= 0 && i < len(p.Hand)
}

func (p *Player) card(i int) (deck.Card, error) {
	if !p.validIndex(i) {
		return deck.Card{}, ErrInvalidIndex
	}
	return p.Hand[i], nil
}

func (p *Player) cards() []deck.Card {
	hand := make([]deck.Card, len(p.Hand))
	copy(hand, p.Hand)
	return hand
}
