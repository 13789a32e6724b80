package deck

import (
	"fmt"
	"strconv"
)

// Rank represents the face value of a Kabo card
type Rank int

const (
	Zero Rank = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Eleven
	Twelve
	Thirteen
)

const (
	MinRank = Zero
	MaxRank = Thirteen
)

func (r Rank) String() string {
	return strconv.Itoa(int(r))
}

// Valid reports whether the rank exists in a Kabo deck
func (r Rank) Valid() bool {
	return r >= MinRank && r <= MaxRank
}

// Card represents a playing card. Kabo cards have no suit.
type Card struct {
	Rank Rank `json:"rank"`
}

// NewCard constructs a card. It panics if the rank is out of range.
func NewCard(rank Rank) Card {
	if !rank.Valid() {
		panic(fmt.Sprintf("%d is not a valid card", rank))
	}
	return Card{Rank: rank}
}

func (c Card) String() string {
	return c.Rank.String()
}
