package game

import "github.com/minaorangina/kabo/deck"

// EventKind identifies what happened during an action
type EventKind int

const (
	DiscardShuffle EventKind = iota
	DeckDrawn
	DiscardDrawn
	Discards
	Replaced
	MultiReplaceFailed
	Seen
	Swapped
	Kabo
	EndTurn
	GameOver
)

var eventNames = map[EventKind]string{
	DiscardShuffle:     "DiscardShuffle",
	DeckDrawn:          "DeckDrawn",
	DiscardDrawn:       "DiscardDrawn",
	Discards:           "Discards",
	Replaced:           "Replaced",
	MultiReplaceFailed: "MultiReplaceFailed",
	Seen:               "Seen",
	Swapped:            "Swapped",
	Kabo:               "Kabo",
	EndTurn:            "EndTurn",
	GameOver:           "GameOver",
}

func (k EventKind) String() string {
	return eventNames[k]
}

// Event is a single consequence of an action. Which fields are set depends on Kind:
//
//	DeckDrawn, DiscardDrawn  PlayerIndex, Card
//	Discards                 PlayerIndex, Cards
//	Replaced                 PlayerIndex, CardIndex, CardIndices, Claimed for several cards
//	MultiReplaceFailed       PlayerIndex, CardIndices, Cards, Claimed
//	Seen                     PlayerIndex, CardIndex, Card
//	Swapped                  PlayerIndex, CardIndex, OtherPlayer, OtherCardIndex
//	Kabo                     PlayerIndex
//	EndTurn                  NextPlayer
type Event struct {
	Kind           EventKind
	PlayerIndex    int
	CardIndex      int
	CardIndices    []int
	Card           deck.Card
	Cards          []deck.Card
	OtherPlayer    int
	OtherCardIndex int
	NextPlayer     int
	Claimed        deck.Rank
}

// Private reports whether the event reveals a card that only the acting
// player may see.
func (e Event) Private() bool {
	return e.Kind == DeckDrawn || e.Kind == Seen
}

// Redacted returns a copy of the event that is safe to show to everyone.
func (e Event) Redacted() Event {
	if !e.Private() {
		return e
	}
	e.Card = deck.Card{}
	return e
}
