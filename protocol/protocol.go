package protocol

import (
	"github.com/minaorangina/kabo/deck"
	"github.com/minaorangina/kabo/game"
)

type PlayerInfo struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// InboundMessage is a message from Player to GameEngine
type InboundMessage struct {
	PlayerID string `json:"playerID"`
	Command  Cmd    `json:"command"`
	Decision []int  `json:"decision"`
}

// OutboundMessage is a message from GameEngine to Player
type OutboundMessage struct {
	PlayerID       string             `json:"playerID"`
	Command        Cmd                `json:"command"`
	Message        string             `json:"message,omitempty"`
	PlayerIndex    int                `json:"playerIndex"`
	CardIndex      int                `json:"cardIndex"`
	CardIndices    []int              `json:"cardIndices,omitempty"`
	Card           *deck.Card         `json:"card,omitempty"`
	Cards          []deck.Card        `json:"cards,omitempty"`
	Claimed        *deck.Rank         `json:"claimed,omitempty"`
	OtherPlayer    int                `json:"otherPlayer"`
	OtherCardIndex int                `json:"otherCardIndex"`
	NextPlayer     int                `json:"nextPlayer"`
	DiscardTop     *deck.Card         `json:"discardTop,omitempty"`
	DeckCount      int                `json:"deckCount"`
	Joiner         PlayerInfo         `json:"joiner,omitempty"`
	Players        []PlayerInfo       `json:"players,omitempty"`
	States         []game.PlayerState `json:"states,omitempty"`
	Error          string             `json:"error,omitempty"`
}

type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Start
	HasStarted
	Error
	// setup
	Peek
	GameStarted
	// turn actions, sent by the current player
	DeckDraw
	DiscardDraw
	Kabo
	Discard
	Replace
	MultiReplace
	PeekCard
	Spy
	Swap
	// any time
	AskState
	StateIs
	// game events
	DiscardShuffle
	DeckDrawn
	DiscardDrawn
	Discards
	Replaced
	MultiReplaceFailed
	Seen
	Swapped
	KaboCalled
	EndTurn
	GameOver
)

var CmdNames = map[Cmd]string{
	Null:               "Null",
	NewJoiner:          "NewJoiner",
	Start:              "Start",
	HasStarted:         "HasStarted",
	Error:              "Error",
	Peek:               "Peek",
	GameStarted:        "GameStarted",
	DeckDraw:           "DeckDraw",
	DiscardDraw:        "DiscardDraw",
	Kabo:               "Kabo",
	Discard:            "Discard",
	Replace:            "Replace",
	MultiReplace:       "MultiReplace",
	PeekCard:           "PeekCard",
	Spy:                "Spy",
	Swap:               "Swap",
	AskState:           "AskState",
	StateIs:            "StateIs",
	DiscardShuffle:     "DiscardShuffle",
	DeckDrawn:          "DeckDrawn",
	DiscardDrawn:       "DiscardDrawn",
	Discards:           "Discards",
	Replaced:           "Replaced",
	MultiReplaceFailed: "MultiReplaceFailed",
	Seen:               "Seen",
	Swapped:            "Swapped",
	KaboCalled:         "KaboCalled",
	EndTurn:            "EndTurn",
	GameOver:           "GameOver",
}

var NameToCmd = func() map[string]Cmd {
	m := map[string]Cmd{}
	for cmd, name := range CmdNames {
		m[name] = cmd
	}
	return m
}()

func (c Cmd) String() string {
	return CmdNames[c]
}

var eventCmds = map[game.EventKind]Cmd{
	game.DiscardShuffle:     DiscardShuffle,
	game.DeckDrawn:          DeckDrawn,
	game.DiscardDrawn:       DiscardDrawn,
	game.Discards:           Discards,
	game.Replaced:           Replaced,
	game.MultiReplaceFailed: MultiReplaceFailed,
	game.Seen:               Seen,
	game.Swapped:            Swapped,
	game.Kabo:               KaboCalled,
	game.EndTurn:            EndTurn,
	game.GameOver:           GameOver,
}

// EventCmd returns the command used to announce a game event
func EventCmd(k game.EventKind) Cmd {
	return eventCmds[k]
}
