package engine

import (
	"sync"

	"github.com/minaorangina/kabo/protocol"
)

// TestPlayer is a Player that records everything sent to it
type TestPlayer struct {
	id       string
	name     string
	mu       sync.Mutex
	received []protocol.OutboundMessage
}

func NewTestPlayer(id, name string) *TestPlayer {
	return &TestPlayer{id: id, name: name}
}

func (tp *TestPlayer) ID() string {
	return tp.id
}

func (tp *TestPlayer) Name() string {
	return tp.name
}

func (tp *TestPlayer) Send(msg protocol.OutboundMessage) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	tp.received = append(tp.received, msg)
	return nil
}

// Received returns a copy of every message sent to the player
func (tp *TestPlayer) Received() []protocol.OutboundMessage {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	out := make([]protocol.OutboundMessage, len(tp.received))
	copy(out, tp.received)
	return out
}

// Last returns the most recent message, if any
func (tp *TestPlayer) Last() (protocol.OutboundMessage, bool) {
	msgs := tp.Received()
	if len(msgs) == 0 {
		return protocol.OutboundMessage{}, false
	}
	return msgs[len(msgs)-1], true
}

// Clear forgets every recorded message
func (tp *TestPlayer) Clear() {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	tp.received = nil
}

func APlayer(id, name string) *TestPlayer {
	return NewTestPlayer(id, name)
}

func SomePlayers() Players {
	return NewPlayers(
		APlayer("player-1", "Harry"),
		APlayer("player-2", "Sally"),
	)
}
