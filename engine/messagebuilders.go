package engine

import (
	"fmt"

	"github.com/minaorangina/kabo/deck"
	"github.com/minaorangina/kabo/game"
	"github.com/minaorangina/kabo/protocol"
)

func cardRef(c deck.Card) *deck.Card {
	return &c
}

func buildErrorMessage(playerID string, err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.Error,
		Message:  fmt.Sprintf("game error: %q", err.Error()),
		Error:    err.Error(),
	}
}

func buildNewJoinerMessage(joiner, recipient Player, ps Players) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: recipient.ID(),
		Command:  protocol.NewJoiner,
		Message:  fmt.Sprintf("%s has joined the game!", joiner.Name()),
		Joiner:   protocol.PlayerInfo{PlayerID: joiner.ID(), Name: joiner.Name()},
		Players:  ps.Info(),
	}
}

func (ge *gameEngine) buildHasStartedMessage(p Player, idx int) protocol.OutboundMessage {
	msg := protocol.OutboundMessage{
		PlayerID:    p.ID(),
		Command:     protocol.HasStarted,
		Message:     fmt.Sprintf("Game is starting! Look at %d of your cards.", game.PeeksPerPlayer),
		PlayerIndex: idx,
		Players:     ge.Players().Info(),
		States:      ge.states(),
		DeckCount:   ge.preGame.DeckCount(),
	}
	if top, ok := ge.preGame.DiscardTop(); ok {
		msg.DiscardTop = cardRef(top)
	}
	return msg
}

func buildPeekMessage(playerID string, playerIdx, cardIdx int, card deck.Card) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID:    playerID,
		Command:     protocol.Seen,
		PlayerIndex: playerIdx,
		CardIndex:   cardIdx,
		Card:        cardRef(card),
	}
}

func (ge *gameEngine) baseGameMessage(playerID string) protocol.OutboundMessage {
	msg := protocol.OutboundMessage{
		PlayerID:  playerID,
		DeckCount: ge.game.DeckCount(),
	}
	if top, ok := ge.game.DiscardTop(); ok {
		msg.DiscardTop = cardRef(top)
	}
	return msg
}

func (ge *gameEngine) buildGameStartedMessage(p Player) protocol.OutboundMessage {
	current := ge.game.CurrentPlayer()

	msg := ge.baseGameMessage(p.ID())
	msg.Command = protocol.GameStarted
	msg.NextPlayer = current
	msg.States = ge.states()
	msg.Message = fmt.Sprintf("Everyone is ready. It's %s's turn!", ge.nameOf(current))

	return msg
}

func (ge *gameEngine) buildStateMessage(playerID string, states []game.PlayerState) protocol.OutboundMessage {
	msg := protocol.OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.StateIs,
		States:   states,
	}
	if ge.game != nil {
		msg = ge.baseGameMessage(playerID)
		msg.Command = protocol.StateIs
		msg.States = states
	}
	return msg
}

// buildEventMessage describes a game event to one player. reveal is true
// when the recipient performed the action.
func (ge *gameEngine) buildEventMessage(playerID string, e game.Event, reveal bool) protocol.OutboundMessage {
	if !reveal {
		e = e.Redacted()
	}

	msg := ge.baseGameMessage(playerID)
	msg.Command = protocol.EventCmd(e.Kind)
	msg.PlayerIndex = e.PlayerIndex
	msg.CardIndex = e.CardIndex
	msg.CardIndices = e.CardIndices
	msg.Cards = e.Cards
	msg.OtherPlayer = e.OtherPlayer
	msg.OtherCardIndex = e.OtherCardIndex
	msg.NextPlayer = e.NextPlayer
	msg.Message = ge.describe(e)

	switch e.Kind {
	case game.DeckDrawn, game.Seen:
		if reveal {
			msg.Card = cardRef(e.Card)
		}
	case game.DiscardDrawn:
		msg.Card = cardRef(e.Card)
	case game.Replaced, game.MultiReplaceFailed:
		if len(e.CardIndices) > 1 {
			claimed := e.Claimed
			msg.Claimed = &claimed
		}
	case game.GameOver:
		msg.States = ge.states()
	}

	return msg
}

func (ge *gameEngine) describe(e game.Event) string {
	name := ge.nameOf(e.PlayerIndex)

	switch e.Kind {
	case game.DiscardShuffle:
		return "The deck ran out. The discard pile has been shuffled into a new deck."
	case game.DeckDrawn:
		return fmt.Sprintf("%s draws from the deck.", name)
	case game.DiscardDrawn:
		return fmt.Sprintf("%s takes the %s from the discard pile.", name, e.Card)
	case game.Discards:
		return fmt.Sprintf("%s discards %v.", name, e.Cards)
	case game.Replaced:
		return fmt.Sprintf("%s replaces cards %v.", name, e.CardIndices)
	case game.MultiReplaceFailed:
		return fmt.Sprintf("%s claimed %v are all %s, but they're %v!", name, e.CardIndices, e.Claimed, e.Cards)
	case game.Seen:
		return fmt.Sprintf("Card %d of %s has been looked at.", e.CardIndex, name)
	case game.Swapped:
		return fmt.Sprintf("%s swaps a card with %s.", name, ge.nameOf(e.OtherPlayer))
	case game.Kabo:
		return fmt.Sprintf("%s calls Kabo!", name)
	case game.EndTurn:
		return fmt.Sprintf("It's %s's turn!", ge.nameOf(e.NextPlayer))
	case game.GameOver:
		return "Game over!"
	}
	return ""
}

func (ge *gameEngine) nameOf(idx int) string {
	ps := ge.Players()
	if idx < 0 || idx >= len(ps) {
		return ""
	}
	return ps[idx].Name()
}
