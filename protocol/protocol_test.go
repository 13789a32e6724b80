package protocol

import (
	"encoding/json"
	"testing"

	"github.com/minaorangina/kabo/deck"
	"github.com/minaorangina/kabo/game"
	utils "github.com/minaorangina/kabo/internal"
	"github.com/stretchr/testify/assert"
)

func TestCmdNames(t *testing.T) {
	for cmd := Null; cmd <= GameOver; cmd++ {
		name := cmd.String()
		assert.NotEmpty(t, name, "command %d has no name", cmd)
		utils.AssertEqual(t, NameToCmd[name], cmd)
	}
}

func TestEventCmd(t *testing.T) {
	seen := map[Cmd]bool{}
	for kind := game.DiscardShuffle; kind <= game.GameOver; kind++ {
		cmd := EventCmd(kind)
		assert.NotEqual(t, Null, cmd, "event %s has no command", kind)
		assert.False(t, seen[cmd], "event %s shares a command", kind)
		seen[cmd] = true
	}
}

func TestOutboundMessageOmitsHiddenCard(t *testing.T) {
	msg := OutboundMessage{PlayerID: "p1", Command: DeckDrawn}
	data, err := json.Marshal(msg)
	utils.AssertNoError(t, err)
	assert.NotContains(t, string(data), `"card"`)

	card := deck.NewCard(deck.Seven)
	msg.Card = &card
	data, err = json.Marshal(msg)
	utils.AssertNoError(t, err)
	assert.Contains(t, string(data), `"card":{"rank":7}`)
}
