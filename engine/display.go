package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/kabo/protocol"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// buildDisplayText renders a message for a terminal
func buildDisplayText(msg protocol.OutboundMessage) string {
	var b strings.Builder

	switch {
	case msg.Command == protocol.Error:
		fmt.Fprintf(&b, "Oops: %s\n", msg.Error)
		return b.String()
	case msg.Message != "":
		b.WriteString(msg.Message + "\n")
	default:
		b.WriteString(msg.Command.String() + "\n")
	}

	if msg.Card != nil {
		switch msg.Command {
		case protocol.Seen:
			fmt.Fprintf(&b, "Card %d of player %d is a %s\n", msg.CardIndex, msg.PlayerIndex, msg.Card)
		default:
			fmt.Fprintf(&b, "You are holding a %s\n", msg.Card)
		}
	}

	if msg.Command == protocol.StateIs || msg.Command == protocol.GameOver {
		for i, s := range msg.States {
			kabo := ""
			if s.CalledKabo {
				kabo = " (Kabo!)"
			}
			fmt.Fprintf(&b, "%d %s: %d cards, %s%s\n", i, s.Name, s.HandSize, s.Phase, kabo)
		}
	}

	if msg.DiscardTop != nil {
		fmt.Fprintf(&b, "Discard pile shows a %s, %d cards left in the deck\n", msg.DiscardTop, msg.DeckCount)
	}

	return b.String()
}

func commandHelpText() string {
	return `Type "<seat> <command> [numbers...]", for example:
  0 start
  0 peek 2            look at one of your cards before play
  1 deckdraw | discarddraw | kabo
  1 discard | replace 3 | multireplace <rank> 0 2
  1 peekcard 1 | spy 2 0 | swap 1 2 0
  0 askstate 1
`
}
