package game

import (
	"math/rand"
	"testing"

	"github.com/minaorangina/kabo/deck"
	"github.com/stretchr/testify/require"
)

var threeNames = func() []string { return []string{"A", "B", "C"} }

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func cards(ranks ...deck.Rank) []deck.Card {
	cs := []deck.Card{}
	for _, r := range ranks {
		cs = append(cs, deck.NewCard(r))
	}
	return cs
}

func cardPtr(r deck.Rank) *deck.Card {
	c := deck.NewCard(r)
	return &c
}

func intPtr(i int) *int {
	return &i
}

// usePeeks spends every peek allowance of the pre-game
func usePeeks(t *testing.T, pg *PreGame) {
	t.Helper()

	for p := 0; p < pg.NumPlayers(); p++ {
		for pg.PeeksLeft(p) > 0 {
			_, err := pg.Peek(p, 0)
			require.NoError(t, err)
		}
	}
}

func startedGame(t *testing.T, names []string, seed int64) *Game {
	t.Helper()

	pg := NewPreGame(names, 4, seeded(seed))
	usePeeks(t, pg)
	return pg.ToGame()
}

// tableGame builds a game with known hands. Player i holds hands[i].
func tableGame(d, pile []deck.Card, hands ...[]deck.Card) *Game {
	players := []*Player{}
	for i, h := range hands {
		p := NewPlayer(string(rune('A' + i)))
		p.Hand = h
		players = append(players, p)
	}
	return ExistingGame(GameOpts{
		Deck:    deck.Deck(d),
		Pile:    deck.Pile(pile),
		Players: players,
		Rand:    seeded(1),
	})
}

func requireFullDeck(t *testing.T, g *Game) {
	t.Helper()

	all := g.Cards()
	require.Len(t, all, deck.Size)
	require.Equal(t, deck.FullRankCounts(), deck.RankCounts(all))
}
