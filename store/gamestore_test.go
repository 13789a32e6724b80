package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/minaorangina/kabo/engine"
	utils "github.com/minaorangina/kabo/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInactiveGame(t *testing.T, gameID, creatorID string, ps engine.Players) engine.GameEngine {
	t.Helper()

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{GameID: gameID, CreatorID: creatorID, Players: ps})
	require.NoError(t, err)
	return ge
}

func TestInMemoryGameStore(t *testing.T) {
	t.Run("Constructor prevents nil struct members", func(t *testing.T) {
		str := NewInMemoryGameStore()
		assert.NotNil(t, str.Games)
		assert.NotNil(t, str.PendingPlayers)
	})

	t.Run("prevents duplicate game IDs", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newInactiveGame(t, "thisISAnID", "", nil)

		utils.AssertNoError(t, str.AddInactiveGame(ge))
		utils.AssertErrored(t, str.AddInactiveGame(ge))
	})

	t.Run("Can add pending players", func(t *testing.T) {
		str := NewInMemoryGameStore()
		require.NoError(t, str.AddInactiveGame(newInactiveGame(t, "some-game-id", "player-1", nil)))

		err := str.AddPendingPlayer("some-game-id", "player-1", "Hermione")
		utils.AssertNoError(t, err)

		pendingInfo := str.FindPendingPlayer("some-game-id", "player-1")
		require.NotNil(t, pendingInfo)
		utils.AssertEqual(t, pendingInfo.Name, "Hermione")
		assert.Nil(t, str.FindPendingPlayer("some-game-id", "player-2"))
	})

	t.Run("Handles a non-existent game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		assert.Nil(t, str.FindGame("fake-id"))
		utils.AssertErrored(t, str.AddPendingPlayer("fake-id", "p", "Percy"))
		utils.AssertErrored(t, str.AddPlayerToGame("fake-id", engine.APlayer("p", "Percy")))
	})

	t.Run("Can add a player to an inactive game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newInactiveGame(t, "a-pending-game", "creator-id", engine.SomePlayers())
		require.NoError(t, str.AddInactiveGame(ge))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go ge.Listen(ctx)

		err := str.AddPlayerToGame("a-pending-game", engine.APlayer("horatio-1", "Horatio"))
		utils.AssertNoError(t, err)

		assert.Eventually(t, func() bool {
			_, ok := ge.Players().Find("horatio-1")
			return ok
		}, testTimeout, testTick)
	})

	t.Run("Active and inactive games are told apart", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newInactiveGame(t, "g", "player-1", engine.SomePlayers())
		require.NoError(t, str.AddInactiveGame(ge))

		assert.NotNil(t, str.FindInactiveGame("g"))
		assert.Nil(t, str.FindActiveGame("g"))

		str.RemoveGame("g")
		assert.Nil(t, str.FindGame("g"))
	})

	t.Run("Is safe for concurrent use", func(t *testing.T) {
		str := NewInMemoryGameStore()
		var wg sync.WaitGroup

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("game-%d", i)
				ge := newInactiveGame(t, id, "creator", nil)
				assert.NoError(t, str.AddInactiveGame(ge))
				assert.NoError(t, str.AddPendingPlayer(id, "creator", "Ada"))
				assert.NotNil(t, str.FindPendingPlayer(id, "creator"))
			}(i)
		}
		wg.Wait()

		utils.AssertEqual(t, len(str.Games), 20)
	})
}
