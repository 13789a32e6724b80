package server

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/kabo/config"
	"github.com/minaorangina/kabo/engine"
	utils "github.com/minaorangina/kabo/internal"
	"github.com/minaorangina/kabo/protocol"
	"github.com/minaorangina/kabo/store"
	"github.com/stretchr/testify/require"
)

const wsReadTimeout = 2 * time.Second

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 7
	return cfg
}

func newTestServer(t *testing.T, s store.GameStore) *GameServer {
	t.Helper()

	server := NewServer(s, testConfig())
	t.Cleanup(func() { server.Close() })
	return server
}

// newServerWithInactiveGame stores a listening, unstarted game with the given players
func newServerWithInactiveGame(t *testing.T, ps engine.Players) (*GameServer, string) {
	t.Helper()

	gameID := "some-pending-id"
	ge, err := engine.NewGameEngine(engine.GameEngineOpts{GameID: gameID, Players: ps})
	require.NoError(t, err)

	s := store.NewInMemoryGameStore()
	require.NoError(t, s.AddInactiveGame(ge))

	server := newTestServer(t, s)
	go ge.Listen(server.ctx)

	return server, gameID
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func newJoinGameRequest(data []byte) *http.Request {
	if data == nil {
		data = []byte{}
	}
	request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer(data))
	return request
}

func wsURL(serverURL, gameID, playerID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") +
		"/ws?game_id=" + gameID + "&player_id=" + playerID
}

func readUntil(t *testing.T, ws *websocket.Conn, cmd protocol.Cmd) protocol.OutboundMessage {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(wsReadTimeout)))
	for {
		var msg protocol.OutboundMessage
		require.NoError(t, ws.ReadJSON(&msg))
		if msg.Command == cmd {
			return msg
		}
	}
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func decodePendingGameResponse(t *testing.T, body *bytes.Buffer) PendingGameRes {
	t.Helper()
	bodyBytes, err := ioutil.ReadAll(body)
	utils.AssertNoError(t, err)

	var got PendingGameRes
	err = json.Unmarshal(bodyBytes, &got)
	if err != nil {
		t.Fatalf("Could not unmarshal json: %s", err.Error())
	}
	return got
}

func assertPendingGameResponse(t *testing.T, body *bytes.Buffer, want string) PendingGameRes {
	t.Helper()

	got := decodePendingGameResponse(t, body)
	if got.Name != want {
		t.Errorf("Got %s, want %s", got.Name, want)
	}
	utils.AssertNotEmptyString(t, got.GameID)
	utils.AssertNotEmptyString(t, got.PlayerID)
	return got
}

// fakeEngine is a game whose state the test controls
type fakeEngine struct {
	engine.GameEngine
	id    string
	state engine.PlayState
	done  chan struct{}
}

func newFakeEngine(id string, state engine.PlayState) *fakeEngine {
	return &fakeEngine{id: id, state: state, done: make(chan struct{})}
}

func (f *fakeEngine) ID() string                  { return f.id }
func (f *fakeEngine) PlayState() engine.PlayState { return f.state }
func (f *fakeEngine) Players() engine.Players     { return engine.SomePlayers() }
func (f *fakeEngine) Done() <-chan struct{}       { return f.done }
