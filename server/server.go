package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/kabo/config"
	"github.com/minaorangina/kabo/engine"
	"github.com/minaorangina/kabo/store"
)

const gameIDAttempts = 5

type NewGameReq struct {
	Name string `json:"name"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type GetGameRes struct {
	Status  string   `json:"status"`
	GameID  string   `json:"game_id"`
	Players []string `json:"players"`
}

// GameServer is a game server
type GameServer struct {
	store    store.GameStore
	cfg      config.Config
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	created int64

	http.Server
}

var (
	idRand   = rand.New(rand.NewSource(time.Now().UnixNano()))
	idRandMu sync.Mutex
)

// NewGameID returns a six letter code that players can type in
func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)

	idRandMu.Lock()
	defer idRandMu.Unlock()

	for i := range code {
		code[i] = letters[idRand.Intn(len(letters))]
	}

	return string(code)
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

// NewServer creates a new GameServer. Games it creates keep running until Close.
func NewServer(s store.GameStore, cfg config.Config) *GameServer {
	g := &GameServer{
		store: s,
		cfg:   cfg,
	}
	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     g.checkOrigin,
	}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(g.HandleNewGame))
	router.Handle("/game/", http.HandlerFunc(g.HandleFindGame))
	router.Handle("/join", http.HandlerFunc(g.HandleJoinGame))
	router.Handle("/ws", http.HandlerFunc(g.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	g.Addr = cfg.Addr()
	g.Handler = handlers.LoggingHandler(log.Writer(), cors(router))

	return g
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// Close stops every game started by this server
func (g *GameServer) Close() error {
	g.cancel()
	return g.Server.Close()
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range g.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// gameRand gives each new game its own source. With a fixed seed the
// sequence of games is reproducible.
func (g *GameServer) gameRand() *rand.Rand {
	if g.cfg.Seed == 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seed := g.cfg.Seed + g.created
	g.created++
	return rand.New(rand.NewSource(seed))
}

func (g *GameServer) newGame(creatorID string) (engine.GameEngine, error) {
	var lastErr error
	for i := 0; i < gameIDAttempts; i++ {
		game, err := engine.NewGameEngine(engine.GameEngineOpts{
			GameID:         NewGameID(),
			CreatorID:      creatorID,
			CardsPerPlayer: g.cfg.CardsPerPlayer,
			MinPlayers:     g.cfg.MinPlayers,
			MaxPlayers:     g.cfg.MaxPlayers,
			Rand:           g.gameRand(),
		})
		if err != nil {
			return nil, err
		}

		lastErr = g.store.AddInactiveGame(game)
		if lastErr == nil {
			return game, nil
		}
	}
	return nil, lastErr
}

// forgetWhenOver removes a game from the store once it has finished
func (g *GameServer) forgetWhenOver(game engine.GameEngine) {
	select {
	case <-game.Done():
		log.Printf("game %s: removed from store", game.ID())
		g.store.RemoveGame(game.ID())
	case <-g.ctx.Done():
	}
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	if data.Name == "" {
		writeBadRequest(w, "Missing player name")
		return
	}

	playerID := engine.NewID()
	game, err := g.newGame(playerID)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// get hub running
	go game.Listen(g.ctx)
	go g.forgetWhenOver(game)

	err = g.store.AddPendingPlayer(game.ID(), playerID, data.Name)
	if err != nil {
		log.Println(err.Error())
		g.store.RemoveGame(game.ID())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, PendingGameRes{
		GameID:   game.ID(),
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
		Players:  []string{},
	})
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		writeBadRequest(w, "missing game ID")
		return
	}

	game := g.store.FindGame(gameID)
	if game == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownGameIDMsg(gameID)))
		return
	}

	writeJSON(w, http.StatusOK, GetGameRes{
		Status:  game.PlayState().String(),
		GameID:  gameID,
		Players: game.Players().Names(),
	})
}

func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	if data.GameID == "" {
		writeBadRequest(w, "Missing game ID")
		return
	}

	if data.Name == "" {
		writeBadRequest(w, "Missing player name")
		return
	}

	if g.store.FindActiveGame(data.GameID) != nil {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(engine.ErrGameAlreadyStarted.Error()))
		return
	}

	game := g.store.FindInactiveGame(data.GameID)
	if game == nil {
		writeBadRequest(w, unknownGameIDMsg(data.GameID))
		return
	}

	playerID := engine.NewID()

	err = g.store.AddPendingPlayer(data.GameID, playerID, data.Name)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, PendingGameRes{
		PlayerID: playerID,
		GameID:   data.GameID,
		Name:     data.Name,
		Players:  game.Players().Names(),
	})
}

// HandleWS upgrades a pending player's connection and seats them in the game
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gameID := query.Get("game_id")
	if gameID == "" {
		log.Println("missing game ID")
		writeBadRequest(w, "missing game ID")
		return
	}

	playerID := query.Get("player_id")
	if playerID == "" {
		log.Println("missing player ID")
		writeBadRequest(w, "missing player ID")
		return
	}

	game := g.store.FindInactiveGame(gameID)
	if game == nil {
		writeBadRequest(w, unknownGameIDMsg(gameID))
		return
	}

	pendingPlayer := g.store.FindPendingPlayer(gameID, playerID)
	if pendingPlayer == nil {
		writeBadRequest(w, "unknown player ID")
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		log.Printf("could not upgrade to websocket: %v", err)
		return
	}

	player := engine.NewWSPlayer(playerID, pendingPlayer.Name, conn, game)
	if err := g.store.AddPlayerToGame(gameID, player); err != nil {
		log.Printf("could not add player to game: %v", err)
		conn.Close()
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte(msg))
}

func writeParseError(err error, w http.ResponseWriter, r *http.Request) {
	log.Println(err.Error())
	if err == io.EOF {
		writeBadRequest(w, "Missing body")
		return
	}
	writeBadRequest(w, "Malformed body")
}
