package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/minaorangina/kabo/deck"
	"github.com/minaorangina/kabo/game"
	"github.com/minaorangina/kabo/protocol"
)

// PlayState represents the state of the current game
// Idle -> players are joining
// InProgress -> cards are dealt
// Over -> play came back round to the kabo caller
type PlayState int

const (
	Idle PlayState = iota
	InProgress
	Over
)

func (ps PlayState) String() string {
	switch ps {
	case Idle:
		return "idle"
	case InProgress:
		return "inProgress"
	case Over:
		return "over"
	}
	return ""
}

const (
	defaultCardsPerPlayer = 4
	defaultMinPlayers     = 2
	defaultMaxPlayers     = 6
)

var (
	ErrTooFewPlayers      = errors.New("not enough players to start")
	ErrTooManyPlayers     = errors.New("too many players to start")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrNotCreator         = errors.New("only the game creator can start the game")
	ErrWrongStage         = errors.New("command not allowed at this stage of the game")
	ErrNotYourTurn        = errors.New("it is not your turn")
	ErrBadDecision        = errors.New("wrong number of choices for command")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrGameStopped        = errors.New("game is no longer running")
)

// GameEngine runs one game: it registers players, applies their commands
// one at a time and tells every player what happened.
type GameEngine interface {
	ID() string
	CreatorID() string
	Players() Players
	PlayState() PlayState
	AddPlayer(Player) error
	RemovePlayer(Player)
	Receive(protocol.InboundMessage)
	Listen(ctx context.Context)
	Done() <-chan struct{}
}

type GameEngineOpts struct {
	GameID         string
	CreatorID      string
	Players        Players
	CardsPerPlayer int
	MinPlayers     int
	MaxPlayers     int
	Rand           *rand.Rand
	RegisterCh     chan Player
	UnregisterCh   chan Player
	InboundCh      chan protocol.InboundMessage
}

type gameEngine struct {
	id             string
	creatorID      string
	mu             sync.RWMutex
	playState      PlayState
	players        Players
	registerCh     chan Player
	unregisterCh   chan Player
	inboundCh      chan protocol.InboundMessage
	cardsPerPlayer int
	minPlayers     int
	maxPlayers     int
	rng            *rand.Rand
	preGame        *game.PreGame
	game           *game.Game
	done           chan struct{}
	stopped        chan struct{}
}

// NewGameEngine constructs a new GameEngine. Listen must be running for
// players to join or play.
func NewGameEngine(opts GameEngineOpts) (*gameEngine, error) {
	if opts.CardsPerPlayer == 0 {
		opts.CardsPerPlayer = defaultCardsPerPlayer
	}
	if opts.MinPlayers == 0 {
		opts.MinPlayers = defaultMinPlayers
	}
	if opts.MaxPlayers == 0 {
		opts.MaxPlayers = defaultMaxPlayers
	}
	if opts.MinPlayers > opts.MaxPlayers {
		return nil, fmt.Errorf("min players %d is more than max players %d", opts.MinPlayers, opts.MaxPlayers)
	}
	if opts.CardsPerPlayer < 1 || opts.MaxPlayers*opts.CardsPerPlayer > 48 {
		return nil, fmt.Errorf("cannot deal %d cards to %d players", opts.CardsPerPlayer, opts.MaxPlayers)
	}
	if opts.Players == nil {
		opts.Players = Players{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.RegisterCh == nil {
		opts.RegisterCh = make(chan Player)
	}
	if opts.UnregisterCh == nil {
		opts.UnregisterCh = make(chan Player)
	}
	if opts.InboundCh == nil {
		opts.InboundCh = make(chan protocol.InboundMessage)
	}

	return &gameEngine{
		id:             opts.GameID,
		creatorID:      opts.CreatorID,
		players:        opts.Players,
		registerCh:     opts.RegisterCh,
		unregisterCh:   opts.UnregisterCh,
		inboundCh:      opts.InboundCh,
		cardsPerPlayer: opts.CardsPerPlayer,
		minPlayers:     opts.MinPlayers,
		maxPlayers:     opts.MaxPlayers,
		rng:            opts.Rand,
		done:           make(chan struct{}),
		stopped:        make(chan struct{}),
	}, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) CreatorID() string {
	return ge.creatorID
}

func (ge *gameEngine) Players() Players {
	ge.mu.RLock()
	defer ge.mu.RUnlock()

	ps := make(Players, len(ge.players))
	copy(ps, ge.players)
	return ps
}

func (ge *gameEngine) PlayState() PlayState {
	ge.mu.RLock()
	defer ge.mu.RUnlock()

	return ge.playState
}

func (ge *gameEngine) setPlayState(ps PlayState) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	ge.playState = ps
}

// Done is closed once the game is over
func (ge *gameEngine) Done() <-chan struct{} {
	return ge.done
}

// AddPlayer adds a player to a game that has not started yet
func (ge *gameEngine) AddPlayer(p Player) error {
	if ge.PlayState() != Idle {
		return ErrGameAlreadyStarted
	}
	select {
	case ge.registerCh <- p:
		return nil
	case <-ge.stopped:
		return ErrGameStopped
	}
}

// RemovePlayer disconnects a player. Once cards are dealt their seat is kept.
func (ge *gameEngine) RemovePlayer(p Player) {
	select {
	case ge.unregisterCh <- p:
	case <-ge.stopped:
	}
}

// Receive forwards InboundMessages from Players for processing. Messages
// for a game that has stopped are dropped.
func (ge *gameEngine) Receive(msg protocol.InboundMessage) {
	select {
	case ge.inboundCh <- msg:
	case <-ge.stopped:
	}
}

// Listen applies joins and commands one at a time until ctx is done or
// the game is over. It must only be called once.
func (ge *gameEngine) Listen(ctx context.Context) {
	defer close(ge.stopped)

	for {
		select {
		case <-ctx.Done():
			return

		case joiner := <-ge.registerCh:
			ge.register(joiner)

		case leaver := <-ge.unregisterCh:
			ge.unregister(leaver)

		case msg := <-ge.inboundCh:
			if err := ge.handle(msg); err != nil {
				log.Printf("game %s: player %s: %s: %v", ge.id, msg.PlayerID, msg.Command, err)
				ge.sendTo(msg.PlayerID, buildErrorMessage(msg.PlayerID, err))
			}
			if ge.PlayState() == Over {
				return
			}
		}
	}
}

func (ge *gameEngine) register(joiner Player) {
	if ge.PlayState() != Idle {
		joiner.Send(buildErrorMessage(joiner.ID(), ErrGameAlreadyStarted))
		return
	}

	ge.mu.Lock()
	ge.players = AddPlayer(ge.players, joiner)
	ge.mu.Unlock()

	for _, p := range ge.Players() {
		p.Send(buildNewJoinerMessage(joiner, p, ge.Players()))
	}
}

func (ge *gameEngine) unregister(leaver Player) {
	if ge.PlayState() != Idle {
		log.Printf("game %s: player %s disconnected", ge.id, leaver.ID())
		return
	}

	ge.mu.Lock()
	ge.players = ge.players.Remove(leaver.ID())
	ge.mu.Unlock()
}

// Start deals the cards
func (ge *gameEngine) Start() error {
	if ge.PlayState() != Idle {
		return nil
	}
	if err := ge.checkNumPlayers(); err != nil {
		return err
	}

	players := ge.Players()
	ge.preGame = game.NewPreGame(players.Names(), ge.cardsPerPlayer, ge.rng)
	ge.setPlayState(InProgress)

	for i, p := range players {
		p.Send(ge.buildHasStartedMessage(p, i))
	}

	return nil
}

func (ge *gameEngine) checkNumPlayers() error {
	n := len(ge.Players())
	if n < ge.minPlayers {
		return ErrTooFewPlayers
	}
	if n > ge.maxPlayers {
		return ErrTooManyPlayers
	}
	return nil
}

func (ge *gameEngine) handle(msg protocol.InboundMessage) error {
	idx, ok := ge.Players().Index(msg.PlayerID)
	if !ok {
		return fmt.Errorf("unknown player %q", msg.PlayerID)
	}

	switch msg.Command {
	case protocol.Start:
		if msg.PlayerID != ge.creatorID {
			return ErrNotCreator
		}
		return ge.Start()

	case protocol.AskState:
		return ge.answerState(msg)

	case protocol.Peek:
		return ge.handlePeek(idx, msg)

	case protocol.DeckDraw, protocol.DiscardDraw, protocol.Kabo, protocol.Discard,
		protocol.Replace, protocol.MultiReplace, protocol.PeekCard, protocol.Spy, protocol.Swap:
		return ge.handleTurn(idx, msg)
	}

	return ErrUnknownCommand
}

func (ge *gameEngine) handlePeek(idx int, msg protocol.InboundMessage) error {
	if ge.preGame == nil || ge.game != nil {
		return ErrWrongStage
	}
	if len(msg.Decision) != 1 {
		return ErrBadDecision
	}

	card, err := ge.preGame.Peek(idx, msg.Decision[0])
	if err != nil {
		return err
	}

	ge.sendTo(msg.PlayerID, buildPeekMessage(msg.PlayerID, idx, msg.Decision[0], card))

	if !ge.preGame.Ready() {
		return nil
	}

	ge.game = ge.preGame.ToGame()
	ge.preGame = nil

	for _, p := range ge.Players() {
		p.Send(ge.buildGameStartedMessage(p))
	}

	return nil
}

// decisionLen is how many choices each turn command carries
var decisionLen = map[protocol.Cmd]int{
	protocol.DeckDraw:    0,
	protocol.DiscardDraw: 0,
	protocol.Kabo:        0,
	protocol.Discard:     0,
	protocol.Replace:     1,
	protocol.PeekCard:    1,
	protocol.Spy:         2,
	protocol.Swap:        3,
}

// multiReplace takes the claimed rank followed by the card indices
func (ge *gameEngine) multiReplace(idx int, d []int) ([]game.Event, error) {
	if len(d) == 0 {
		return nil, ErrBadDecision
	}
	return ge.game.MultiReplace(idx, deck.Rank(d[0]), d[1:])
}

func (ge *gameEngine) handleTurn(idx int, msg protocol.InboundMessage) error {
	if ge.game == nil {
		return ErrWrongStage
	}
	if ge.game.Over() {
		return game.ErrGameOver
	}
	if idx != ge.game.CurrentPlayer() {
		return ErrNotYourTurn
	}
	if want, ok := decisionLen[msg.Command]; ok && len(msg.Decision) != want {
		return ErrBadDecision
	}

	var (
		events []game.Event
		err    error
		d      = msg.Decision
	)

	switch msg.Command {
	case protocol.DeckDraw:
		events, err = ge.game.DeckDraw()
	case protocol.DiscardDraw:
		events, err = ge.game.DiscardDraw()
	case protocol.Kabo:
		events, err = ge.game.AnnounceKabo()
	case protocol.Discard:
		events, err = ge.game.Discard()
	case protocol.Replace:
		events, err = ge.game.Replace(idx, d[0])
	case protocol.MultiReplace:
		events, err = ge.multiReplace(idx, d)
	case protocol.PeekCard:
		events, err = ge.game.Peek(idx, d[0])
	case protocol.Spy:
		events, err = ge.game.Spy(d[0], d[1])
	case protocol.Swap:
		events, err = ge.game.Swap(d[0], d[1], d[2])
	}
	if err != nil {
		return err
	}

	ge.broadcastEvents(idx, events)

	if ge.game.Over() {
		ge.setPlayState(Over)
		close(ge.done)
		log.Printf("game %s: game over", ge.id)
	}

	return nil
}

// broadcastEvents tells everyone what happened. Cards in private events
// are only shown to the acting player.
func (ge *gameEngine) broadcastEvents(actor int, events []game.Event) {
	for i, p := range ge.Players() {
		for _, e := range events {
			p.Send(ge.buildEventMessage(p.ID(), e, i == actor))
		}
	}
}

func (ge *gameEngine) answerState(msg protocol.InboundMessage) error {
	states := ge.states()
	if states == nil {
		return ErrWrongStage
	}

	switch len(msg.Decision) {
	case 0:
	case 1:
		i := msg.Decision[0]
		if i < 0 || i >= len(states) {
			return game.ErrInvalidIndex
		}
		states = states[i : i+1]
	default:
		return ErrBadDecision
	}

	ge.sendTo(msg.PlayerID, ge.buildStateMessage(msg.PlayerID, states))
	return nil
}

// states returns every player's public state, or nil before cards are dealt
func (ge *gameEngine) states() []game.PlayerState {
	var stateOf func(int) game.PlayerState
	switch {
	case ge.game != nil:
		stateOf = ge.game.PlayerState
	case ge.preGame != nil:
		stateOf = ge.preGame.PlayerState
	default:
		return nil
	}

	states := []game.PlayerState{}
	for i := range ge.Players() {
		states = append(states, stateOf(i))
	}
	return states
}

func (ge *gameEngine) sendTo(playerID string, msg protocol.OutboundMessage) {
	if p, ok := ge.Players().Find(playerID); ok {
		if err := p.Send(msg); err != nil {
			log.Printf("game %s: could not send to %s: %v", ge.id, playerID, err)
		}
	}
}
