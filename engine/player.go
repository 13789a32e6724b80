package engine

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/kabo/protocol"
	uuid "github.com/satori/go.uuid"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBufferSize = 64
)

var ErrPlayerGone = errors.New("player connection is closed")

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player represents a player in the game
type Player interface {
	ID() string
	Name() string
	Send(msg protocol.OutboundMessage) error
}

// Players represents all players in the game, in seating order
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// AddPlayer adds a player to a set of Players
func AddPlayer(ps Players, p Player) Players {
	if _, ok := ps.Find(p.ID()); !ok {
		return append(ps, p)
	}
	return ps
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	if i, ok := ps.Index(id); ok {
		return ps[i], true
	}
	return nil, false
}

// Index returns a player's seat, which is their player index in the game
func (ps Players) Index(id string) (int, bool) {
	for i, p := range ps {
		if p.ID() == id {
			return i, true
		}
	}
	return 0, false
}

func (ps Players) Remove(id string) Players {
	out := Players{}
	for _, p := range ps {
		if p.ID() != id {
			out = append(out, p)
		}
	}
	return out
}

func (ps Players) Names() []string {
	names := []string{}
	for _, p := range ps {
		names = append(names, p.Name())
	}
	return names
}

func (ps Players) Info() []protocol.PlayerInfo {
	info := []protocol.PlayerInfo{}
	for _, p := range ps {
		info = append(info, protocol.PlayerInfo{PlayerID: p.ID(), Name: p.Name()})
	}
	return info
}

// WSPlayer is a player connected over a websocket
type WSPlayer struct {
	id     string
	name   string
	conn   *websocket.Conn
	sendCh chan []byte
	ge     GameEngine
	mu     sync.Mutex
	closed bool
}

// NewWSPlayer constructs a player and starts pumping messages between the
// connection and the game engine.
func NewWSPlayer(id, name string, ws *websocket.Conn, ge GameEngine) *WSPlayer {
	player := &WSPlayer{
		id:     id,
		name:   name,
		conn:   ws,
		sendCh: make(chan []byte, sendBufferSize),
		ge:     ge,
	}

	go player.writePump()
	go player.readPump()

	return player
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

// Send queues a message for the player. A player that has stopped reading
// is dropped rather than holding up the game.
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerGone
	}

	select {
	case p.sendCh <- data:
		return nil
	default:
		log.Printf("player %s: send buffer full, closing connection", p.id)
		p.closed = true
		close(p.sendCh)
		return ErrPlayerGone
	}
}

// readPump forwards messages from the websocket to the game engine
func (p *WSPlayer) readPump() {
	defer func() {
		p.ge.RemovePlayer(p)
		p.conn.Close()
	}()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg protocol.InboundMessage
		if err := p.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("player %s: %v", p.id, err)
			}
			return
		}

		msg.PlayerID = p.id
		p.ge.Receive(msg)
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The engine closed the channel.
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
