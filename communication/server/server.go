package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"battleship/communication"
	"battleship/engine"
	"battleship/experiments/metrics"
	"battleship/game"
	"battleship/gamemaster"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server plays one human-vs-bot game per websocket connection.
type Server struct {
	newMaster    func() *gamemaster.GameMaster
	newCollector func() metrics.Collector
}

func NewServer(newMaster func() *gamemaster.GameMaster, newCollector func() metrics.Collector) *Server {
	if newCollector == nil {
		newCollector = metrics.NewDummyCollector
	}
	return &Server{
		newMaster:    newMaster,
		newCollector: newCollector,
	}
}

// Handler routes /ws to the game endpoint.
func (s *Server) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	return mux
}

func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Msgf("upgrade failed: %v", err)
		return
	}

	c := &client{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, 64),
		server: s,
	}
	log.Info().Msgf("client %s connected from %s", c.id, r.RemoteAddr)

	go c.write()
	c.read()
}

type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	server *Server
	game   *engine.Engine
}

// read handles messages one at a time, so shots of a game never overlap.
func (c *client) read() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		if c.game != nil {
			c.game.Close()
		}
		close(c.send)
		log.Info().Msgf("client %s disconnected", c.id)
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Msgf("read error for client %s: %v", c.id, err)
			}
			return
		}

		var in Inbound
		if err := json.Unmarshal(msg, &in); err != nil {
			c.fail(fmt.Errorf("malformed message: %w", err))
			continue
		}

		switch in.Type {
		case TypeNewGame:
			err = c.newGame(in.Ships)
		case TypeShot:
			err = c.shot(ctx, in.Cell)
		default:
			err = fmt.Errorf("unknown message type: %q", in.Type)
		}
		if err != nil {
			c.fail(err)
		}
	}
}

func (c *client) write() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Warn().Msgf("write error for client %s: %v", c.id, err)
			break
		}
	}
	// Keep draining so the read loop never blocks on a dead connection.
	for range c.send {
	}
}

func (c *client) newGame(ships []Placement) error {
	gm := c.server.newMaster()
	if len(ships) == 0 {
		if err := gm.Randomize(); err != nil {
			return err
		}
	}
	for _, p := range ships {
		origin, err := game.ParseCoordinate(p.Cell)
		if err != nil {
			return err
		}
		if p.Vertical && !gm.Rotate(p.ID) {
			return fmt.Errorf("unknown ship %d", p.ID)
		}
		if !gm.Place(p.ID, origin) {
			return fmt.Errorf("ship %d cannot be placed at %s", p.ID, origin)
		}
	}

	e, err := gm.Start(&renderer{client: c}, c.server.newCollector())
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	if c.game != nil {
		c.game.Close()
	}
	c.game = e

	size := e.Human().Board().Size()
	c.push(Outbound{
		Type:      TypeState,
		GameID:    e.ID(),
		BoardSize: size,
		Ships:     shipStates(e.Human().Layout),
		Status:    e.Status().String(),
		Turn:      string(communication.HumanSide),
	})
	log.Info().Msgf("client %s started game %s", c.id, e.ID())
	return nil
}

func (c *client) shot(ctx context.Context, cell string) error {
	if c.game == nil {
		return errors.New("no game in progress")
	}
	target, err := game.ParseCoordinate(cell)
	if err != nil {
		return err
	}

	status, err := c.game.Shoot(ctx, target)
	if err != nil {
		return err
	}

	out := Outbound{Type: TypeStatus, GameID: c.game.ID(), Status: status.String()}
	switch status {
	case engine.HumanWin:
		out.Winner = string(communication.HumanSide)
	case engine.BotWin:
		out.Winner = string(communication.BotSide)
	default:
		out.Turn = string(communication.HumanSide)
	}
	c.push(out)
	return nil
}

func (c *client) fail(err error) {
	log.Debug().Msgf("client %s: %v", c.id, err)
	c.push(Outbound{Type: TypeError, Message: err.Error()})
}

func (c *client) push(out Outbound) {
	data, err := json.Marshal(out)
	if err != nil {
		log.Error().Msgf("failed to marshal %s message: %v", out.Type, err)
		return
	}
	c.send <- data
}

// renderer streams engine events to the client as they happen, so the bot's paced shots arrive one by one.
type renderer struct {
	client *client
}

func (r *renderer) Apply(events ...communication.Event) {
	r.client.push(Outbound{Type: TypeEvents, Events: events})
}

func (r *renderer) GameOver(winner communication.Side) {
	log.Info().Msgf("client %s: %s won", r.client.id, winner)
}
