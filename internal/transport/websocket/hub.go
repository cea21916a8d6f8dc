// Package websocket pushes board updates to spectators.
// Clients connect for one session and receive a state_update message
// after every accepted shift on that board.
package websocket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/session"
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

	sendBuffer = 256
)

// Event names.
const (
	EventState       = "state"
	EventStateUpdate = "state_update"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectating is read-only, so any origin may watch.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the envelope sent to clients.
type Message struct {
	SessionID string         `json:"session_id"`
	State     *session.State `json:"state,omitempty"`
	Event     string         `json:"event,omitempty"`
	Data      any            `json:"data,omitempty"`
}

// Client is one spectator connection.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains the set of active clients and broadcasts messages.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	logger *log.Logger
}

// NewHub creates a new WebSocket hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled,
// then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for _, clients := range h.sessions {
			for client := range clients {
				h.unregisterClient(client)
			}
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS upgrades the request and subscribes it to sessionID.
// initial, if set, is sent before any update.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial *session.State) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	if initial != nil {
		if data, err := json.Marshal(&Message{SessionID: sessionID, State: initial, Event: EventState}); err == nil {
			client.send <- data
		}
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// BroadcastState sends a state_update to every spectator of st's session.
// It matches session.UpdateFunc so it can be passed to Manager.OnUpdate.
func (h *Hub) BroadcastState(st session.State) {
	h.enqueue(&Message{SessionID: st.ID, State: &st, Event: EventStateUpdate})
}

// BroadcastEvent sends a custom event to all clients in a session.
func (h *Hub) BroadcastEvent(sessionID, event string, data any) {
	h.enqueue(&Message{SessionID: sessionID, Event: event, Data: data})
}

func (h *Hub) enqueue(m *Message) {
	select {
	case h.broadcast <- m:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	h.logger.Debug("spectator joined", "session", client.sessionID, "clients", len(h.sessions[client.sessionID]))
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}

	h.logger.Debug("spectator left", "session", client.sessionID, "clients", len(clients))
}

func (h *Hub) broadcastMessage(message *Message) {
	clients, ok := h.sessions[message.SessionID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("cannot marshal websocket message", "err", err)
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer
			h.unregisterClient(client)
		}
	}
}

// readPump drains the connection so pongs and close frames are handled.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", "session", c.sessionID, "err", err)
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the connection, one frame per message.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // deadline errors surface on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // best-effort close frame
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // deadline errors surface on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
