package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is handled by the HTTP server wrapper
		return true
	},
}

// event is the JSON envelope pushed to UI clients, mirroring the
// market_data_update feed of the original UI.
type event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub maintains active UI websocket connections and mirrors the core's
// outbound messages for the local HTTP session onto them. It implements
// domain.Sender so it can be routed like any other transport.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*wsClient]bool
	broadcast chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*wsClient]bool),
		broadcast: make(chan []byte, 256),
	}
}

// Run pumps broadcast messages to every connected client until the context
// is cancelled. A client whose send buffer is full is disconnected rather
// than allowed to stall the others.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		case message := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send mirrors one outbound core message to all UI clients.
func (h *Hub) Send(out domain.Outbound) error {
	name := "message"
	switch out.(type) {
	case *domain.MarketDataSnapshot:
		name = "market_data_update"
	case *domain.ExecutionReport:
		name = "execution_report"
	case *domain.CancelReject:
		name = "order_cancel_reject"
	}

	payload, err := json.Marshal(event{Event: name, Data: out})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- payload:
	default:
		// UI feed is best-effort; never block the core.
	}
	return nil
}

// wsClient is one connected UI websocket.
type wsClient struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// HandleWebSocket upgrades the request and attaches the client to the hub.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &wsClient{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
	}

	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()
	slog.Info("UI client connected", slog.String("client", client.id), slog.Int("total", total))

	go client.writePump()
	go client.readPump()
}

func (c *wsClient) readPump() {
	defer c.disconnect()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Inbound frames from the UI are ignored; the feed is one-way.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) disconnect() {
	c.hub.mu.Lock()
	if _, ok := c.hub.clients[c]; ok {
		delete(c.hub.clients, c)
		close(c.send)
	}
	total := len(c.hub.clients)
	c.hub.mu.Unlock()
	c.conn.Close()
	slog.Info("UI client disconnected", slog.String("client", c.id), slog.Int("total", total))
}
