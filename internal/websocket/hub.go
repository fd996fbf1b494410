package websocket

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/websocket"

	"github.com/cinesuggest/web/internal/logging"
	"github.com/cinesuggest/web/internal/metrics"
	"github.com/cinesuggest/web/internal/model"
)

// Client represents one open page of a session
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
}

// Hub maintains active WebSocket connections
type Hub struct {
	// Clients grouped by session ID
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	mu sync.RWMutex
}

// BroadcastMessage is a message for every page of a session
type BroadcastMessage struct {
	SessionID string
	Message   []byte
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.SessionID] == nil {
				h.clients[client.SessionID] = make(map[*Client]bool)
			}
			h.clients[client.SessionID][client] = true
			h.mu.Unlock()
			metrics.WSConnections.Inc()
			logging.Debug().Str("session", client.SessionID).Msg("websocket client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
			logging.Debug().Str("session", client.SessionID).Msg("websocket client unregistered")

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[msg.SessionID] {
				select {
				case client.Send <- msg.Message:
				default:
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove drops client and closes its channel. Caller holds mu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	metrics.WSConnections.Dec()
	if len(clients) == 0 {
		delete(h.clients, client.SessionID)
	}
}

// Register adds a new client
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Connected reports how many pages of a session are connected
func (h *Hub) Connected(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Notify sends a toast to every page of a session
func (h *Hub) Notify(sessionID string, toast model.Toast) {
	h.send(sessionID, model.WSToastMessage{
		Type:    model.WSMessageTypeToast,
		Message: toast.Message,
		Kind:    toast.Kind,
	})
}

// BroadcastPosterFallback tells the pages of a session to swap a card's poster
func (h *Hub) BroadcastPosterFallback(sessionID string, region model.Region, cardID int, url string) {
	h.send(sessionID, model.WSPosterFallbackMessage{
		Type:   model.WSMessageTypePosterFallback,
		Region: region,
		CardID: cardID,
		URL:    url,
	})
}

func (h *Hub) send(sessionID string, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal websocket message")
		return
	}

	select {
	case h.broadcast <- &BroadcastMessage{SessionID: sessionID, Message: data}:
	default:
		logging.Warn().Str("session", sessionID).Msg("websocket broadcast queue full, dropping message")
	}
}

// reply sends data to a single client if it is still registered
func (h *Hub) reply(client *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[client.SessionID][client] {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

// HandleConnection serves a WebSocket connection until it closes. onOpen
// runs once the client is registered.
func (h *Hub) HandleConnection(c *websocket.Conn, sessionID string, onOpen func()) {
	client := &Client{
		SessionID: sessionID,
		Conn:      c,
		Send:      make(chan []byte, 256),
	}

	h.Register(client)
	defer h.Unregister(client)

	if onOpen != nil {
		onOpen()
	}

	// Writer
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case message, ok := <-client.Send:
				if !ok {
					c.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
					return
				}

			case <-ticker.C:
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Reader
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn().Err(err).Str("session", sessionID).Msg("websocket error")
			}
			break
		}

		var msg model.WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		if msg.Type == model.WSMessageTypePing {
			pong, _ := json.Marshal(model.WSMessage{Type: model.WSMessageTypePong})
			h.reply(client, pong)
		}
	}
}
