package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// PushPayload is the message shape delivered over a user's channel.
type PushPayload struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// channel serializes writes to one connection; gorilla/websocket allows
// at most one concurrent writer per connection.
type channel struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *channel) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub maps user identities to their live connections. A user may hold any
// number of simultaneous connections; every one receives each push.
// Membership is connection-scoped: registration lives exactly as long as
// the connection.
type Hub struct {
	mu     sync.RWMutex
	conns  map[int64]map[*websocket.Conn]*channel
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[int64]map[*websocket.Conn]*channel),
		logger: logger,
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[userID]
	if !ok {
		set = make(map[*websocket.Conn]*channel)
		h.conns[userID] = set
	}
	set[conn] = &channel{conn: conn}

	h.logger.Info("connection registered", "user_id", userID, "connections", len(set))
}

func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[userID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.conns, userID)
	}
}

// Connections reports how many live connections a user currently holds.
func (h *Hub) Connections(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Push writes the payload to every live connection of the user. Connections
// that fail the write are dropped. A user with no connections is not an
// error; delivery here is best-effort by contract.
func (h *Hub) Push(userID int64, payload PushPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*channel, 0, len(h.conns[userID]))
	for _, ch := range h.conns[userID] {
		targets = append(targets, ch)
	}
	h.mu.RUnlock()

	for _, ch := range targets {
		if err := ch.write(data); err != nil {
			h.logger.Warn("push write failed, dropping connection",
				"user_id", userID,
				"error", err)
			h.Unregister(userID, ch.conn)
			ch.conn.Close()
		}
	}

	return nil
}
