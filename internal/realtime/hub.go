package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Kind    string `json:"kind"` // "message" or "notification"
	Payload any    `json:"payload"`
}

// Conn is the subset of *websocket.Conn the hub uses.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
}

// client wraps a socket with a write lock. The underlying websocket
// connection supports only one concurrent writer.
type client struct {
	mu   sync.Mutex
	conn Conn
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub tracks open websocket connections per user and fans events out to
// them. A user may hold several connections (phone and tablet).
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[*client]struct{}
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		conns: make(map[string]map[*client]struct{}),
		log:   log,
	}
}

// Register adds a connection for the user and blocks reading it until the
// peer goes away. Incoming frames are discarded; the socket is push-only.
func (h *Hub) Register(userID string, conn Conn) {
	cl := &client{conn: conn}

	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*client]struct{})
	}
	h.conns[userID][cl] = struct{}{}
	h.mu.Unlock()

	defer h.unregister(userID, cl)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) unregister(userID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.conns[userID]; ok {
		delete(set, cl)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// targets snapshots the clients to write to so a slow socket never holds
// the registry lock.
func (h *Hub) targets(userID string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if userID != "" {
		out := make([]*client, 0, len(h.conns[userID]))
		for cl := range h.conns[userID] {
			out = append(out, cl)
		}
		return out
	}

	var out []*client
	for _, set := range h.conns {
		for cl := range set {
			out = append(out, cl)
		}
	}
	return out
}

// Push sends an event to every open connection of the user. Write failures
// only log; the connection reaper in Register handles dead peers.
func (h *Hub) Push(userID string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Warn("marshal realtime event", zap.Error(err))
		return
	}

	for _, cl := range h.targets(userID) {
		if err := cl.write(data); err != nil {
			h.log.Debug("realtime write failed", zap.String("userId", userID), zap.Error(err))
		}
	}
}

// Broadcast sends an event to every connected user.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Warn("marshal realtime event", zap.Error(err))
		return
	}

	for _, cl := range h.targets("") {
		if err := cl.write(data); err != nil {
			h.log.Debug("realtime broadcast write failed", zap.Error(err))
		}
	}
}

// Connected reports whether the user has at least one open socket.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID]) > 0
}
