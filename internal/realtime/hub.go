package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Conn is the slice of *websocket.Conn the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// Hub keeps the per-recipient live connections. Pushes are best-effort:
// a dead connection is dropped, never retried.
type Hub struct {
	logger *zap.Logger

	mu    sync.RWMutex
	conns map[uuid.UUID]map[Conn]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns: make(map[uuid.UUID]map[Conn]struct{}),
	}
}

func (h *Hub) Register(userID uuid.UUID, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[userID] == nil {
		h.conns[userID] = make(map[Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
}

func (h *Hub) Unregister(userID uuid.UUID, conn Conn) {
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

// Push delivers the payload to every live connection of the recipient,
// at most once per call. Write failures close and drop the connection.
func (h *Hub) Push(recipientID uuid.UUID, payload interface{}) {
	h.mu.RLock()
	set := h.conns[recipientID]
	conns := make([]Conn, 0, len(set))
	for conn := range set {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			h.logger.Sugar().Errorf("failed to push notification to user(%s): %s", recipientID.String(), err.Error())
			conn.Close()
			h.Unregister(recipientID, conn)
		}
	}
}
