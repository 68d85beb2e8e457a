package watch

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is what dashboards receive after every committed workflow
// transition. Consumers recompute their views from scratch; the hub never
// replays history.
type Event struct {
	Event   string    `json:"event"`
	CaseID  int64     `json:"case_id"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// subscriber wraps a connection with a write lock; gorilla/websocket allows
// only one concurrent writer per connection.
type subscriber struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func (s *subscriber) writeJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn.WriteJSON(v)
}

type Hub struct {
	mutex       sync.RWMutex
	nextID      int64
	connections map[int64]*subscriber
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*subscriber),
	}
}

func (h *Hub) Register(conn *websocket.Conn) int64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.nextID++
	h.connections[h.nextID] = &subscriber{conn: conn}
	return h.nextID
}

func (h *Hub) Unregister(id int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if sub, exists := h.connections[id]; exists && sub != nil {
		_ = sub.conn.Close()
		delete(h.connections, id)
	}
}

// PublishCaseEvent fans the event out to every subscriber. A failed write
// drops that subscriber; a slow client never blocks a workflow transition.
func (h *Hub) PublishCaseEvent(event string, caseID int64, payload any) {
	msg := Event{Event: event, CaseID: caseID, At: time.Now(), Payload: payload}

	h.mutex.RLock()
	subs := make(map[int64]*subscriber, len(h.connections))
	for id, sub := range h.connections {
		subs[id] = sub
	}
	h.mutex.RUnlock()

	for id, sub := range subs {
		if sub == nil {
			continue
		}
		if err := sub.writeJSON(msg); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, sub := range h.connections {
		if sub != nil {
			_ = sub.conn.Close()
		}
		delete(h.connections, id)
	}
}
