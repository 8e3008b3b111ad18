package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Event is what subscribers receive.
type Event struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
}

// Hub fans events out to a user's live connections. Sends never block:
// a subscriber that cannot keep up misses events and catches up through
// queue drain or delta sync.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[chan Event]struct{})}
}

// Subscribe registers a connection for userID. The returned cancel func
// must be called when the connection closes.
func (h *Hub) Subscribe(userID uuid.UUID, buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// NotifyUser implements message.Notifier.
func (h *Hub) NotifyUser(userID uuid.UUID, kind string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- Event{Kind: kind, Payload: payload}:
		default:
		}
	}
}
