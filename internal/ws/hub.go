package ws

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Conn is the part of a Socket.IO connection the hub needs.
type Conn interface {
	ID() string
	Emit(event string, v ...interface{})
}

// QueueSize bounds the outbound messages buffered per connection. A client
// that falls this far behind starts losing messages.
const QueueSize = 64

type outbound struct {
	event string
	args  []any
}

// client owns the single goroutine that writes to one connection, so a
// slow Emit only ever stalls its own queue.
type client struct {
	conn Conn
	out  chan outbound
	done chan struct{}
}

func newClient(c Conn) *client {
	cl := &client{conn: c, out: make(chan outbound, QueueSize), done: make(chan struct{})}
	go cl.pump()
	return cl
}

func (cl *client) pump() {
	for {
		select {
		case <-cl.done:
			return
		case m := <-cl.out:
			cl.conn.Emit(m.event, m.args...)
		}
	}
}

func (cl *client) send(event string, args []any) {
	select {
	case cl.out <- outbound{event: event, args: args}:
	default:
		log.Warn().Str("sid", cl.conn.ID()).Str("event", event).Msg("outbound queue full, dropping message")
	}
}

// Hub tracks live connections and implements game.Broadcaster on top of
// them. Emits are queued per connection and never block the caller.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	order   []string
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[c.ID()]; ok {
		close(old.done)
	} else {
		h.order = append(h.order, c.ID())
	}
	h.clients[c.ID()] = newClient(c)
}

func (h *Hub) Remove(sid string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cl, ok := h.clients[sid]
	if !ok {
		return
	}
	close(cl.done)
	delete(h.clients, sid)
	for i, id := range h.order {
		if id == sid {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) EmitTo(sid, event string, args ...any) {
	h.mu.RLock()
	cl := h.clients[sid]
	h.mu.RUnlock()
	if cl != nil {
		cl.send(event, args)
	}
}

func (h *Hub) Broadcast(event string, args ...any) {
	h.BroadcastExcept("", event, args...)
}

func (h *Hub) BroadcastExcept(sid, event string, args ...any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range h.order {
		if id == sid {
			continue
		}
		h.clients[id].send(event, args)
	}
}
