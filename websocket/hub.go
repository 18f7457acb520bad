// Package websocket pushes admin change events to connected dashboards.
// file: websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"wanderlust/logger"
)

// Hub tracks the open dashboard connections and fans broadcast messages out to them.
type Hub struct {
	broadcast  chan []byte
	register   chan *Connection
	unregister chan *Connection
	done       chan struct{}

	mu          sync.RWMutex
	connections map[*Connection]bool
}

func NewHub() *Hub {
	return &Hub{
		broadcast:   make(chan []byte, 64),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		done:        make(chan struct{}),
		connections: make(map[*Connection]bool),
	}
}

// HandleMessages runs the hub until ctx is done, then closes every connection's send channel.
func (h *Hub) HandleMessages(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.connections {
				close(c.send)
				delete(h.connections, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.connections[c] = true
			h.mu.Unlock()
			logger.Info.Printf("[Hub] %s connected (%d open)", c.username, h.Len())

		case c := <-h.unregister:
			h.mu.Lock()
			if h.connections[c] {
				delete(h.connections, c)
				close(c.send)
			}
			h.mu.Unlock()
			logger.Info.Printf("[Hub] %s disconnected", c.username)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.connections {
				select {
				case c.send <- msg:
				default:
					logger.Warn.Printf("Dropping broadcast message for %s", c.username)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues msg for every connection. It never blocks; when the queue is full the
// message is dropped, dashboards recover with an explicit refresh.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		logger.Warn.Println("[Hub.Broadcast] queue full, dropping message")
	}
}

// Len returns the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
