package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/stonelantern/delvegen/internal/logger"
)

// Hub tracks connected websocket clients and pushes each new result to all
// of them. Writes are serialized under the hub lock; gorilla connections
// allow only one concurrent writer.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends v as one JSON text message to every client. Clients whose
// write fails are dropped.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warning("dropping websocket client", "remote_addr", conn.RemoteAddr().String(), "error", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// closeAll disconnects every client, used during shutdown.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
