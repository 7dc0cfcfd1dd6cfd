package websocket

import (
	"sync"

	"saedam-be/internal/pkg/logger"
)

type Hub struct {
	// Registered clients map: anonymous id -> list of clients (multi-device)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.AnonymousID] = append(h.clients[client.AnonymousID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"anonymous_id": client.AnonymousID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.AnonymousID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.AnonymousID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.AnonymousID]) == 0 {
					delete(h.clients, client.AnonymousID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"anonymous_id": client.AnonymousID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser delivers a serialized event to every connection held by the
// given anonymous id. Unknown ids are ignored: progression events are
// advisory and the client resyncs its profile on the next request anyway.
func (h *Hub) SendToUser(anonymousID string, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[anonymousID]...)
	h.mu.RUnlock()

	var stale []*Client
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"anonymous_id": anonymousID})
			stale = append(stale, client)
		}
	}

	// Run owns channel close; unregistering here would race its Lock.
	for _, client := range stale {
		h.unregister <- client
	}
}

// Broadcast sends a serialized event to ALL connected clients.
func (h *Hub) Broadcast(data []byte) {
	var stale []*Client

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				stale = append(stale, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregister <- client
	}
}
