// Package websocket pushes realtime portal notifications to connected users.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
)

// Hub maintains the set of active clients and broadcasts notifications to them
type Hub struct {
	// Registered clients organized by role
	clients map[models.Role]map[*Client]bool

	// Notifications waiting to be fanned out
	broadcast chan models.Notification

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for listeners
	listenersMu sync.RWMutex

	// Listeners receive every notification, whether or not a client is connected
	listeners []chan models.Notification

	logger zerolog.Logger
	now    func() time.Time
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan models.Notification, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[models.Role]map[*Client]bool),
		listeners:  []chan models.Notification{},
		logger:     logger,
		now:        time.Now,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case n := <-h.broadcast:
			h.broadcastNotification(n)
		}
	}
}

// Notify queues n for delivery. It never blocks the caller: when the queue is full the
// notification is dropped and logged.
func (h *Hub) Notify(n models.Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = h.now()
	}
	select {
	case h.broadcast <- n:
	default:
		h.logger.Warn().Str("type", n.Type).Msg("Notification queue full, dropping notification")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.role]; !ok {
		h.clients[client.role] = make(map[*Client]bool)
	}
	h.clients[client.role][client] = true

	h.logger.Info().
		Str("role", string(client.role)).
		Int64("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.role]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.role)
	}

	h.logger.Info().
		Str("role", string(client.role)).
		Int64("userID", client.userID).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// broadcastNotification delivers n to the listeners and to every client whose role is in
// the audience. Slow clients are dropped.
func (h *Hub) broadcastNotification(n models.Notification) {
	h.notifyListeners(n)

	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Error().Err(err).Str("type", n.Type).Msg("Failed to marshal notification")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, role := range n.Audience {
		for client := range h.clients[role] {
			select {
			case client.send <- data:
				delivered++
			default:
				h.removeLocked(client)
			}
		}
	}

	h.logger.Debug().
		Str("type", n.Type).
		Int("clientCount", delivered).
		Msg("Notification broadcasted")
}

func (h *Hub) notifyListeners(n models.Notification) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- n:
		default:
			h.logger.Warn().Msg("Skipped slow notification listener")
		}
	}
}

// ClientsCount returns the number of connected clients with role, or all clients when
// role is empty
func (h *Hub) ClientsCount(role models.Role) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if role != "" {
		return len(h.clients[role])
	}
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

// AddListener registers a channel to receive all notifications
func (h *Hub) AddListener(listener chan models.Notification) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, listener)
}

// RemoveListener removes a listener from the hub
func (h *Hub) RemoveListener(listener chan models.Notification) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.listeners {
		if l == listener {
			h.listeners[i] = h.listeners[len(h.listeners)-1]
			h.listeners = h.listeners[:len(h.listeners)-1]
			break
		}
	}
}
