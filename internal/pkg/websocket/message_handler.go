package websocket

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
)

// MessageHandler keeps the most recent notifications so users who connect later can
// catch up on what they missed.
type MessageHandler struct {
	hub    *Hub
	mu     sync.RWMutex
	recent []models.Notification
	limit  int
	logger zerolog.Logger
}

// NewMessageHandler creates a MessageHandler remembering up to limit notifications
func NewMessageHandler(hub *Hub, limit int, logger zerolog.Logger) *MessageHandler {
	if limit <= 0 {
		limit = 50
	}
	return &MessageHandler{hub: hub, limit: limit, logger: logger}
}

// Start begins recording notifications from the hub. The returned func stops it.
func (h *MessageHandler) Start() (stop func()) {
	ch := make(chan models.Notification, 16)
	h.hub.AddListener(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := range ch {
			h.record(n)
		}
	}()

	return func() {
		h.hub.RemoveListener(ch)
		close(ch)
		<-done
	}
}

func (h *MessageHandler) record(n models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, n)
	if len(h.recent) > h.limit {
		h.recent = h.recent[len(h.recent)-h.limit:]
	}
	h.logger.Debug().Str("type", n.Type).Msg("Notification recorded")
}

// Recent returns the notifications visible to role, newest first
func (h *MessageHandler) Recent(role models.Role) []models.Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := []models.Notification{}
	for i := len(h.recent) - 1; i >= 0; i-- {
		for _, r := range h.recent[i].Audience {
			if r == role {
				out = append(out, h.recent[i])
				break
			}
		}
	}
	return out
}
