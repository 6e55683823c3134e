package websocket

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. Browsers are only accepted from origins;
// requests without an Origin header (CLI tools) are always accepted.
func NewHandler(hub *Hub, origins []string, logger zerolog.Logger) *Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to realtime notifications
// @Description Upgrades the connection to a WebSocket that receives drive, exam and resource announcements for the user's role
// @Tags notifications
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /ws/notifications [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")
	id, idOK := userID.(int64)
	r, roleOK := role.(models.Role)
	if !idOK || !roleOK {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", id).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		userID: id,
		role:   r,
		logger: h.logger,
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
