package handlers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/requestdata"
	"github.com/agrisight/agrisight-backend/internal/sse"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type RealtimeHandler struct {
	log     *logger.Logger
	hub     *sse.SSEHub
	mu      sync.Mutex
	clients map[uuid.UUID]*sse.SSEClient
}

func NewRealtimeHandler(log *logger.Logger, hub *sse.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{
		log:     log.With("handler", "RealtimeHandler"),
		hub:     hub,
		clients: make(map[uuid.UUID]*sse.SSEClient),
	}
}

// GET /api/sse/stream
// Streams live sensor events. Every stream starts subscribed to the caller's
// own sensor channel and the public feed.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf("missing identity"))
		return
	}

	client := h.hub.NewSSEClient(rd.UserID)
	h.hub.AddChannel(client, sse.UserSensorChannel(rd.UserID))
	h.hub.AddChannel(client, sse.SensorPublicChannel)

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client.ID)
		h.mu.Unlock()
		h.hub.CloseClient(client)
	}()

	c.Writer.Header().Set("X-SSE-Client-ID", client.ID.String())
	h.hub.ServeHTTP(c.Writer, c.Request, client)
}

// POST /api/sse/subscribe
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	h.updateSubscription(c, true)
}

// POST /api/sse/unsubscribe
func (h *RealtimeHandler) Unsubscribe(c *gin.Context) {
	h.updateSubscription(c, false)
}

func (h *RealtimeHandler) updateSubscription(c *gin.Context, add bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf("missing identity"))
		return
	}

	var body struct {
		ClientID uuid.UUID `json:"clientId" binding:"required"`
		Channel  string    `json:"channel" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, err)
		return
	}

	// Only the caller's own feed or the public feed can be joined.
	if body.Channel != sse.SensorPublicChannel && body.Channel != sse.UserSensorChannel(rd.UserID) && rd.Role != types.RoleAdmin {
		RespondError(c, http.StatusForbidden, CodeForbidden, fmt.Errorf("channel not permitted"))
		return
	}

	h.mu.Lock()
	client, ok := h.clients[body.ClientID]
	h.mu.Unlock()
	if !ok || client.UserID != rd.UserID {
		RespondError(c, http.StatusNotFound, CodeNotFound, fmt.Errorf("unknown stream client"))
		return
	}

	if add {
		h.hub.AddChannel(client, body.Channel)
	} else {
		h.hub.RemoveChannel(client, body.Channel)
	}
	RespondOK(c, gin.H{"channel": body.Channel, "subscribed": add})
}
