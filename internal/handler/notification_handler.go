package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitchpoint/orderdesk/internal/service"
	"github.com/stitchpoint/orderdesk/internal/sse"
)

// NotificationHandler serves the toast API and the SSE stream behind it.
type NotificationHandler struct {
	svc *service.NotificationService
	hub *sse.Hub
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(svc *service.NotificationService, hub *sse.Hub) *NotificationHandler {
	return &NotificationHandler{svc: svc, hub: hub}
}

// List GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	Success(c, h.svc.Active())
}

type broadcastRequest struct {
	Type     string `json:"type" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Sound    string `json:"sound"`
	Duration int64  `json:"duration"`
}

// Broadcast POST /notifications/broadcast
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	n := h.svc.Broadcast(c.Request.Context(), service.Notification{
		Type:       req.Type,
		Title:      req.Title,
		Message:    req.Message,
		Sound:      req.Sound,
		DurationMS: req.Duration,
	})
	Created(c, n)
}

// Stream GET /notifications/stream?token=xxx
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID := GetUserID(c)
	clientID := fmt.Sprintf("%s_%d", userID, time.Now().UnixNano())

	client := &sse.Client{
		ID:     clientID,
		UserID: userID,
		Events: make(chan sse.Event, 64),
	}

	h.hub.Register(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.Writer.WriteString(fmt.Sprintf("event: connected\ndata: {\"client_id\":%q,\"clients\":%d}\n\n", clientID, h.hub.ClientCount()))
	c.Writer.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			h.hub.Unregister(clientID)
			return
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			c.Writer.WriteString(fmt.Sprintf("event: %s\ndata: %s\n\n", event.EventType, event.Data))
			c.Writer.Flush()
		case <-heartbeat.C:
			c.Writer.WriteString(": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}
