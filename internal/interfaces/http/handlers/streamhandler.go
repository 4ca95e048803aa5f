package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"autocrm/internal/application/ticket/services"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/constants"
	"autocrm/internal/shared/logger"
)

const streamKeepaliveInterval = 30 * time.Second

// StreamHandler bridges the in-process ticket feed to text/event-stream.
// Each connection gets its own scoped subscription; the feed drops events for
// subscribers that cannot keep up, and the client recovers via refetch.
type StreamHandler struct {
	feed   *services.TicketFeed
	logger logger.Interface
}

func NewStreamHandler(feed *services.TicketFeed, logger logger.Interface) *StreamHandler {
	return &StreamHandler{
		feed:   feed,
		logger: logger,
	}
}

// StreamTickets handles GET /api/stream/tickets
// An optional ?ticket_id= narrows the subscription to one ticket for detail
// views.
func (h *StreamHandler) StreamTickets(c *gin.Context) {
	scope := services.FeedScope{
		OrganizationID: c.GetUint(constants.ContextKeyOrgID),
		UserID:         c.GetUint(constants.ContextKeyUserID),
		Role:           authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	}

	if raw := c.Query("ticket_id"); raw != "" {
		ticketID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || ticketID == 0 {
			c.JSON(400, gin.H{"error": "invalid ticket_id"})
			return
		}
		scope.TicketID = uint(ticketID)
	}

	events, cancel := h.feed.Subscribe(scope)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if _, err := c.Writer.WriteString(": connected\n\n"); err != nil {
		return
	}
	c.Writer.Flush()

	h.logger.Debugw("ticket stream opened",
		"user_id", scope.UserID,
		"organization_id", scope.OrganizationID,
		"ticket_id", scope.TicketID)

	keepalive := time.NewTicker(streamKeepaliveInterval)
	defer keepalive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			h.logger.Debugw("ticket stream closed by client", "user_id", scope.UserID)
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Errorw("failed to marshal feed event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.Type, payload); err != nil {
				h.logger.Debugw("ticket stream write failed", "user_id", scope.UserID, "error", err)
				return
			}
			c.Writer.Flush()

		case <-keepalive.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
