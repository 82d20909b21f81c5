package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_events"
)

// EventsHandler handles HTTP requests for outbox events.
type EventsHandler struct {
	listEvents *list_events.Query
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(listEvents *list_events.Query) *EventsHandler {
	return &EventsHandler{
		listEvents: listEvents,
	}
}

// List handles GET /api/v1/events.
func (h *EventsHandler) List(c *gin.Context) {
	req := &list_events.Request{
		EventType:   c.Query("event_type"),
		AggregateID: c.Query("aggregate_id"),
		Status:      c.Query("status"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	events, err := h.listEvents.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := ListEventsResponse{Events: make([]Event, 0, len(events)), TotalCount: len(events)}
	for _, e := range events {
		resp.Events = append(resp.Events, toEvent(e))
	}
	c.JSON(http.StatusOK, resp)
}
