package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/models"
	"cardmock-backend/internal/supabase"
)

type EventsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewEventsHandler(dbClient *supabase.DatabaseClient) *EventsHandler {
	return &EventsHandler{
		dbClient: dbClient,
	}
}

// ListIntegrationEvents returns the org's recent outbound integration audit
// rows (Slack and friends).
func (h *EventsHandler) ListIntegrationEvents(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	events, err := h.dbClient.ListIntegrationEvents(p.OrgID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.IntegrationEventResponse, len(events))
	for i, e := range events {
		responses[i] = models.IntegrationEventResponse{
			ID:        e.ID.String(),
			Provider:  e.Provider,
			EventType: e.EventType,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		}
		if e.Detail.Valid {
			responses[i].Detail = e.Detail.String
		}
	}
	respondOK(c, http.StatusOK, responses)
}
