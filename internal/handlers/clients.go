package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/models"
	"cardmock-backend/internal/supabase"
)

// Client names feed file paths and UI labels downstream; keep them bounded.
const maxClientNameLength = 200

type ClientsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewClientsHandler(dbClient *supabase.DatabaseClient) *ClientsHandler {
	return &ClientsHandler{
		dbClient: dbClient,
	}
}

func clientResponse(client *models.Client) models.ClientResponse {
	return models.ClientResponse{
		ID:           client.ID.String(),
		Name:         client.Name,
		ContactEmail: client.ContactEmail,
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	}
}

func validateClientName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "client name is required", false
	}
	if len(name) > maxClientNameLength {
		return "client name must be 200 characters or fewer", false
	}
	return "", true
}

func (h *ClientsHandler) CreateClient(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if msg, ok := validateClientName(req.Name); !ok {
		respondValidation(c, msg)
		return
	}

	client, err := h.dbClient.CreateClient(p.OrgID, strings.TrimSpace(req.Name), req.ContactEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, clientResponse(client))
}

func (h *ClientsHandler) ListClients(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	clients, err := h.dbClient.ListClients(p.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = clientResponse(&clients[i])
	}
	respondOK(c, http.StatusOK, responses)
}

func (h *ClientsHandler) GetClient(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "client_id")
	if !ok {
		return
	}

	client, err := h.dbClient.GetClient(clientID, p.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, clientResponse(client))
}

func (h *ClientsHandler) UpdateClient(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "client_id")
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if msg, ok := validateClientName(req.Name); !ok {
		respondValidation(c, msg)
		return
	}

	client, err := h.dbClient.UpdateClient(clientID, p.OrgID, strings.TrimSpace(req.Name), req.ContactEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, clientResponse(client))
}

func (h *ClientsHandler) DeleteClient(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "client_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteClient(clientID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "client deleted"})
}
