package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/models"
	"cardmock-backend/internal/services"
	"cardmock-backend/internal/supabase"
)

// ShareAdminHandler manages share links on behalf of authenticated org
// members; anonymous access goes through PublicShareHandler.
type ShareAdminHandler struct {
	dbClient     *supabase.DatabaseClient
	shareService *services.ShareService
}

func NewShareAdminHandler(dbClient *supabase.DatabaseClient, shareService *services.ShareService) *ShareAdminHandler {
	return &ShareAdminHandler{
		dbClient:     dbClient,
		shareService: shareService,
	}
}

func shareLinkResponse(l *models.ShareLink) models.ShareLinkResponse {
	resp := models.ShareLinkResponse{
		ID:                    l.ID.String(),
		MockupID:              l.MockupID.String(),
		Token:                 l.Token,
		IdentityRequiredLevel: l.IdentityRequiredLevel,
		UseCount:              l.UseCount,
		HasPassword:           l.PasswordHash.Valid,
		CreatedAt:             l.CreatedAt,
	}
	if l.ExpiresAt.Valid {
		t := l.ExpiresAt.Time
		resp.ExpiresAt = &t
	}
	if l.MaxUses.Valid {
		resp.MaxUses = int(l.MaxUses.Int64)
	}
	return resp
}

func (h *ShareAdminHandler) CreateShareLink(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	var req models.CreateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = models.CreateShareLinkRequest{}
	}

	link, err := h.shareService.CreateLink(p.OrgID, p.UserID, mockupID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, shareLinkResponse(link))
}

func (h *ShareAdminHandler) ListShareLinks(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	links, err := h.dbClient.ListShareLinksForMockup(mockupID, p.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ShareLinkResponse, len(links))
	for i := range links {
		responses[i] = shareLinkResponse(&links[i])
	}
	respondOK(c, http.StatusOK, responses)
}

func (h *ShareAdminHandler) RevokeShareLink(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	linkID, ok := uuidParam(c, "link_id")
	if !ok {
		return
	}

	if err := h.dbClient.RevokeShareLink(linkID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "share link revoked"})
}
