package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/models"
	"cardmock-backend/internal/services"
)

// PublicShareHandler serves anonymous callers holding a share token. No auth
// middleware runs on these routes; the token is the credential.
type PublicShareHandler struct {
	shareService *services.ShareService
}

func NewPublicShareHandler(shareService *services.ShareService) *PublicShareHandler {
	return &PublicShareHandler{
		shareService: shareService,
	}
}

// Access godoc
// @Summary     View a shared mockup
// @Description Resolves a share token. Password-protected links withhold the payload until the password is verified; each successful view counts against max_uses.
// @Tags        public
// @Produce     json
// @Param       token path string true "Share token"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /public/share/{token} [get]
func (h *PublicShareHandler) Access(c *gin.Context) {
	payload, err := h.shareService.Access(c.Param("token"), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payload)
}

func (h *PublicShareHandler) Verify(c *gin.Context) {
	var req models.VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		respondValidation(c, "password is required")
		return
	}

	payload, err := h.shareService.Verify(c.Param("token"), req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payload)
}

func (h *PublicShareHandler) Identify(c *gin.Context) {
	var req models.IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	reviewer, err := h.shareService.Identify(c.Param("token"), req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, models.IdentifyResponse{SessionToken: reviewer.SessionToken})
}

func (h *PublicShareHandler) Comment(c *gin.Context) {
	var req models.PublicCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	feedback, err := h.shareService.Comment(c.Param("token"), req.SessionToken, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"id": feedback.ID.String()})
}

func (h *PublicShareHandler) Approve(c *gin.Context) {
	var req models.PublicApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = models.PublicApproveRequest{}
	}

	feedback, err := h.shareService.Approve(c.Param("token"), req.SessionToken)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"id": feedback.ID.String()})
}
