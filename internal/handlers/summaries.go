package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/summarize"
)

type SummariesHandler struct {
	summarizeClient *summarize.Client
}

func NewSummariesHandler(summarizeClient *summarize.Client) *SummariesHandler {
	return &SummariesHandler{
		summarizeClient: summarizeClient,
	}
}

// Summarize returns an AI summary of one document URL, or a change
// description when compare_url is supplied. Without an API key the feature is
// unavailable; nothing else in the system is affected.
func (h *SummariesHandler) Summarize(c *gin.Context) {
	if _, ok := principalFrom(c); !ok {
		return
	}

	var req models.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DocumentURL) == "" {
		respondValidation(c, "document_url is required")
		return
	}

	var summary string
	var err error
	if req.CompareURL != "" {
		summary, err = h.summarizeClient.DiffDocuments(c.Request.Context(), req.DocumentURL, req.CompareURL)
	} else {
		summary, err = h.summarizeClient.SummarizeDocument(c.Request.Context(), req.DocumentURL)
	}
	if err != nil {
		if errors.Is(err, summarize.ErrUnavailable) {
			respondError(c, apperrors.Upstream("summarization is unavailable", err))
			return
		}
		respondError(c, apperrors.Upstream("summarization failed", err))
		return
	}

	respondOK(c, http.StatusOK, models.SummaryResponse{Summary: summary})
}
