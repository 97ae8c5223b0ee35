package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/models"
	"cardmock-backend/internal/services"
)

type ReviewsHandler struct {
	reviewService *services.ReviewService
}

func NewReviewsHandler(reviewService *services.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{
		reviewService: reviewService,
	}
}

// ListPending returns every mockup waiting on the caller's review. Dashboard
// data: partial results are fine, a broken project is skipped server-side.
func (h *ReviewsHandler) ListPending(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	pending, err := h.reviewService.PendingForUser(p.OrgID, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.PendingReviewResponse, len(pending))
	for i, review := range pending {
		responses[i] = models.PendingReviewResponse{
			Mockup:      mockupResponse(&review.Mockup),
			ProjectID:   review.ProjectID.String(),
			ProjectName: review.ProjectName,
			StageOrder:  review.StageOrder,
			StageName:   review.StageName,
			StageColor:  review.StageColor,
		}
	}
	respondOK(c, http.StatusOK, responses)
}
