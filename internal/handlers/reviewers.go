package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/supabase"
)

type ReviewersHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewReviewersHandler(dbClient *supabase.DatabaseClient) *ReviewersHandler {
	return &ReviewersHandler{
		dbClient: dbClient,
	}
}

func reviewerResponse(r *models.StageReviewer) models.ReviewerResponse {
	return models.ReviewerResponse{
		ID:         r.ID.String(),
		ProjectID:  r.ProjectID.String(),
		StageOrder: r.StageOrder,
		UserID:     r.UserID,
		UserName:   r.UserName,
		CreatedAt:  r.CreatedAt,
	}
}

// AddReviewer godoc
// @Summary     Register a stage reviewer
// @Description Attaches a user as a reviewer of one stage within a project. Registering the same user twice for a stage is a conflict.
// @Tags        reviewers
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       reviewer body models.AddReviewerRequest true "Reviewer assignment"
// @Success     201 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Failure     409 {object} models.Envelope
// @Router      /projects/{project_id}/reviewers [post]
func (h *ReviewersHandler) AddReviewer(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	var req models.AddReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.UserName) == "" {
		respondValidation(c, "user_id and user_name are required")
		return
	}

	// The stage must exist in the project's workflow; a project without a
	// workflow has no stages to review.
	wf, err := h.dbClient.GetProjectWorkflow(projectID, p.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !wf.Stages.HasOrder(req.StageOrder) {
		respondError(c, apperrors.Validation(
			fmt.Sprintf("stage %d does not exist in the project's workflow", req.StageOrder)))
		return
	}

	reviewer, err := h.dbClient.AddReviewer(projectID, req.StageOrder, req.UserID, req.UserName)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, reviewerResponse(reviewer))
}

func (h *ReviewersHandler) ListReviewers(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	if _, err := h.dbClient.GetProject(projectID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}

	byStage, err := h.dbClient.ListReviewersByStage(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.ReviewersByStageResponse{
		Reviewers: make(map[int][]models.ReviewerResponse, len(byStage)),
	}
	for stageOrder, reviewers := range byStage {
		group := make([]models.ReviewerResponse, len(reviewers))
		for i := range reviewers {
			group[i] = reviewerResponse(&reviewers[i])
		}
		resp.Reviewers[stageOrder] = group
	}
	respondOK(c, http.StatusOK, resp)
}

// RemoveReviewer deletes a reviewer assignment. The row must belong to the
// project named in the path; a mismatch is a 404 and the row is untouched.
func (h *ReviewersHandler) RemoveReviewer(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}
	reviewerID, ok := uuidParam(c, "reviewer_id")
	if !ok {
		return
	}

	if _, err := h.dbClient.GetProject(projectID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.dbClient.RemoveReviewer(reviewerID, projectID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "reviewer removed"})
}
