package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/models"
	"cardmock-backend/internal/services"
)

type ApprovalsHandler struct {
	approvalService *services.ApprovalService
}

func NewApprovalsHandler(approvalService *services.ApprovalService) *ApprovalsHandler {
	return &ApprovalsHandler{
		approvalService: approvalService,
	}
}

// SubmitForReview opens a workflow stage of the mockup for review.
func (h *ApprovalsHandler) SubmitForReview(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	var req models.SubmitForReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Empty body means "submit the next unapproved stage".
		req.StageOrder = 0
	}

	progress, err := h.approvalService.SubmitForReview(p.OrgID, mockupID, req.StageOrder)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"mockup_id":   progress.MockupID.String(),
		"stage_order": progress.StageOrder,
		"status":      progress.Status,
	})
}

// RecordDecision godoc
// @Summary     Record a reviewer decision
// @Description Stores one reviewer's approval or rejection at a stage. A reviewer can vote once per stage; enough approvals advance the mockup to the next stage.
// @Tags        approvals
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       mockup_id path string true "Mockup ID (UUID)"
// @Param       decision body models.DecisionRequest true "Reviewer decision"
// @Success     200 {object} models.Envelope
// @Failure     403 {object} models.Envelope
// @Failure     409 {object} models.Envelope
// @Router      /mockups/{mockup_id}/decisions [post]
func (h *ApprovalsHandler) RecordDecision(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	var req models.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	result, err := h.approvalService.RecordDecision(p.OrgID, p.UserID, p.UserName, mockupID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"stage_order":        result.Progress.StageOrder,
		"status":             result.Progress.Status,
		"approvals_received": result.Progress.ApprovalsReceived,
		"approvals_required": result.Progress.ApprovalsRequired,
		"stage_complete":     result.StageComplete,
		"advanced_to":        result.AdvancedTo,
		"all_approved":       result.AllApproved,
	})
}

// GetProgress returns the aggregated review state of a mockup.
func (h *ApprovalsHandler) GetProgress(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	progress, err := h.approvalService.GetProgress(p.OrgID, mockupID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, progress)
}

// FinalApprove records the terminal sign-off once every stage is approved.
func (h *ApprovalsHandler) FinalApprove(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	var req models.FinalApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Notes = ""
	}

	mockup, err := h.approvalService.FinalApprove(p.OrgID, p.UserID, mockupID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, mockupResponse(mockup))
}
