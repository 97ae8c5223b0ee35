package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/supabase"
	"cardmock-backend/internal/workflow"
)

type WorkflowsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewWorkflowsHandler(dbClient *supabase.DatabaseClient) *WorkflowsHandler {
	return &WorkflowsHandler{
		dbClient: dbClient,
	}
}

func workflowResponse(w *models.Workflow) models.WorkflowResponse {
	return models.WorkflowResponse{
		ID:         w.ID.String(),
		Name:       w.Name,
		Stages:     w.Stages,
		IsDefault:  w.IsDefault,
		IsArchived: w.IsArchived,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

// CreateWorkflow godoc
// @Summary     Create a workflow
// @Description Creates an org-scoped approval workflow with an ordered stage list. Stage orders must run 1..N with no gaps.
// @Tags        workflows
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       workflow body models.CreateWorkflowRequest true "Workflow definition"
// @Success     201 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /workflows [post]
func (h *WorkflowsHandler) CreateWorkflow(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondValidation(c, "workflow name is required")
		return
	}

	stages, err := workflow.ValidateStages(req.Stages)
	if err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	created, err := h.dbClient.CreateWorkflow(p.OrgID, req.Name, p.UserID, stages, req.IsDefault)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, workflowResponse(created))
}

func (h *WorkflowsHandler) ListWorkflows(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	includeArchived := c.Query("include_archived") == "true"
	workflows, err := h.dbClient.ListWorkflows(p.OrgID, includeArchived)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.WorkflowResponse, len(workflows))
	for i := range workflows {
		responses[i] = workflowResponse(&workflows[i])
	}
	respondOK(c, http.StatusOK, responses)
}

func (h *WorkflowsHandler) GetWorkflow(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	workflowID, ok := uuidParam(c, "workflow_id")
	if !ok {
		return
	}

	w, err := h.dbClient.GetWorkflow(workflowID, p.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, workflowResponse(w))
}

func (h *WorkflowsHandler) ArchiveWorkflow(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	workflowID, ok := uuidParam(c, "workflow_id")
	if !ok {
		return
	}

	if err := h.dbClient.ArchiveWorkflow(workflowID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "workflow archived"})
}

func (h *WorkflowsHandler) SetDefaultWorkflow(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	workflowID, ok := uuidParam(c, "workflow_id")
	if !ok {
		return
	}

	if err := h.dbClient.SetDefaultWorkflow(workflowID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "default workflow updated"})
}
