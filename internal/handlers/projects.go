package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/models"
	"cardmock-backend/internal/supabase"
)

type ProjectsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewProjectsHandler(dbClient *supabase.DatabaseClient) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient: dbClient,
	}
}

func projectResponse(project *models.Project) models.ProjectResponse {
	resp := models.ProjectResponse{
		ID:        project.ID.String(),
		Name:      project.Name,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
	if project.ClientID.Valid {
		resp.ClientID = project.ClientID.UUID.String()
	}
	if project.WorkflowID.Valid {
		resp.WorkflowID = project.WorkflowID.UUID.String()
	}
	return resp
}

func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondValidation(c, "project name is required")
		return
	}

	clientID, err := parseNullUUID(req.ClientID, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	workflowID, err := parseNullUUID(req.WorkflowID, "workflow_id")
	if err != nil {
		respondError(c, err)
		return
	}

	// Referenced entities must live in the caller's org.
	if clientID.Valid {
		if _, err := h.dbClient.GetClient(clientID.UUID, p.OrgID); err != nil {
			respondError(c, err)
			return
		}
	}
	if workflowID.Valid {
		if _, err := h.dbClient.GetWorkflow(workflowID.UUID, p.OrgID); err != nil {
			respondError(c, err)
			return
		}
	}

	project, err := h.dbClient.CreateProject(p.OrgID, strings.TrimSpace(req.Name), p.UserID, clientID, workflowID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, projectResponse(project))
}

func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	projects, err := h.dbClient.ListProjects(p.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = projectResponse(&projects[i])
	}
	respondOK(c, http.StatusOK, responses)
}

func (h *ProjectsHandler) GetProject(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	project, err := h.dbClient.GetProject(projectID, p.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, projectResponse(project))
}

func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	clientID, err := parseNullUUID(req.ClientID, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	workflowID, err := parseNullUUID(req.WorkflowID, "workflow_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if workflowID.Valid {
		if _, err := h.dbClient.GetWorkflow(workflowID.UUID, p.OrgID); err != nil {
			respondError(c, err)
			return
		}
	}

	project, err := h.dbClient.UpdateProject(projectID, p.OrgID, strings.TrimSpace(req.Name), clientID, workflowID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, projectResponse(project))
}

func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteProject(projectID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "project deleted"})
}
