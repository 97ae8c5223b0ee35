package handlers

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/supabase"
)

type MockupsHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewMockupsHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient) *MockupsHandler {
	return &MockupsHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

func mockupResponse(m *models.Mockup) models.MockupResponse {
	resp := models.MockupResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ProjectID.Valid {
		resp.ProjectID = m.ProjectID.UUID.String()
	}
	if m.ImageURL.Valid {
		resp.ImageURL = m.ImageURL.String
	}
	if m.FinalApprovedBy.Valid {
		resp.FinalApprovedBy = m.FinalApprovedBy.String
	}
	if m.FinalApprovedAt.Valid {
		t := m.FinalApprovedAt.Time
		resp.FinalApprovedAt = &t
	}
	if m.FinalApprovalNotes.Valid {
		resp.FinalApprovalNotes = m.FinalApprovalNotes.String
	}
	return resp
}

func (h *MockupsHandler) CreateMockup(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.CreateMockupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondValidation(c, "mockup name is required")
		return
	}

	projectID, err := parseNullUUID(req.ProjectID, "project_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if projectID.Valid {
		if _, err := h.dbClient.GetProject(projectID.UUID, p.OrgID); err != nil {
			respondError(c, err)
			return
		}
	}

	mockup, err := h.dbClient.CreateMockup(p.OrgID, strings.TrimSpace(req.Name), req.ImageURL, p.UserID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, mockupResponse(mockup))
}

func (h *MockupsHandler) ListMockups(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	projectID, err := parseNullUUID(c.Query("project_id"), "project_id")
	if err != nil {
		respondError(c, err)
		return
	}

	mockups, err := h.dbClient.ListMockups(p.OrgID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.MockupResponse, len(mockups))
	for i := range mockups {
		responses[i] = mockupResponse(&mockups[i])
	}
	respondOK(c, http.StatusOK, responses)
}

func (h *MockupsHandler) GetMockup(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	mockup, err := h.dbClient.GetMockup(mockupID, p.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, mockupResponse(mockup))
}

func (h *MockupsHandler) UpdateMockup(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	var req models.UpdateMockupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondValidation(c, "mockup name is required")
		return
	}

	mockup, err := h.dbClient.UpdateMockupName(mockupID, p.OrgID, strings.TrimSpace(req.Name))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, mockupResponse(mockup))
}

// MoveMockup re-assigns the mockup to another project. An empty project_id
// unassigns it. Review progress does not survive the move.
func (h *MockupsHandler) MoveMockup(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	var req models.MoveMockupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	projectID, err := parseNullUUID(req.ProjectID, "project_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if projectID.Valid {
		if _, err := h.dbClient.GetProject(projectID.UUID, p.OrgID); err != nil {
			respondError(c, err)
			return
		}
	}

	mockup, err := h.dbClient.MoveMockup(mockupID, p.OrgID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, mockupResponse(mockup))
}

func (h *MockupsHandler) DuplicateMockup(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	mockup, err := h.dbClient.DuplicateMockup(mockupID, p.OrgID, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, mockupResponse(mockup))
}

// UploadImage stores the mockup's image asset in Supabase Storage and points
// image_url at the public object.
func (h *MockupsHandler) UploadImage(c *gin.Context) {
	if h.storageClient == nil {
		respondError(c, apperrors.Upstream("asset storage is not configured", nil))
		return
	}
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	if _, err := h.dbClient.GetMockup(mockupID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondValidation(c, "image file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".webp" {
		respondValidation(c, "image must be a png, jpg, or webp file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.Wrap("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, apperrors.Wrap("failed to read uploaded file", err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	storagePath, publicURL, err := h.storageClient.UploadMockupImage(p.OrgID, mockupID, fileHeader.Filename, contentType, data)
	if err != nil {
		respondError(c, apperrors.Upstream("failed to store mockup image", err))
		return
	}

	mockup, err := h.dbClient.UpdateMockupImage(mockupID, p.OrgID, publicURL, storagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, mockupResponse(mockup))
}

func (h *MockupsHandler) DeleteMockup(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}
	mockupID, ok := uuidParam(c, "mockup_id")
	if !ok {
		return
	}

	// Stored assets go first; a storage failure is logged but does not keep
	// the mockup alive.
	if h.storageClient != nil {
		if err := h.storageClient.DeleteMockupAssets(p.OrgID, mockupID); err != nil {
			log.Printf("Failed to delete assets for mockup %s: %v", mockupID, err)
		}
	}

	if err := h.dbClient.DeleteMockup(mockupID, p.OrgID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "mockup deleted"})
}
