package models

import (
	"time"

	"cardmock-backend/internal/workflow"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Envelope is the uniform response wrapper: {success, data?/error?}.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type WorkflowResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Stages     workflow.StageList `json:"stages"`
	IsDefault  bool               `json:"is_default"`
	IsArchived bool               `json:"is_archived"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProjectResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ClientID   string    `json:"client_id,omitempty"`
	WorkflowID string    `json:"workflow_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ReviewerResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	StageOrder int       `json:"stage_order"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewersByStageResponse maps stage_order to that stage's reviewers in
// creation order.
type ReviewersByStageResponse struct {
	Reviewers map[int][]ReviewerResponse `json:"reviewers"`
}

type MockupResponse struct {
	ID                 string     `json:"id"`
	ProjectID          string     `json:"project_id,omitempty"`
	Name               string     `json:"name"`
	ImageURL           string     `json:"image_url,omitempty"`
	FinalApprovedBy    string     `json:"final_approved_by,omitempty"`
	FinalApprovedAt    *time.Time `json:"final_approved_at,omitempty"`
	FinalApprovalNotes string     `json:"final_approval_notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type PendingReviewResponse struct {
	Mockup      MockupResponse `json:"mockup"`
	ProjectID   string         `json:"project_id"`
	ProjectName string         `json:"project_name"`
	StageOrder  int            `json:"stage_order"`
	StageName   string         `json:"stage_name"`
	StageColor  string         `json:"stage_color"`
}

type ShareLinkResponse struct {
	ID                    string     `json:"id"`
	MockupID              string     `json:"mockup_id"`
	Token                 string     `json:"token"`
	IdentityRequiredLevel string     `json:"identity_required_level"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
	MaxUses               int        `json:"max_uses,omitempty"`
	UseCount              int        `json:"use_count"`
	HasPassword           bool       `json:"has_password"`
	CreatedAt             time.Time  `json:"created_at"`
}

// SharedMockupResponse is the payload an anonymous caller sees after passing
// the share-link gates.
type SharedMockupResponse struct {
	MockupID              string `json:"mockup_id"`
	Name                  string `json:"name"`
	ImageURL              string `json:"image_url,omitempty"`
	IdentityRequiredLevel string `json:"identity_required_level"`
	PasswordRequired      bool   `json:"password_required"`
}

type IdentifyResponse struct {
	SessionToken string `json:"session_token"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type IntegrationEventResponse struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	EventType string    `json:"event_type"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
