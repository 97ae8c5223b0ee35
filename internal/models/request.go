package models

import "cardmock-backend/internal/workflow"

type CreateWorkflowRequest struct {
	Name      string           `json:"name"`
	Stages    []workflow.Stage `json:"stages"`
	IsDefault bool             `json:"is_default,omitempty"`
}

type CreateClientRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
}

type UpdateClientRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
}

type CreateProjectRequest struct {
	Name       string `json:"name"`
	ClientID   string `json:"client_id,omitempty"`
	WorkflowID string `json:"workflow_id,omitempty"`
}

type UpdateProjectRequest struct {
	Name       string `json:"name,omitempty"`
	ClientID   string `json:"client_id,omitempty"`
	WorkflowID string `json:"workflow_id,omitempty"`
}

type AddReviewerRequest struct {
	StageOrder int    `json:"stage_order"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
}

type CreateMockupRequest struct {
	Name      string `json:"name"`
	ProjectID string `json:"project_id,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

type UpdateMockupRequest struct {
	Name string `json:"name"`
}

// MoveMockupRequest re-assigns a mockup to another project. An empty
// project_id unassigns it.
type MoveMockupRequest struct {
	ProjectID string `json:"project_id"`
}

type SubmitForReviewRequest struct {
	// StageOrder is optional; when omitted the first unapproved stage is
	// submitted.
	StageOrder int `json:"stage_order,omitempty"`
}

type DecisionRequest struct {
	StageOrder int    `json:"stage_order"`
	Decision   string `json:"decision"` // "approved" or "rejected"
	Notes      string `json:"notes,omitempty"`
}

type FinalApprovalRequest struct {
	Notes string `json:"notes,omitempty"`
}

type CreateShareLinkRequest struct {
	ExpiresAt             string `json:"expires_at,omitempty"` // RFC3339
	MaxUses               int    `json:"max_uses,omitempty"`
	Password              string `json:"password,omitempty"`
	IdentityRequiredLevel string `json:"identity_required_level,omitempty"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

type IdentifyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PublicCommentRequest struct {
	SessionToken string `json:"session_token,omitempty"`
	Body         string `json:"body"`
}

type PublicApproveRequest struct {
	SessionToken string `json:"session_token,omitempty"`
}

type SummarizeRequest struct {
	DocumentURL string `json:"document_url"`
	// CompareURL, when set, switches the request to a diff of the two
	// documents.
	CompareURL string `json:"compare_url,omitempty"`
}
