package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Identity capture levels for anonymous share-link callers.
const (
	IdentityNone    = "none"
	IdentityComment = "comment"
	IdentityApprove = "approve"
)

type ShareLink struct {
	ID                    uuid.UUID
	MockupID              uuid.UUID
	OrganizationID        string
	Token                 string
	PasswordHash          sql.NullString
	IdentityRequiredLevel string
	ExpiresAt             sql.NullTime
	MaxUses               sql.NullInt64
	UseCount              int
	RevokedAt             sql.NullTime
	CreatedBy             string
	CreatedAt             time.Time
}

type ShareLinkView struct {
	ID          uuid.UUID
	ShareLinkID uuid.UUID
	ViewedAt    time.Time
	IPAddress   sql.NullString
	UserAgent   sql.NullString
}

// PublicReviewer is an anonymous caller who has supplied name+email through
// the identity gate, keyed by an opaque session token separate from the share
// token.
type PublicReviewer struct {
	ID           uuid.UUID
	ShareLinkID  uuid.UUID
	SessionToken string
	Name         string
	Email        string
	CreatedAt    time.Time
}

// Public feedback kinds.
const (
	FeedbackComment  = "comment"
	FeedbackApproval = "approval"
)

type PublicFeedback struct {
	ID            uuid.UUID
	ShareLinkID   uuid.UUID
	MockupID      uuid.UUID
	Kind          string
	ReviewerName  sql.NullString
	ReviewerEmail sql.NullString
	Body          sql.NullString
	CreatedAt     time.Time
}

type IntegrationEvent struct {
	ID             uuid.UUID
	OrganizationID string
	Provider       string
	EventType      string
	Status         string
	Detail         sql.NullString
	CreatedAt      time.Time
}
