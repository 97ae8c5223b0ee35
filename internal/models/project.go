package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID             uuid.UUID
	OrganizationID string
	Name           string
	ClientID       uuid.NullUUID
	WorkflowID     uuid.NullUUID
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type StageReviewer struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	StageOrder int
	UserID     string
	UserName   string
	CreatedAt  time.Time
}

// ReviewerAssignment is one (project, stage) a user reviews; drives the
// pending-reviews query.
type ReviewerAssignment struct {
	ProjectID  uuid.UUID
	StageOrder int
}
