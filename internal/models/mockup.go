package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Mockup struct {
	ID                 uuid.UUID
	OrganizationID     string
	ProjectID          uuid.NullUUID
	Name               string
	ImageURL           sql.NullString
	StoragePath        sql.NullString
	FinalApprovedBy    sql.NullString
	FinalApprovedAt    sql.NullTime
	FinalApprovalNotes sql.NullString
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type MockupStageProgress struct {
	ID                uuid.UUID
	MockupID          uuid.UUID
	ProjectID         uuid.UUID
	StageOrder        int
	Status            string
	ApprovalsRequired int
	ApprovalsReceived int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type UserStageApproval struct {
	ID         uuid.UUID
	MockupID   uuid.UUID
	StageOrder int
	UserID     string
	UserName   string
	Decision   string
	Notes      sql.NullString
	CreatedAt  time.Time
}

// PendingReview is one mockup awaiting the caller's review, with stage
// metadata attached from the project's workflow.
type PendingReview struct {
	Mockup      Mockup
	ProjectID   uuid.UUID
	ProjectName string
	StageOrder  int
	StageName   string
	StageColor  string
}
