package models

import (
	"time"

	"github.com/google/uuid"

	"cardmock-backend/internal/workflow"
)

type Workflow struct {
	ID             uuid.UUID
	OrganizationID string
	Name           string
	Stages         workflow.StageList
	IsDefault      bool
	IsArchived     bool
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Client struct {
	ID             uuid.UUID
	OrganizationID string
	Name           string
	ContactEmail   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
