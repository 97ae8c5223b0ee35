package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/workflow"
)

func (d *DatabaseClient) CreateWorkflow(orgID, name, createdBy string, stages workflow.StageList, isDefault bool) (*models.Workflow, error) {
	stagesJSON, err := json.Marshal(stages)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stages: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Only one default workflow per organization.
	if isDefault {
		if _, err := tx.Exec(`
			UPDATE workflows SET is_default = FALSE, updated_at = NOW()
			WHERE organization_id = $1 AND is_default = TRUE
		`, orgID); err != nil {
			return nil, fmt.Errorf("failed to clear default workflow: %w", err)
		}
	}

	var w models.Workflow
	var rawStages []byte
	err = tx.QueryRow(`
		INSERT INTO workflows (organization_id, name, stages, is_default, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, organization_id, name, stages, is_default, is_archived, created_by, created_at, updated_at
	`, orgID, name, stagesJSON, isDefault, createdBy).Scan(
		&w.ID, &w.OrganizationID, &w.Name, &rawStages,
		&w.IsDefault, &w.IsArchived, &w.CreatedBy, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	if w.Stages, err = decodeStages(rawStages); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit workflow: %w", err)
	}

	return &w, nil
}

func (d *DatabaseClient) GetWorkflow(workflowID uuid.UUID, orgID string) (*models.Workflow, error) {
	var w models.Workflow
	var rawStages []byte
	err := d.db.QueryRow(`
		SELECT id, organization_id, name, stages, is_default, is_archived, created_by, created_at, updated_at
		FROM workflows
		WHERE id = $1 AND organization_id = $2
	`, workflowID, orgID).Scan(
		&w.ID, &w.OrganizationID, &w.Name, &rawStages,
		&w.IsDefault, &w.IsArchived, &w.CreatedBy, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err, "workflow not found", "")
	}

	if w.Stages, err = decodeStages(rawStages); err != nil {
		return nil, err
	}
	return &w, nil
}

func (d *DatabaseClient) ListWorkflows(orgID string, includeArchived bool) ([]models.Workflow, error) {
	rows, err := d.db.Query(`
		SELECT id, organization_id, name, stages, is_default, is_archived, created_by, created_at, updated_at
		FROM workflows
		WHERE organization_id = $1 AND (is_archived = FALSE OR $2)
		ORDER BY created_at DESC
	`, orgID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []models.Workflow
	for rows.Next() {
		var w models.Workflow
		var rawStages []byte
		err := rows.Scan(
			&w.ID, &w.OrganizationID, &w.Name, &rawStages,
			&w.IsDefault, &w.IsArchived, &w.CreatedBy, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}
		if w.Stages, err = decodeStages(rawStages); err != nil {
			return nil, err
		}
		workflows = append(workflows, w)
	}

	return workflows, rows.Err()
}

// ArchiveWorkflow soft-deletes; workflows referenced by projects are never
// hard-deleted.
func (d *DatabaseClient) ArchiveWorkflow(workflowID uuid.UUID, orgID string) error {
	result, err := d.db.Exec(`
		UPDATE workflows
		SET is_archived = TRUE, is_default = FALSE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
	`, workflowID, orgID)
	if err != nil {
		return fmt.Errorf("failed to archive workflow: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("workflow not found")
	}
	return nil
}

func (d *DatabaseClient) SetDefaultWorkflow(workflowID uuid.UUID, orgID string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE workflows SET is_default = FALSE, updated_at = NOW()
		WHERE organization_id = $1 AND is_default = TRUE
	`, orgID); err != nil {
		return fmt.Errorf("failed to clear default workflow: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE workflows SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND is_archived = FALSE
	`, workflowID, orgID)
	if err != nil {
		return fmt.Errorf("failed to set default workflow: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("workflow not found")
	}

	return tx.Commit()
}

// GetProjectWorkflow resolves the workflow governing a project, tenant-scoped.
// Returns NotFound when the project has no workflow assigned.
func (d *DatabaseClient) GetProjectWorkflow(projectID uuid.UUID, orgID string) (*models.Workflow, error) {
	project, err := d.GetProject(projectID, orgID)
	if err != nil {
		return nil, err
	}
	if !project.WorkflowID.Valid {
		return nil, apperrors.NotFound("project has no workflow assigned")
	}
	return d.GetWorkflow(project.WorkflowID.UUID, orgID)
}

// decodeStages normalizes the JSONB stage list into the validated StageList
// shape at the scan boundary so business logic never sees raw JSON.
func decodeStages(raw []byte) (workflow.StageList, error) {
	var stages []workflow.Stage
	if err := json.Unmarshal(raw, &stages); err != nil {
		return nil, fmt.Errorf("failed to decode workflow stages: %w", err)
	}
	validated, err := workflow.ValidateStages(stages)
	if err != nil {
		return nil, fmt.Errorf("stored workflow stages failed validation: %w", err)
	}
	return validated, nil
}
