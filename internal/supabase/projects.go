package supabase

import (
	"fmt"

	"github.com/google/uuid"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
)

func (d *DatabaseClient) CreateProject(orgID, name, createdBy string, clientID, workflowID uuid.NullUUID) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		INSERT INTO projects (organization_id, name, client_id, workflow_id, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, organization_id, name, client_id, workflow_id, created_by, created_at, updated_at
	`, orgID, name, clientID, workflowID, createdBy).Scan(
		&project.ID, &project.OrganizationID, &project.Name,
		&project.ClientID, &project.WorkflowID, &project.CreatedBy,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (d *DatabaseClient) GetProject(projectID uuid.UUID, orgID string) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		SELECT id, organization_id, name, client_id, workflow_id, created_by, created_at, updated_at
		FROM projects
		WHERE id = $1 AND organization_id = $2
	`, projectID, orgID).Scan(
		&project.ID, &project.OrganizationID, &project.Name,
		&project.ClientID, &project.WorkflowID, &project.CreatedBy,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err, "project not found", "")
	}
	return &project, nil
}

func (d *DatabaseClient) ListProjects(orgID string) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT id, organization_id, name, client_id, workflow_id, created_by, created_at, updated_at
		FROM projects
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID, &project.OrganizationID, &project.Name,
			&project.ClientID, &project.WorkflowID, &project.CreatedBy,
			&project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (d *DatabaseClient) UpdateProject(projectID uuid.UUID, orgID, name string, clientID, workflowID uuid.NullUUID) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		UPDATE projects
		SET name = COALESCE(NULLIF($3, ''), name),
		    client_id = $4,
		    workflow_id = $5,
		    updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING id, organization_id, name, client_id, workflow_id, created_by, created_at, updated_at
	`, projectID, orgID, name, clientID, workflowID).Scan(
		&project.ID, &project.OrganizationID, &project.Name,
		&project.ClientID, &project.WorkflowID, &project.CreatedBy,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err, "project not found", "")
	}
	return &project, nil
}

// DeleteProject removes the project. Mockups are unassigned by the FK, not
// deleted; reviewer rows cascade.
func (d *DatabaseClient) DeleteProject(projectID uuid.UUID, orgID string) error {
	result, err := d.db.Exec(`
		DELETE FROM projects
		WHERE id = $1 AND organization_id = $2
	`, projectID, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("project not found")
	}
	return nil
}
