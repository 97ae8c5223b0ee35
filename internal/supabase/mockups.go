package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
)

const mockupColumns = `id, organization_id, project_id, name, image_url, storage_path,
	final_approved_by, final_approved_at, final_approval_notes, created_by, created_at, updated_at`

func scanMockup(row interface{ Scan(...interface{}) error }) (*models.Mockup, error) {
	var m models.Mockup
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.ProjectID, &m.Name, &m.ImageURL, &m.StoragePath,
		&m.FinalApprovedBy, &m.FinalApprovedAt, &m.FinalApprovalNotes,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (d *DatabaseClient) CreateMockup(orgID, name, imageURL, createdBy string, projectID uuid.NullUUID) (*models.Mockup, error) {
	mockup, err := scanMockup(d.db.QueryRow(`
		INSERT INTO mockups (organization_id, project_id, name, image_url, created_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING `+mockupColumns+`
	`, orgID, projectID, name, imageURL, createdBy))
	if err != nil {
		return nil, fmt.Errorf("failed to create mockup: %w", err)
	}
	return mockup, nil
}

func (d *DatabaseClient) GetMockup(mockupID uuid.UUID, orgID string) (*models.Mockup, error) {
	mockup, err := scanMockup(d.db.QueryRow(`
		SELECT `+mockupColumns+`
		FROM mockups
		WHERE id = $1 AND organization_id = $2
	`, mockupID, orgID))
	if err != nil {
		return nil, translateErr(err, "mockup not found", "")
	}
	return mockup, nil
}

// GetMockupByID skips the tenant filter; used only when resolving a public
// share link.
func (d *DatabaseClient) GetMockupByID(mockupID uuid.UUID) (*models.Mockup, error) {
	mockup, err := scanMockup(d.db.QueryRow(`
		SELECT `+mockupColumns+`
		FROM mockups
		WHERE id = $1
	`, mockupID))
	if err != nil {
		return nil, translateErr(err, "mockup not found", "")
	}
	return mockup, nil
}

func (d *DatabaseClient) ListMockups(orgID string, projectID uuid.NullUUID) ([]models.Mockup, error) {
	rows, err := d.db.Query(`
		SELECT `+mockupColumns+`
		FROM mockups
		WHERE organization_id = $1 AND ($2::uuid IS NULL OR project_id = $2)
		ORDER BY created_at DESC
	`, orgID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mockups: %w", err)
	}
	defer rows.Close()

	var mockups []models.Mockup
	for rows.Next() {
		mockup, err := scanMockup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mockup: %w", err)
		}
		mockups = append(mockups, *mockup)
	}

	return mockups, rows.Err()
}

func (d *DatabaseClient) ListMockupsByIDs(orgID string, ids []uuid.UUID) ([]models.Mockup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	rows, err := d.db.Query(`
		SELECT `+mockupColumns+`
		FROM mockups
		WHERE organization_id = $1 AND id = ANY($2::uuid[])
	`, orgID, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to list mockups: %w", err)
	}
	defer rows.Close()

	var mockups []models.Mockup
	for rows.Next() {
		mockup, err := scanMockup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mockup: %w", err)
		}
		mockups = append(mockups, *mockup)
	}

	return mockups, rows.Err()
}

func (d *DatabaseClient) UpdateMockupName(mockupID uuid.UUID, orgID, name string) (*models.Mockup, error) {
	mockup, err := scanMockup(d.db.QueryRow(`
		UPDATE mockups
		SET name = $3, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING `+mockupColumns+`
	`, mockupID, orgID, name))
	if err != nil {
		return nil, translateErr(err, "mockup not found", "")
	}
	return mockup, nil
}

func (d *DatabaseClient) UpdateMockupImage(mockupID uuid.UUID, orgID, imageURL, storagePath string) (*models.Mockup, error) {
	mockup, err := scanMockup(d.db.QueryRow(`
		UPDATE mockups
		SET image_url = $3, storage_path = $4, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING `+mockupColumns+`
	`, mockupID, orgID, imageURL, storagePath))
	if err != nil {
		return nil, translateErr(err, "mockup not found", "")
	}
	return mockup, nil
}

// MoveMockup re-assigns a mockup to another project (or unassigns it) and
// clears its review state; progress only makes sense against the workflow of
// the project it lives in.
func (d *DatabaseClient) MoveMockup(mockupID uuid.UUID, orgID string, projectID uuid.NullUUID) (*models.Mockup, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM mockup_stage_progress WHERE mockup_id = $1`, mockupID); err != nil {
		return nil, fmt.Errorf("failed to reset stage progress: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM user_stage_approvals WHERE mockup_id = $1`, mockupID); err != nil {
		return nil, fmt.Errorf("failed to reset stage approvals: %w", err)
	}

	mockup, err := scanMockup(tx.QueryRow(`
		UPDATE mockups
		SET project_id = $3,
		    final_approved_by = NULL, final_approved_at = NULL, final_approval_notes = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING `+mockupColumns+`
	`, mockupID, orgID, projectID))
	if err != nil {
		return nil, translateErr(err, "mockup not found", "")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit move: %w", err)
	}
	return mockup, nil
}

// DuplicateMockup copies the mockup row itself; review state does not carry
// over to the copy.
func (d *DatabaseClient) DuplicateMockup(mockupID uuid.UUID, orgID, createdBy string) (*models.Mockup, error) {
	mockup, err := scanMockup(d.db.QueryRow(`
		INSERT INTO mockups (organization_id, project_id, name, image_url, storage_path, created_by)
		SELECT organization_id, project_id, name || ' (copy)', image_url, storage_path, $3
		FROM mockups
		WHERE id = $1 AND organization_id = $2
		RETURNING `+mockupColumns+`
	`, mockupID, orgID, createdBy))
	if err != nil {
		return nil, translateErr(err, "mockup not found", "")
	}
	return mockup, nil
}

func (d *DatabaseClient) SetFinalApproval(mockupID uuid.UUID, orgID, approvedBy, notes string) (*models.Mockup, error) {
	mockup, err := scanMockup(d.db.QueryRow(`
		UPDATE mockups
		SET final_approved_by = $3,
		    final_approved_at = NOW(),
		    final_approval_notes = NULLIF($4, ''),
		    updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND final_approved_at IS NULL
		RETURNING `+mockupColumns+`
	`, mockupID, orgID, approvedBy, notes))
	if err != nil {
		return nil, translateErr(err, "mockup not found or already finally approved", "")
	}
	return mockup, nil
}

// DeleteMockup cascades progress, approval, and share-link rows through the
// schema's foreign keys.
func (d *DatabaseClient) DeleteMockup(mockupID uuid.UUID, orgID string) error {
	result, err := d.db.Exec(`
		DELETE FROM mockups
		WHERE id = $1 AND organization_id = $2
	`, mockupID, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete mockup: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("mockup not found")
	}
	return nil
}
