package supabase

import (
	"fmt"

	"github.com/google/uuid"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
)

// AddReviewer registers a user as a reviewer of one stage within a project.
// The unique index on (project_id, stage_order, user_id) turns a duplicate
// registration into a conflict rather than a second row.
func (d *DatabaseClient) AddReviewer(projectID uuid.UUID, stageOrder int, userID, userName string) (*models.StageReviewer, error) {
	var reviewer models.StageReviewer
	err := d.db.QueryRow(`
		INSERT INTO stage_reviewers (project_id, stage_order, user_id, user_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, stage_order, user_id, user_name, created_at
	`, projectID, stageOrder, userID, userName).Scan(
		&reviewer.ID, &reviewer.ProjectID, &reviewer.StageOrder,
		&reviewer.UserID, &reviewer.UserName, &reviewer.CreatedAt,
	)
	if err != nil {
		return nil, translateErr(err, "project not found",
			"user is already a reviewer for this stage")
	}
	return &reviewer, nil
}

// RemoveReviewer deletes a reviewer row, but only when it belongs to the
// project named in the request. Reviewer assignment is a revocable grant, not
// an audit artifact; the delete is unconditional once ownership checks out.
func (d *DatabaseClient) RemoveReviewer(reviewerID, projectID uuid.UUID) error {
	result, err := d.db.Exec(`
		DELETE FROM stage_reviewers
		WHERE id = $1 AND project_id = $2
	`, reviewerID, projectID)
	if err != nil {
		return fmt.Errorf("failed to remove reviewer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("reviewer not found")
	}
	return nil
}

// ListReviewersByStage returns the project's reviewers grouped by stage
// order, each group in creation order.
func (d *DatabaseClient) ListReviewersByStage(projectID uuid.UUID) (map[int][]models.StageReviewer, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, stage_order, user_id, user_name, created_at
		FROM stage_reviewers
		WHERE project_id = $1
		ORDER BY stage_order ASC, created_at ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	defer rows.Close()

	byStage := make(map[int][]models.StageReviewer)
	for rows.Next() {
		var reviewer models.StageReviewer
		err := rows.Scan(
			&reviewer.ID, &reviewer.ProjectID, &reviewer.StageOrder,
			&reviewer.UserID, &reviewer.UserName, &reviewer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reviewer: %w", err)
		}
		byStage[reviewer.StageOrder] = append(byStage[reviewer.StageOrder], reviewer)
	}

	return byStage, rows.Err()
}

// IsReviewer reports whether the user is registered for the given stage of
// the project.
func (d *DatabaseClient) IsReviewer(projectID uuid.UUID, stageOrder int, userID string) (bool, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM stage_reviewers
		WHERE project_id = $1 AND stage_order = $2 AND user_id = $3
	`, projectID, stageOrder, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check reviewer: %w", err)
	}
	return count > 0, nil
}

// ListAssignmentsForUser finds every (project, stage) pair the user reviews
// across the organization; drives the pending-reviews dashboard.
func (d *DatabaseClient) ListAssignmentsForUser(orgID, userID string) ([]models.ReviewerAssignment, error) {
	rows, err := d.db.Query(`
		SELECT sr.project_id, sr.stage_order
		FROM stage_reviewers sr
		JOIN projects p ON p.id = sr.project_id
		WHERE sr.user_id = $1 AND p.organization_id = $2
		ORDER BY sr.project_id, sr.stage_order
	`, userID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewer assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.ReviewerAssignment
	for rows.Next() {
		var a models.ReviewerAssignment
		if err := rows.Scan(&a.ProjectID, &a.StageOrder); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
