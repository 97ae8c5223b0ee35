package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/workflow"
)

func (d *DatabaseClient) GetStageProgress(mockupID uuid.UUID) ([]models.MockupStageProgress, error) {
	rows, err := d.db.Query(`
		SELECT id, mockup_id, project_id, stage_order, status,
		       approvals_required, approvals_received, created_at, updated_at
		FROM mockup_stage_progress
		WHERE mockup_id = $1
		ORDER BY stage_order ASC
	`, mockupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage progress: %w", err)
	}
	defer rows.Close()

	var progress []models.MockupStageProgress
	for rows.Next() {
		var p models.MockupStageProgress
		err := rows.Scan(
			&p.ID, &p.MockupID, &p.ProjectID, &p.StageOrder, &p.Status,
			&p.ApprovalsRequired, &p.ApprovalsReceived, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage progress: %w", err)
		}
		progress = append(progress, p)
	}

	return progress, rows.Err()
}

func (d *DatabaseClient) GetStageApprovals(mockupID uuid.UUID) ([]models.UserStageApproval, error) {
	rows, err := d.db.Query(`
		SELECT id, mockup_id, stage_order, user_id, user_name, decision, notes, created_at
		FROM user_stage_approvals
		WHERE mockup_id = $1
		ORDER BY stage_order ASC, created_at ASC
	`, mockupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage approvals: %w", err)
	}
	defer rows.Close()

	var approvals []models.UserStageApproval
	for rows.Next() {
		var a models.UserStageApproval
		err := rows.Scan(
			&a.ID, &a.MockupID, &a.StageOrder, &a.UserID, &a.UserName,
			&a.Decision, &a.Notes, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage approval: %w", err)
		}
		approvals = append(approvals, a)
	}

	return approvals, rows.Err()
}

// SubmitStageForReview opens review on a stage. The single-in_review
// invariant is enforced here: the submit fails while any other stage of the
// mockup is still in review.
func (d *DatabaseClient) SubmitStageForReview(mockupID, projectID uuid.UUID, stage workflow.Stage) (*models.MockupStageProgress, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var inReview int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM mockup_stage_progress
		WHERE mockup_id = $1 AND status = 'in_review' AND stage_order <> $2
	`, mockupID, stage.Order).Scan(&inReview)
	if err != nil {
		return nil, fmt.Errorf("failed to check review state: %w", err)
	}
	if inReview > 0 {
		return nil, apperrors.Conflict("another stage is already in review for this mockup")
	}

	// Re-opening after changes requested starts the stage over: stale votes
	// are discarded so every reviewer, including the one who rejected, votes
	// again on the revised mockup.
	if _, err := tx.Exec(`
		DELETE FROM user_stage_approvals WHERE mockup_id = $1 AND stage_order = $2
	`, mockupID, stage.Order); err != nil {
		return nil, fmt.Errorf("failed to clear stale approvals: %w", err)
	}

	var p models.MockupStageProgress
	err = tx.QueryRow(`
		INSERT INTO mockup_stage_progress (mockup_id, project_id, stage_order, status, approvals_required)
		VALUES ($1, $2, $3, 'in_review', $4)
		ON CONFLICT (mockup_id, stage_order) DO UPDATE
		SET status = 'in_review', approvals_received = 0, updated_at = NOW()
		WHERE mockup_stage_progress.status IN ('not_started', 'changes_requested')
		RETURNING id, mockup_id, project_id, stage_order, status,
		          approvals_required, approvals_received, created_at, updated_at
	`, mockupID, projectID, stage.Order, stage.ApprovalsRequired).Scan(
		&p.ID, &p.MockupID, &p.ProjectID, &p.StageOrder, &p.Status,
		&p.ApprovalsRequired, &p.ApprovalsReceived, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Conflict("stage has already been reviewed")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to submit stage for review: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit submit: %w", err)
	}
	return &p, nil
}

// DecisionResult describes what a recorded reviewer decision did to the
// mockup's progression.
type DecisionResult struct {
	Progress      models.MockupStageProgress
	StageComplete bool
	AdvancedTo    int // 0 when no next stage was opened
	AllApproved   bool
}

// RecordDecision stores one reviewer's vote and applies its effect to the
// stage's progress row in a single transaction. The unique index on
// (mockup_id, stage_order, user_id) rejects a second vote from the same
// reviewer, so the approvals_received counter can never double-count.
// nextStage, when non-nil, is opened for review if this vote completes the
// stage.
func (d *DatabaseClient) RecordDecision(mockupID, projectID uuid.UUID, stageOrder int, userID, userName, decision, notes string, nextStage *workflow.Stage) (*DecisionResult, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO user_stage_approvals (mockup_id, stage_order, user_id, user_name, decision, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`, mockupID, stageOrder, userID, userName, decision, notes)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, apperrors.Conflict("you have already reviewed this stage")
		}
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	var p models.MockupStageProgress
	err = tx.QueryRow(`
		SELECT id, mockup_id, project_id, stage_order, status,
		       approvals_required, approvals_received, created_at, updated_at
		FROM mockup_stage_progress
		WHERE mockup_id = $1 AND stage_order = $2
		FOR UPDATE
	`, mockupID, stageOrder).Scan(
		&p.ID, &p.MockupID, &p.ProjectID, &p.StageOrder, &p.Status,
		&p.ApprovalsRequired, &p.ApprovalsReceived, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("stage is not under review")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stage progress: %w", err)
	}
	if p.Status != workflow.StageInReview {
		return nil, apperrors.Conflict("stage is not in review")
	}

	result := &DecisionResult{}

	if decision == "rejected" {
		err = tx.QueryRow(`
			UPDATE mockup_stage_progress
			SET status = 'changes_requested', updated_at = NOW()
			WHERE id = $1
			RETURNING status, approvals_received, updated_at
		`, p.ID).Scan(&p.Status, &p.ApprovalsReceived, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to mark changes requested: %w", err)
		}
	} else {
		newStatus := workflow.StageInReview
		if workflow.IsStageComplete(p.ApprovalsReceived+1, p.ApprovalsRequired) {
			newStatus = workflow.StageApproved
		}
		err = tx.QueryRow(`
			UPDATE mockup_stage_progress
			SET approvals_received = approvals_received + 1, status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING status, approvals_received, updated_at
		`, p.ID, newStatus).Scan(&p.Status, &p.ApprovalsReceived, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to update stage progress: %w", err)
		}

		if p.Status == workflow.StageApproved {
			result.StageComplete = true
			if nextStage != nil {
				_, err = tx.Exec(`
					INSERT INTO mockup_stage_progress (mockup_id, project_id, stage_order, status, approvals_required)
					VALUES ($1, $2, $3, 'in_review', $4)
					ON CONFLICT (mockup_id, stage_order) DO UPDATE
					SET status = 'in_review', updated_at = NOW()
				`, mockupID, projectID, nextStage.Order, nextStage.ApprovalsRequired)
				if err != nil {
					return nil, fmt.Errorf("failed to open next stage: %w", err)
				}
				result.AdvancedTo = nextStage.Order
			} else {
				result.AllApproved = true
			}
		}
	}

	result.Progress = p

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit decision: %w", err)
	}
	return result, nil
}

// ListInReviewForProject returns the in_review progress rows of a project
// restricted to the given stage orders.
func (d *DatabaseClient) ListInReviewForProject(projectID uuid.UUID, stageOrders []int) ([]models.MockupStageProgress, error) {
	orders := make([]int64, len(stageOrders))
	for i, o := range stageOrders {
		orders[i] = int64(o)
	}
	rows, err := d.db.Query(`
		SELECT id, mockup_id, project_id, stage_order, status,
		       approvals_required, approvals_received, created_at, updated_at
		FROM mockup_stage_progress
		WHERE project_id = $1 AND status = 'in_review' AND stage_order = ANY($2::int[])
	`, projectID, pq.Array(orders))
	if err != nil {
		return nil, fmt.Errorf("failed to list in-review progress: %w", err)
	}
	defer rows.Close()

	var progress []models.MockupStageProgress
	for rows.Next() {
		var p models.MockupStageProgress
		err := rows.Scan(
			&p.ID, &p.MockupID, &p.ProjectID, &p.StageOrder, &p.Status,
			&p.ApprovalsRequired, &p.ApprovalsReceived, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage progress: %w", err)
		}
		progress = append(progress, p)
	}

	return progress, rows.Err()
}
