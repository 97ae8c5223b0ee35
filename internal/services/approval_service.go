package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"cardmock-backend/internal/apperrors"
	"cardmock-backend/internal/models"
	"cardmock-backend/internal/notify"
	"cardmock-backend/internal/supabase"
	"cardmock-backend/internal/workflow"
)

// ApprovalService drives a mockup through its project's workflow: opening
// stages for review, recording reviewer decisions, and terminal sign-off.
type ApprovalService struct {
	dbClient       *supabase.DatabaseClient
	realtimeClient *supabase.RealtimeClient
	notifier       *notify.SlackNotifier
}

func NewApprovalService(dbClient *supabase.DatabaseClient, realtimeClient *supabase.RealtimeClient, notifier *notify.SlackNotifier) *ApprovalService {
	return &ApprovalService{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
		notifier:       notifier,
	}
}

// resolveWorkflow loads the mockup, its project, and the governing workflow's
// stages.
func (s *ApprovalService) resolveWorkflow(orgID string, mockupID uuid.UUID) (*models.Mockup, *models.Workflow, error) {
	mockup, err := s.dbClient.GetMockup(mockupID, orgID)
	if err != nil {
		return nil, nil, err
	}
	if !mockup.ProjectID.Valid {
		return nil, nil, apperrors.Validation("mockup is not assigned to a project")
	}
	wf, err := s.dbClient.GetProjectWorkflow(mockup.ProjectID.UUID, orgID)
	if err != nil {
		return nil, nil, err
	}
	return mockup, wf, nil
}

// SubmitForReview opens a stage of the mockup for review. With stageOrder 0
// the first stage that is not yet approved is chosen.
func (s *ApprovalService) SubmitForReview(orgID string, mockupID uuid.UUID, stageOrder int) (*models.MockupStageProgress, error) {
	mockup, wf, err := s.resolveWorkflow(orgID, mockupID)
	if err != nil {
		return nil, err
	}

	if stageOrder == 0 {
		rows, err := s.dbClient.GetStageProgress(mockupID)
		if err != nil {
			return nil, err
		}
		approved := make(map[int]bool)
		for _, row := range rows {
			if row.Status == workflow.StageApproved {
				approved[row.StageOrder] = true
			}
		}
		for _, stage := range wf.Stages {
			if !approved[stage.Order] {
				stageOrder = stage.Order
				break
			}
		}
		if stageOrder == 0 {
			return nil, apperrors.Conflict("all stages are already approved")
		}
	}

	stage, ok := wf.Stages.ByOrder(stageOrder)
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("stage %d does not exist in the project's workflow", stageOrder))
	}

	progress, err := s.dbClient.SubmitStageForReview(mockupID, mockup.ProjectID.UUID, stage)
	if err != nil {
		return nil, err
	}

	s.broadcast(mockup, "stage_submitted", supabase.StageSubmittedPayload(mockupID, stage.Order))
	s.notify(mockup.OrganizationID, fmt.Sprintf("Mockup %q entered review at stage %q.", mockup.Name, stage.Name))

	return progress, nil
}

// RecordDecision stores one reviewer's vote at a stage and advances the
// mockup when the stage collects enough approvals.
func (s *ApprovalService) RecordDecision(orgID, userID, userName string, mockupID uuid.UUID, req models.DecisionRequest) (*supabase.DecisionResult, error) {
	if req.Decision != "approved" && req.Decision != "rejected" {
		return nil, apperrors.Validation(`decision must be "approved" or "rejected"`)
	}

	mockup, wf, err := s.resolveWorkflow(orgID, mockupID)
	if err != nil {
		return nil, err
	}

	stage, ok := wf.Stages.ByOrder(req.StageOrder)
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("stage %d does not exist in the project's workflow", req.StageOrder))
	}

	isReviewer, err := s.dbClient.IsReviewer(mockup.ProjectID.UUID, stage.Order, userID)
	if err != nil {
		return nil, err
	}
	if !isReviewer {
		return nil, apperrors.Forbidden("you are not a registered reviewer for this stage")
	}

	var nextStage *workflow.Stage
	if next, ok := wf.Stages.ByOrder(stage.Order + 1); ok {
		nextStage = &next
	}

	result, err := s.dbClient.RecordDecision(
		mockupID, mockup.ProjectID.UUID, stage.Order,
		userID, userName, req.Decision, req.Notes, nextStage,
	)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Decision == "rejected":
		s.broadcast(mockup, "changes_requested", supabase.ChangesRequestedPayload(mockupID, stage.Order))
		s.notify(orgID, fmt.Sprintf("Changes requested on mockup %q at stage %q.", mockup.Name, stage.Name))
	case result.AllApproved:
		s.broadcast(mockup, "all_stages_approved", supabase.AllStagesApprovedPayload(mockupID))
		s.notify(orgID, fmt.Sprintf("Mockup %q passed every workflow stage and awaits final sign-off.", mockup.Name))
	case result.StageComplete:
		s.broadcast(mockup, "stage_approved", supabase.StageApprovedPayload(mockupID, stage.Order))
		s.notify(orgID, fmt.Sprintf("Mockup %q cleared stage %q.", mockup.Name, stage.Name))
	}

	return result, nil
}

// GetProgress aggregates the mockup's per-stage rows and approvals into its
// overall status and current stage.
func (s *ApprovalService) GetProgress(orgID string, mockupID uuid.UUID) (*workflow.Progress, error) {
	_, wf, err := s.resolveWorkflow(orgID, mockupID)
	if err != nil {
		return nil, err
	}

	rows, err := s.dbClient.GetStageProgress(mockupID)
	if err != nil {
		return nil, err
	}
	approvals, err := s.dbClient.GetStageApprovals(mockupID)
	if err != nil {
		return nil, err
	}

	progressRows := make([]workflow.StageProgress, len(rows))
	for i, row := range rows {
		progressRows[i] = workflow.StageProgress{
			StageOrder:        row.StageOrder,
			Status:            row.Status,
			ApprovalsRequired: row.ApprovalsRequired,
			ApprovalsReceived: row.ApprovalsReceived,
		}
	}

	votes := make([]workflow.Approval, len(approvals))
	for i, a := range approvals {
		votes[i] = workflow.Approval{
			StageOrder: a.StageOrder,
			UserID:     a.UserID,
			UserName:   a.UserName,
			Decision:   a.Decision,
			CreatedAt:  a.CreatedAt,
		}
	}

	return workflow.Aggregate(wf.Stages, progressRows, votes)
}

// FinalApprove records terminal sign-off. Allowed only once every workflow
// stage is approved, and only once.
func (s *ApprovalService) FinalApprove(orgID, userID string, mockupID uuid.UUID, notes string) (*models.Mockup, error) {
	progress, err := s.GetProgress(orgID, mockupID)
	if err != nil {
		return nil, err
	}
	if progress.OverallStatus != workflow.OverallApproved {
		return nil, apperrors.Conflict("all workflow stages must be approved before final sign-off")
	}

	mockup, err := s.dbClient.SetFinalApproval(mockupID, orgID, userID, notes)
	if err != nil {
		return nil, err
	}

	s.notify(orgID, fmt.Sprintf("Mockup %q received final approval.", mockup.Name))
	return mockup, nil
}

// broadcast and notify are enrichment steps; failures are logged and
// swallowed so they never fail the approval operation itself.
func (s *ApprovalService) broadcast(mockup *models.Mockup, event string, payload map[string]interface{}) {
	if s.realtimeClient == nil {
		return
	}
	if err := s.realtimeClient.PublishMockupEvent(mockup.ID, event, payload); err != nil {
		log.Printf("Failed to publish %s event for mockup %s: %v", event, mockup.ID, err)
	}
}

func (s *ApprovalService) notify(orgID, text string) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}
	if err := s.notifier.Post(text); err != nil {
		log.Printf("Slack notification failed: %v", err)
		if recErr := s.dbClient.RecordIntegrationEvent(orgID, "slack", "notification", "failed", err.Error()); recErr != nil {
			log.Printf("Failed to record integration event: %v", recErr)
		}
		return
	}
	if err := s.dbClient.RecordIntegrationEvent(orgID, "slack", "notification", "sent", text); err != nil {
		log.Printf("Failed to record integration event: %v", err)
	}
}
