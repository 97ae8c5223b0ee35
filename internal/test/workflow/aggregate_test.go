package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardmock-backend/internal/workflow"
)

func twoStageWorkflow(t *testing.T) workflow.StageList {
	t.Helper()
	stages, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 1, Name: "Draft Review", Color: "yellow", ApprovalsRequired: 1},
		{Order: 2, Name: "Final Review", Color: "green", ApprovalsRequired: 1},
	})
	require.NoError(t, err)
	return stages
}

func TestAggregate_NoRows(t *testing.T) {
	stages := twoStageWorkflow(t)

	progress, err := workflow.Aggregate(stages, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, progress.CurrentStage)
	assert.Equal(t, workflow.OverallNotStarted, progress.OverallStatus)
	require.Len(t, progress.PerStage, 2)
	assert.Equal(t, workflow.StageNotStarted, progress.PerStage[0].Status)
	assert.Equal(t, workflow.StageNotStarted, progress.PerStage[1].Status)
}

func TestAggregate_SecondStageInReview(t *testing.T) {
	stages := twoStageWorkflow(t)
	rows := []workflow.StageProgress{
		{StageOrder: 1, Status: workflow.StageApproved, ApprovalsRequired: 1, ApprovalsReceived: 1},
		{StageOrder: 2, Status: workflow.StageInReview, ApprovalsRequired: 1, ApprovalsReceived: 0},
	}

	progress, err := workflow.Aggregate(stages, rows, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, progress.CurrentStage)
	assert.Equal(t, workflow.OverallInProgress, progress.OverallStatus)
	assert.True(t, progress.PerStage[0].IsComplete)
	assert.False(t, progress.PerStage[1].IsComplete)
}

func TestAggregate_AllApproved(t *testing.T) {
	stages := twoStageWorkflow(t)
	rows := []workflow.StageProgress{
		{StageOrder: 1, Status: workflow.StageApproved, ApprovalsRequired: 1, ApprovalsReceived: 1},
		{StageOrder: 2, Status: workflow.StageApproved, ApprovalsRequired: 1, ApprovalsReceived: 1},
	}

	progress, err := workflow.Aggregate(stages, rows, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, progress.CurrentStage)
	assert.Equal(t, workflow.OverallApproved, progress.OverallStatus)
}

func TestAggregate_ChangesRequestedWins(t *testing.T) {
	stages := twoStageWorkflow(t)
	rows := []workflow.StageProgress{
		{StageOrder: 1, Status: workflow.StageApproved, ApprovalsRequired: 1, ApprovalsReceived: 1},
		{StageOrder: 2, Status: workflow.StageChangesRequested, ApprovalsRequired: 1, ApprovalsReceived: 0},
	}

	progress, err := workflow.Aggregate(stages, rows, nil)
	require.NoError(t, err)

	assert.Equal(t, workflow.OverallChangesRequested, progress.OverallStatus)
	// No stage is in review, so the highest approved stage is current.
	assert.Equal(t, 1, progress.CurrentStage)
}

func TestAggregate_MultipleInReviewRejected(t *testing.T) {
	stages := twoStageWorkflow(t)
	rows := []workflow.StageProgress{
		{StageOrder: 1, Status: workflow.StageInReview, ApprovalsRequired: 1},
		{StageOrder: 2, Status: workflow.StageInReview, ApprovalsRequired: 1},
	}

	_, err := workflow.Aggregate(stages, rows, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most one stage may be in review")
}

func TestAggregate_UnknownStageOrderRejected(t *testing.T) {
	stages := twoStageWorkflow(t)
	rows := []workflow.StageProgress{
		{StageOrder: 5, Status: workflow.StageApproved, ApprovalsRequired: 1, ApprovalsReceived: 1},
	}

	_, err := workflow.Aggregate(stages, rows, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stage order 5")
}

func TestAggregate_AttachesApprovalsToStages(t *testing.T) {
	stages := twoStageWorkflow(t)
	rows := []workflow.StageProgress{
		{StageOrder: 1, Status: workflow.StageInReview, ApprovalsRequired: 2, ApprovalsReceived: 1},
	}
	approvals := []workflow.Approval{
		{StageOrder: 1, UserID: "user_1", UserName: "Dana", Decision: "approved"},
	}

	progress, err := workflow.Aggregate(stages, rows, approvals)
	require.NoError(t, err)

	require.Len(t, progress.PerStage[0].UserApprovals, 1)
	assert.Equal(t, "Dana", progress.PerStage[0].UserApprovals[0].UserName)
	assert.Empty(t, progress.PerStage[1].UserApprovals)
}

func TestIsStageComplete(t *testing.T) {
	assert.True(t, workflow.IsStageComplete(2, 2))
	assert.True(t, workflow.IsStageComplete(3, 2))
	assert.False(t, workflow.IsStageComplete(1, 2))
}
