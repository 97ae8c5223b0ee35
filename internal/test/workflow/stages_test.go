package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardmock-backend/internal/workflow"
)

func TestValidateStages_Valid(t *testing.T) {
	stages, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 2, Name: "Final Review", Color: "green", ApprovalsRequired: 2},
		{Order: 1, Name: "Draft Review", Color: "yellow", ApprovalsRequired: 1},
	})
	require.NoError(t, err)
	require.Len(t, stages, 2)

	// Returned list is sorted by order regardless of input order.
	assert.Equal(t, "Draft Review", stages[0].Name)
	assert.Equal(t, "Final Review", stages[1].Name)
}

func TestValidateStages_Empty(t *testing.T) {
	_, err := workflow.ValidateStages(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one stage")
}

func TestValidateStages_GapInOrders(t *testing.T) {
	_, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 1, Name: "Draft", Color: "yellow", ApprovalsRequired: 1},
		{Order: 3, Name: "Final", Color: "green", ApprovalsRequired: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing order 2")
}

func TestValidateStages_DuplicateOrder(t *testing.T) {
	_, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 1, Name: "Draft", Color: "yellow", ApprovalsRequired: 1},
		{Order: 1, Name: "Final", Color: "green", ApprovalsRequired: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate stage order 1")
}

func TestValidateStages_BadColor(t *testing.T) {
	_, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 1, Name: "Draft", Color: "magenta", ApprovalsRequired: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "magenta")
}

func TestValidateStages_MissingName(t *testing.T) {
	_, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 1, Name: "  ", Color: "blue", ApprovalsRequired: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a name")
}

func TestValidateStages_ZeroApprovals(t *testing.T) {
	_, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 1, Name: "Draft", Color: "blue", ApprovalsRequired: 0},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one approval")
}

func TestValidateStages_CollectsAllReasons(t *testing.T) {
	_, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 1, Name: "", Color: "pink", ApprovalsRequired: 0},
	})
	require.Error(t, err)

	var vErr *workflow.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Reasons, 3)
}

func TestStageList_ByOrder(t *testing.T) {
	stages, err := workflow.ValidateStages([]workflow.Stage{
		{Order: 1, Name: "Draft", Color: "yellow", ApprovalsRequired: 1},
		{Order: 2, Name: "Final", Color: "green", ApprovalsRequired: 1},
	})
	require.NoError(t, err)

	s, ok := stages.ByOrder(2)
	assert.True(t, ok)
	assert.Equal(t, "Final", s.Name)

	_, ok = stages.ByOrder(3)
	assert.False(t, ok)
	assert.True(t, stages.HasOrder(1))
	assert.False(t, stages.HasOrder(0))
}
