package supabase_test

import (
	"testing"
)

func TestAddReviewer_DuplicateAssignmentConflicts(t *testing.T) {
	// UNIQUE (project_id, stage_order, user_id) on stage_reviewers maps a
	// duplicate registration to a conflict.
	t.Skip("Requires a PostgreSQL database")
}

func TestRemoveReviewer_WrongProjectIsNotFound(t *testing.T) {
	// The delete is scoped to the project in the path; an id that belongs to
	// a different project affects zero rows and reports not-found.
	t.Skip("Requires a PostgreSQL database")
}
