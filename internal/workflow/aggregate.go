package workflow

import (
	"fmt"
	"time"
)

// Stage statuses for a single (mockup, stage) progress row.
const (
	StageNotStarted       = "not_started"
	StageInReview         = "in_review"
	StageApproved         = "approved"
	StageChangesRequested = "changes_requested"
)

// Overall mockup statuses derived from the per-stage rows.
const (
	OverallNotStarted       = "not_started"
	OverallInProgress       = "in_progress"
	OverallApproved         = "approved"
	OverallChangesRequested = "changes_requested"
)

// StageProgress is one per-stage progress row as seen by the aggregator.
type StageProgress struct {
	StageOrder        int
	Status            string
	ApprovalsRequired int
	ApprovalsReceived int
}

// Approval is a single reviewer's recorded vote at a stage.
type Approval struct {
	StageOrder int
	UserID     string
	UserName   string
	Decision   string
	CreatedAt  time.Time
}

type StageDetail struct {
	StageOrder        int        `json:"stage_order"`
	StageName         string     `json:"stage_name"`
	StageColor        string     `json:"stage_color"`
	Status            string     `json:"status"`
	ApprovalsRequired int        `json:"approvals_required"`
	ApprovalsReceived int        `json:"approvals_received"`
	IsComplete        bool       `json:"is_complete"`
	UserApprovals     []Approval `json:"user_approvals"`
}

type Progress struct {
	CurrentStage  int           `json:"current_stage"`
	OverallStatus string        `json:"overall_status"`
	PerStage      []StageDetail `json:"per_stage"`
}

// Aggregate derives a mockup's current stage and overall status from its raw
// per-stage progress rows and per-user approvals. It is read-only and safe to
// call from concurrent requests.
//
// At most one stage may be in_review at a time; more than one means the
// progression invariant was broken upstream and the aggregate is rejected
// rather than silently picking a stage.
func Aggregate(stages StageList, rows []StageProgress, approvals []Approval) (*Progress, error) {
	byOrder := make(map[int]StageProgress, len(rows))
	inReview := 0
	for _, row := range rows {
		if !stages.HasOrder(row.StageOrder) {
			return nil, fmt.Errorf("progress row references unknown stage order %d", row.StageOrder)
		}
		byOrder[row.StageOrder] = row
		if row.Status == StageInReview {
			inReview++
		}
	}
	if inReview > 1 {
		return nil, fmt.Errorf("found %d stages in review; at most one stage may be in review at a time", inReview)
	}

	approvalsByStage := make(map[int][]Approval)
	for _, a := range approvals {
		approvalsByStage[a.StageOrder] = append(approvalsByStage[a.StageOrder], a)
	}

	progress := &Progress{
		CurrentStage:  currentStage(byOrder),
		OverallStatus: overallStatus(rows),
		PerStage:      make([]StageDetail, 0, len(stages)),
	}

	for _, stage := range stages {
		detail := StageDetail{
			StageOrder:        stage.Order,
			StageName:         stage.Name,
			StageColor:        stage.Color,
			Status:            StageNotStarted,
			ApprovalsRequired: stage.ApprovalsRequired,
			UserApprovals:     approvalsByStage[stage.Order],
		}
		if row, ok := byOrder[stage.Order]; ok {
			detail.Status = row.Status
			detail.ApprovalsRequired = row.ApprovalsRequired
			detail.ApprovalsReceived = row.ApprovalsReceived
			detail.IsComplete = row.ApprovalsReceived >= row.ApprovalsRequired
		}
		progress.PerStage = append(progress.PerStage, detail)
	}

	return progress, nil
}

// currentStage: the in_review stage if one exists, else the highest approved
// stage order, else 1.
func currentStage(byOrder map[int]StageProgress) int {
	maxApproved := 0
	for order, row := range byOrder {
		switch row.Status {
		case StageInReview:
			return order
		case StageApproved:
			if order > maxApproved {
				maxApproved = order
			}
		}
	}
	if maxApproved > 0 {
		return maxApproved
	}
	return 1
}

// overallStatus precedence: changes_requested, then all-approved, then
// in_progress, then not_started.
func overallStatus(rows []StageProgress) string {
	anyRows := false
	anyInReview := false
	allApproved := true
	for _, row := range rows {
		switch row.Status {
		case StageChangesRequested:
			return OverallChangesRequested
		case StageInReview:
			anyInReview = true
		}
		if row.Status != StageApproved {
			allApproved = false
		}
		anyRows = true
	}
	if anyRows && allApproved {
		return OverallApproved
	}
	if anyInReview {
		return OverallInProgress
	}
	return OverallNotStarted
}

// IsStageComplete reports whether a stage has collected enough approvals to
// advance.
func IsStageComplete(received, required int) bool {
	return received >= required
}
