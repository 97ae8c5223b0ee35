package workflow

import (
	"fmt"
	"strings"
)

// Stage colors accepted by the UI palette.
var ValidColors = []string{"yellow", "green", "blue", "purple", "red", "orange", "gray"}

type Stage struct {
	Order             int    `json:"order"`
	Name              string `json:"name"`
	Color             string `json:"color"`
	ApprovalsRequired int    `json:"approvals_required"`
}

// StageList is the validated, ordered stage set of a workflow. Construct it
// through ValidateStages; never trust raw JSON as pre-validated.
type StageList []Stage

type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid stages: " + strings.Join(e.Reasons, "; ")
}

// ValidateStages checks a candidate stage list and returns it as a StageList.
// Stage orders must be exactly 1..N, names non-empty, colors from the fixed
// palette, and approvals_required at least 1.
func ValidateStages(stages []Stage) (StageList, error) {
	var reasons []string

	if len(stages) == 0 {
		reasons = append(reasons, "workflow must have at least one stage")
		return nil, &ValidationError{Reasons: reasons}
	}

	seen := make(map[int]bool, len(stages))
	for i, s := range stages {
		if strings.TrimSpace(s.Name) == "" {
			reasons = append(reasons, fmt.Sprintf("stage at position %d is missing a name", i+1))
		}
		if !isValidColor(s.Color) {
			reasons = append(reasons, fmt.Sprintf("stage %q has unrecognized color %q", s.Name, s.Color))
		}
		if s.ApprovalsRequired < 1 {
			reasons = append(reasons, fmt.Sprintf("stage %q must require at least one approval", s.Name))
		}
		if seen[s.Order] {
			reasons = append(reasons, fmt.Sprintf("duplicate stage order %d", s.Order))
		}
		seen[s.Order] = true
	}

	// Orders must be the contiguous sequence 1..N.
	for order := 1; order <= len(stages); order++ {
		if !seen[order] {
			reasons = append(reasons, fmt.Sprintf("stage orders must run 1..%d with no gaps; missing order %d", len(stages), order))
		}
	}

	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	sorted := make(StageList, len(stages))
	copy(sorted, stages)
	for i := range sorted {
		// Orders are exactly 1..N, so placement by order is safe.
		sorted[stages[i].Order-1] = stages[i]
	}
	return sorted, nil
}

func isValidColor(color string) bool {
	for _, c := range ValidColors {
		if c == color {
			return true
		}
	}
	return false
}

// ByOrder returns the stage with the given order, or false if the order is
// outside the list.
func (l StageList) ByOrder(order int) (Stage, bool) {
	if order < 1 || order > len(l) {
		return Stage{}, false
	}
	return l[order-1], true
}

func (l StageList) HasOrder(order int) bool {
	_, ok := l.ByOrder(order)
	return ok
}
