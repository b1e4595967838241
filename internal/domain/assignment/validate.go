package assignment

import (
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/types"
)

const (
	lowConfidence        = 0.5
	maxCriticalPerMember = 3
)

// Validate flags unassigned results, weak assignments and members holding
// too many critical tasks. Conflicts list the critical tasks beyond the
// limit in task order.
func Validate(results []model.AssignmentResult, tasks []*model.Task) model.ValidationSummary {
	sum := model.ValidationSummary{Unassigned: []int{}, LowConfidence: []int{}, Conflicts: []int{}}
	for _, r := range results {
		switch {
		case r.AssignedTo == nil:
			sum.Unassigned = append(sum.Unassigned, r.TaskID)
		case r.Confidence < lowConfidence:
			sum.LowConfidence = append(sum.LowConfidence, r.TaskID)
		}
	}
	critical := map[string]int{}
	for _, t := range tasks {
		name := t.Assignee()
		if name == "" || t.Priority != types.PriorityCritical {
			continue
		}
		critical[name]++
		if critical[name] > maxCriticalPerMember {
			sum.Conflicts = append(sum.Conflicts, t.ID)
		}
	}
	return sum
}
