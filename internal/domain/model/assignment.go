package model

import "github.com/okian/meetmind/internal/domain/types"

// Alternative is a runner-up candidate for an assignment.
type Alternative struct {
	Name       string  `json:"name" yaml:"name"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// AssignmentResult is the assignment engine's decision for one task.
type AssignmentResult struct {
	TaskID       int                    `json:"task_id" yaml:"task_id"`
	AssignedTo   *string                `json:"assigned_to" yaml:"assigned_to"`
	Confidence   float64                `json:"confidence" yaml:"confidence"`
	Method       types.AssignmentMethod `json:"assignment_method" yaml:"assignment_method"`
	Reasoning    string                 `json:"reasoning" yaml:"reasoning"`
	Alternatives []Alternative          `json:"alternative_assignments" yaml:"alternative_assignments"`
}

// Assignee returns the assigned member name or "".
func (r AssignmentResult) Assignee() string {
	if r.AssignedTo == nil {
		return ""
	}
	return *r.AssignedTo
}

// WorkloadInfo counts tasks committed to one member within a batch.
type WorkloadInfo struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
}

// ValidationSummary lists task ids flagged after a batch assignment.
type ValidationSummary struct {
	Unassigned    []int `json:"unassigned" yaml:"unassigned"`
	LowConfidence []int `json:"low_confidence" yaml:"low_confidence"`
	Conflicts     []int `json:"conflicts" yaml:"conflicts"`
}
