package model

import (
	"time"

	"github.com/okian/meetmind/internal/domain/types"
)

// Task is an action item extracted from a transcript sentence and enriched
// in place by each pipeline stage.
type Task struct {
	ID               int                    `json:"id" yaml:"id"`
	Description      string                 `json:"description" yaml:"description"`
	SourceSentenceID *int                   `json:"source_sentence_id,omitempty" yaml:"source_sentence_id,omitempty"`
	RequiredSkills   []string               `json:"required_skills" yaml:"required_skills"`
	Tags             []string               `json:"tags" yaml:"tags"`
	MentionedPeople  []string               `json:"mentioned_people" yaml:"mentioned_people"`
	TechnicalTerms   []string               `json:"technical_terms" yaml:"technical_terms"`
	TimeExpressions  []string               `json:"time_expressions" yaml:"time_expressions"`
	Deadline         *time.Time             `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Priority         types.Priority         `json:"priority" yaml:"priority"`
	Dependencies     []int                  `json:"dependencies" yaml:"dependencies"`
	AssignedTo       *string                `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
	Confidence       *float64               `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Reasoning        string                 `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	AssignmentMethod types.AssignmentMethod `json:"assignment_method,omitempty" yaml:"assignment_method,omitempty"`
}

// NewTask returns a task with empty (non-nil) list fields.
func NewTask(id int, description string) *Task {
	return &Task{
		ID:              id,
		Description:     description,
		RequiredSkills:  []string{},
		Tags:            []string{},
		MentionedPeople: []string{},
		TechnicalTerms:  []string{},
		TimeExpressions: []string{},
		Dependencies:    []int{},
	}
}

// SourceID returns the source sentence id and whether it is set.
func (t *Task) SourceID() (int, bool) {
	if t.SourceSentenceID == nil {
		return 0, false
	}
	return *t.SourceSentenceID, true
}

// Assignee returns the assigned member name or "".
func (t *Task) Assignee() string {
	if t.AssignedTo == nil {
		return ""
	}
	return *t.AssignedTo
}

// DependencyEdge means From cannot start before To is done.
type DependencyEdge struct {
	From        int    `json:"from_task_id" yaml:"from_task_id"`
	To          int    `json:"to_task_id" yaml:"to_task_id"`
	Type        string `json:"dependency_type" yaml:"dependency_type"`
	Description string `json:"description" yaml:"description"`
}
