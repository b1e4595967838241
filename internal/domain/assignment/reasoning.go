package assignment

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/textnorm"
	"github.com/okian/meetmind/internal/domain/types"
)

const (
	reasonNoAssignee = "No suitable assignment found. Task requires manual review."
	reasonNoMembers  = "No team members available for assignment"
)

// Reasoning explains an assignment in one line.
func Reasoning(task *model.Task, sourceText, assignee string, method types.AssignmentMethod, matched []string, team model.Team, now time.Time) string {
	if assignee == "" {
		return reasonNoAssignee
	}
	var reasons []string
	switch method {
	case types.MethodExplicit:
		reasons = append(reasons, "Explicitly assigned to "+assignee)
	case types.MethodSkillMatch:
		if len(matched) > 0 {
			reasons = append(reasons, fmt.Sprintf("Skill match: %s has %s", assignee, strings.Join(matched, ", ")))
		} else {
			reasons = append(reasons, "Best skill match: "+assignee)
		}
	case types.MethodRoleMatch:
		if m, ok := team.Member(assignee); ok {
			reasons = append(reasons, fmt.Sprintf("Role match: %s is %s", assignee, m.Role))
		} else {
			reasons = append(reasons, "Role-based assignment: "+assignee)
		}
	case types.MethodFallback:
		reasons = append(reasons, "Fallback assignment: "+assignee)
	}

	switch task.Priority {
	case types.PriorityCritical:
		reasons = append(reasons, "Critical priority task")
	case types.PriorityHigh:
		reasons = append(reasons, "High priority task")
	}

	text := sourceText
	if text == "" {
		text = task.Description
	}
	if textnorm.ContainsWord(text, "blocking") || textnorm.ContainsWord(strings.Join(task.TechnicalTerms, " "), "blocking") {
		reasons = append(reasons, "Blocking issue")
	}

	if task.Deadline != nil {
		days := math.Floor(task.Deadline.Sub(now).Hours() / 24)
		switch {
		case days <= 1:
			reasons = append(reasons, "Urgent deadline")
		case days <= 3:
			reasons = append(reasons, "Near deadline")
		}
	}

	if n := len(task.TechnicalTerms); n > 0 {
		reasons = append(reasons, "Technical context: "+strings.Join(task.TechnicalTerms[:min(n, 2)], ", "))
	}
	return strings.Join(reasons, ". ") + "."
}

// SuggestAlternatives renders a result's runner-up members for display.
func SuggestAlternatives(r model.AssignmentResult, team model.Team) []string {
	out := []string{}
	for _, alt := range r.Alternatives {
		m, ok := team.Member(alt.Name)
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("%s (%s) - %.0f%% confidence", alt.Name, m.Role, alt.Confidence*100))
	}
	return out
}
