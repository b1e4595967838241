package assignment

import (
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/types"
)

const (
	maxRelativePenalty  = 0.4
	relativePenaltyRate = 0.15
	absoluteLoadLimit   = 3.0
	absolutePenaltyRate = 0.1
	maxAbsolutePenalty  = 0.3
	minConfidence       = 0.1
	// No workload adjustment may cut more than this share of the input confidence.
	maxTotalPenaltyShare = 0.4
)

// Workload maps member names to their load within the current batch.
type Workload map[string]model.WorkloadInfo

// CalculateWorkload counts the tasks already assigned to each member.
func CalculateWorkload(tasks []*model.Task, team model.Team) Workload {
	w := make(Workload, len(team.Members))
	for _, m := range team.Members {
		w[m.Name] = model.WorkloadInfo{}
	}
	for _, t := range tasks {
		name := t.Assignee()
		info, ok := w[name]
		if !ok {
			continue
		}
		info.Total++
		switch t.Priority {
		case types.PriorityCritical:
			info.Critical++
		case types.PriorityHigh:
			info.High++
		}
		w[name] = info
	}
	return w
}

// Average returns the mean task count over teamSize members.
func (w Workload) Average(teamSize int) float64 {
	if teamSize == 0 {
		return 0
	}
	total := 0
	for _, info := range w {
		total += info.Total
	}
	return float64(total) / float64(teamSize)
}

// Count returns the member's task count.
func (w Workload) Count(name string) int {
	return w[name].Total
}

// AdjustForWorkload lowers base for members carrying more than their share.
// The reduction is capped at 40% of base and the result never drops below 0.1.
func AdjustForWorkload(name string, base float64, w Workload, p types.Priority, teamSize int) float64 {
	info, ok := w[name]
	if !ok {
		return base
	}

	score := float64(info.Total)
	if p == types.PriorityMedium || p == types.PriorityLow {
		score += float64(info.Critical)*2 + float64(info.High)*1.5
	}

	penalty := 0.0
	if teamSize > 1 {
		avg := w.Average(teamSize)
		if float64(info.Total) > avg+1 {
			ratio := (float64(info.Total) - avg) / max(avg, 1)
			penalty += min(maxRelativePenalty, ratio*relativePenaltyRate)
		}
	}
	if score > absoluteLoadLimit {
		penalty += min(maxAbsolutePenalty, (score-absoluteLoadLimit)*absolutePenaltyRate)
	}

	adjusted := max(base-penalty, base*(1-maxTotalPenaltyShare))
	return max(minConfidence, adjusted)
}
