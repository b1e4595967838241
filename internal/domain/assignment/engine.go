// Package assignment decides who should own each task.
//
// Strategies are tried in order: an explicit mention in the source sentence,
// skill coverage, role fit, and finally the least loaded member. Confidence
// is adjusted for the load each member has already picked up in the batch.
package assignment

import (
	"sort"
	"time"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/skills"
	"github.com/okian/meetmind/internal/domain/types"
)

const (
	maxAlternatives = 3
	// CommitThreshold is the minimum confidence for a task to be assigned.
	CommitThreshold = 0.3
)

// Engine assigns tasks against a fixed roster snapshot.
type Engine struct {
	team      model.Team
	sentences map[int]model.Sentence
	now       time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSentences provides the transcript used for explicit mentions and reasoning.
func WithSentences(ss []model.Sentence) Option {
	return func(e *Engine) {
		for _, s := range ss {
			e.sentences[s.ID] = s
		}
	}
}

// WithClock sets the instant deadline urgency is measured from.
func WithClock(now time.Time) Option {
	return func(e *Engine) {
		if !now.IsZero() {
			e.now = now
		}
	}
}

// New creates an Engine for team.
func New(team model.Team, opts ...Option) *Engine {
	e := &Engine{team: team, sentences: map[int]model.Sentence{}, now: time.Now()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) source(task *model.Task) (model.Sentence, bool) {
	id, ok := task.SourceID()
	if !ok {
		return model.Sentence{}, false
	}
	s, ok := e.sentences[id]
	return s, ok
}

func (e *Engine) result(task *model.Task, name string, conf float64, method types.AssignmentMethod, matched []string, alts []model.Alternative, src string) model.AssignmentResult {
	n := name
	return model.AssignmentResult{
		TaskID:       task.ID,
		AssignedTo:   &n,
		Confidence:   conf,
		Method:       method,
		Reasoning:    Reasoning(task, src, name, method, matched, e.team, e.now),
		Alternatives: alts,
	}
}

// Assign picks an owner for task given the tasks already committed in this batch.
func (e *Engine) Assign(task *model.Task, committed []*model.Task) model.AssignmentResult {
	size := len(e.team.Members)
	if size == 0 {
		return model.AssignmentResult{
			TaskID:       task.ID,
			Confidence:   0,
			Method:       types.MethodNone,
			Reasoning:    reasonNoMembers,
			Alternatives: []model.Alternative{},
		}
	}

	if len(task.RequiredSkills) == 0 {
		task.RequiredSkills = skills.Infer(task.Description)
	}
	w := CalculateWorkload(committed, e.team)
	ranked := skills.RankMembers(task.RequiredSkills, e.team.Members)
	skillCands := skillCandidates(task, ranked, w, size)

	src := ""
	if s, ok := e.source(task); ok {
		src = s.RawText
		if name, conf, ok := explicitMention(s.RawText, e.team); ok {
			conf = explicitConfidence(conf, w.Count(name))
			return e.result(task, name, conf, types.MethodExplicit, nil, alternatives(skillCands, name), src)
		}
	}

	if best, ok := pickBest(skillCands, task, w, size, false); ok {
		return e.result(task, best.name, best.confidence, types.MethodSkillMatch, best.matched, alternatives(skillCands, best.name), src)
	}

	roleCands := roleCandidates(task, e.team)
	if best, ok := pickBest(roleCands, task, w, size, true); ok {
		return e.result(task, best.name, best.confidence, types.MethodRoleMatch, nil, alternatives(roleCands, best.name), src)
	}

	name, _ := leastLoaded(e.team, w)
	return e.result(task, name, fallbackConf, types.MethodFallback, nil, []model.Alternative{}, src)
}

// AssignAll assigns tasks most urgent first, then fewest dependencies first.
// A result is committed onto its task only when its confidence reaches
// CommitThreshold; committed tasks count toward later workload.
// Results are returned in processing order.
func (e *Engine) AssignAll(tasks []*model.Task) []model.AssignmentResult {
	ordered := append([]*model.Task(nil), tasks...)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].Priority.Rank(), ordered[j].Priority.Rank()
		if pi != pj {
			return pi < pj
		}
		return len(ordered[i].Dependencies) < len(ordered[j].Dependencies)
	})
	skills.Enrich(ordered)

	results := make([]model.AssignmentResult, 0, len(ordered))
	var committed []*model.Task
	for _, t := range ordered {
		r := e.Assign(t, committed)
		if r.AssignedTo != nil && r.Confidence >= CommitThreshold {
			name, conf := *r.AssignedTo, r.Confidence
			t.AssignedTo = &name
			t.Confidence = &conf
			t.Reasoning = r.Reasoning
			t.AssignmentMethod = r.Method
			committed = append(committed, t)
		}
		results = append(results, r)
	}
	return results
}
