// Package pipeline wires the extraction stages into one batch transform:
// sentences and a roster in, prioritised and assigned tasks out.
package pipeline

import (
	"context"
	"time"

	"github.com/okian/meetmind/internal/domain/assignment"
	"github.com/okian/meetmind/internal/domain/deadline"
	"github.com/okian/meetmind/internal/domain/dependency"
	"github.com/okian/meetmind/internal/domain/detection"
	"github.com/okian/meetmind/internal/domain/entities"
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/priority"
	"github.com/okian/meetmind/internal/domain/skills"
	"github.com/okian/meetmind/pkg/logger"
)

// Stage names reported to observers and logs.
const (
	StageDetect     = "detect"
	StageEntities   = "entities"
	StageDeadline   = "deadline"
	StagePriority   = "priority"
	StageDependency = "dependency"
	StageSkills     = "skills"
	StageAssign     = "assign"
	StageValidate   = "validate"
)

// Result is the outcome of one run.
type Result struct {
	Tasks          []*model.Task            `json:"tasks"`
	Graph          *dependency.Graph        `json:"dependency_graph"`
	ExecutionOrder []int                    `json:"execution_order"`
	HasCycles      bool                     `json:"has_cycles"`
	Assignments    []model.AssignmentResult `json:"assignments"`
	Validation     model.ValidationSummary  `json:"validation"`
}

// StageObserver is told how long each stage took.
type StageObserver func(stage string, took time.Duration)

// Pipeline holds run settings. It keeps no state between runs and is safe
// for concurrent use.
type Pipeline struct {
	ref      time.Time
	startID  int
	log      logger.Logger
	observer StageObserver
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithReference fixes the instant deadlines and urgency are measured from.
// The zero value means time.Now at the start of each run.
func WithReference(t time.Time) Option {
	return func(p *Pipeline) { p.ref = t }
}

// WithStartID sets the id of the first detected task.
func WithStartID(id int) Option {
	return func(p *Pipeline) {
		if id > 0 {
			p.startID = id
		}
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithStageObserver registers a callback for stage timings.
func WithStageObserver(o StageObserver) Option {
	return func(p *Pipeline) { p.observer = o }
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{startID: 1, log: logger.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run is a convenience for New(opts...).Run.
func Run(ctx context.Context, sentences []model.Sentence, team model.Team, opts ...Option) (Result, error) {
	return New(opts...).Run(ctx, sentences, team)
}

type stage struct {
	name string
	run  func() int
}

// Run processes one batch of sentences against team. Stages run in a fixed
// order because later ones read what earlier ones wrote: priority depends
// on deadlines, and assignment on priority, dependencies and skills.
// The context is checked between stages.
func (p *Pipeline) Run(ctx context.Context, sentences []model.Sentence, team model.Team) (Result, error) {
	ref := p.ref
	if ref.IsZero() {
		ref = time.Now()
	}

	var (
		tasks   []*model.Task
		graph   *dependency.Graph
		order   []int
		cyclic  bool
		results []model.AssignmentResult
		summary model.ValidationSummary
	)
	stages := []stage{
		{StageDetect, func() int {
			tasks = detection.New(detection.WithStartID(p.startID)).Detect(sentences)
			return len(tasks)
		}},
		{StageEntities, func() int {
			entities.New(team).Enrich(tasks, sentences)
			return len(tasks)
		}},
		{StageDeadline, func() int {
			deadline.New(deadline.WithReference(ref)).Enrich(tasks, sentences)
			n := 0
			for _, t := range tasks {
				if t.Deadline != nil {
					n++
				}
			}
			return n
		}},
		{StagePriority, func() int {
			priority.New(priority.WithReference(ref)).Enrich(tasks, sentences)
			return len(tasks)
		}},
		{StageDependency, func() int {
			graph = dependency.Build(tasks, sentences)
			var err error
			if order, err = graph.Order(); err != nil {
				cyclic = true
				order = []int{}
				p.log.Warn(ctx, "dependency graph is cyclic", logger.Error(err))
			}
			return len(graph.Edges())
		}},
		{StageSkills, func() int {
			skills.Enrich(tasks)
			return len(tasks)
		}},
		{StageAssign, func() int {
			eng := assignment.New(team, assignment.WithSentences(sentences), assignment.WithClock(ref))
			results = eng.AssignAll(tasks)
			return len(results)
		}},
		{StageValidate, func() int {
			summary = assignment.Validate(results, tasks)
			return len(summary.Unassigned) + len(summary.LowConfidence) + len(summary.Conflicts)
		}},
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		start := time.Now()
		n := st.run()
		took := time.Since(start)
		if p.observer != nil {
			p.observer(st.name, took)
		}
		p.log.Debug(ctx, "stage finished", logger.String("stage", st.name), logger.Int("count", n), logger.Duration("took", took))
	}

	p.log.Info(ctx, "pipeline finished",
		logger.Int("sentences", len(sentences)),
		logger.Int("tasks", len(tasks)),
		logger.Bool("cyclic", cyclic))

	return Result{
		Tasks:          tasks,
		Graph:          graph,
		ExecutionOrder: order,
		HasCycles:      cyclic,
		Assignments:    results,
		Validation:     summary,
	}, nil
}
