// Package detection finds action items in transcript sentences and reduces
// them to short task descriptions.
package detection

import (
	"github.com/okian/meetmind/internal/domain/model"
)

// Detector turns sentences into draft tasks.
type Detector struct {
	startID int
}

// Option configures a Detector.
type Option func(*Detector)

// WithStartID sets the id given to the first detected task.
func WithStartID(id int) Option {
	return func(d *Detector) {
		if id > 0 {
			d.startID = id
		}
	}
}

// New creates a Detector numbering tasks from 1 unless overridden.
func New(opts ...Option) *Detector {
	d := &Detector{startID: 1}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns one task per actionable sentence in input order.
// Sentences that are not task-like, or whose description ends up too
// vague, produce nothing.
func (d *Detector) Detect(sentences []model.Sentence) []*model.Task {
	tasks := make([]*model.Task, 0)
	next := d.startID
	for i, s := range sentences {
		if !IsTaskSentence(s) {
			continue
		}
		text := s.Text()
		if resolved, ok := ResolveContext(sentences, i); ok {
			text = resolved
		}
		desc := ExtractCore(text)
		if desc == "" || TooVague(desc) {
			continue
		}
		t := model.NewTask(next, desc)
		src := s.ID
		t.SourceSentenceID = &src
		tasks = append(tasks, t)
		next++
	}
	return tasks
}
