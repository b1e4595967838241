// Package priority classifies tasks into one of four urgency levels.
package priority

import (
	"regexp"
	"time"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/textnorm"
	"github.com/okian/meetmind/internal/domain/types"
)

type tier struct {
	level    types.Priority
	patterns []*regexp.Regexp
}

func compile(level types.Priority, phrases []string) tier {
	t := tier{level: level}
	for _, p := range phrases {
		t.patterns = append(t.patterns, textnorm.WordBoundary(p))
	}
	return t
}

// Low is checked before medium.
var keywordTiers = []tier{
	compile(types.PriorityCritical, criticalKeywords),
	compile(types.PriorityHigh, highKeywords),
	compile(types.PriorityLow, lowKeywords),
	compile(types.PriorityMedium, mediumKeywords),
}

var contextTiers = []tier{
	compile(types.PriorityCritical, criticalContext),
	compile(types.PriorityHigh, highContext),
	compile(types.PriorityLow, lowContext),
}

func scan(text string, tiers []tier) (types.Priority, bool) {
	norm := textnorm.Normalize(text)
	for _, t := range tiers {
		for _, re := range t.patterns {
			if re.MatchString(norm) {
				return t.level, true
			}
		}
	}
	return types.PriorityUnset, false
}

// FromKeywords looks for explicit priority keywords.
func FromKeywords(text string) (types.Priority, bool) {
	return scan(text, keywordTiers)
}

// FromContext looks for phrases that imply urgency.
func FromContext(text string) (types.Priority, bool) {
	return scan(text, contextTiers)
}

// Proximity thresholds for deadline grading.
const (
	criticalWindow = 24 * time.Hour
	highWindow     = 72 * time.Hour
	mediumWindow   = 14 * 24 * time.Hour
)

// dueByTomorrow reports whether deadline falls on or before the calendar
// day after now, in now's location.
func dueByTomorrow(now, deadline time.Time) bool {
	deadline = deadline.In(now.Location())
	y, m, d := now.AddDate(0, 0, 1).Date()
	endOfTomorrow := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
	return !deadline.After(endOfTomorrow)
}

// FromDeadline grades a deadline by its distance from now: within 24h is
// critical, within 72h high, within 14 days medium, later low. A deadline
// landing by the end of tomorrow also counts as critical, so "by tomorrow"
// stays critical whatever the hour.
func FromDeadline(deadline *time.Time, now time.Time) (types.Priority, bool) {
	if deadline == nil {
		return types.PriorityUnset, false
	}
	left := deadline.Sub(now)
	switch {
	case left <= criticalWindow || dueByTomorrow(now, *deadline):
		return types.PriorityCritical, true
	case left <= highWindow:
		return types.PriorityHigh, true
	case left <= mediumWindow:
		return types.PriorityMedium, true
	default:
		return types.PriorityLow, true
	}
}

// Classifier assigns priorities relative to a reference instant.
type Classifier struct {
	now time.Time
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithReference sets the instant deadlines are measured from.
func WithReference(t time.Time) Option {
	return func(c *Classifier) {
		if !t.IsZero() {
			c.now = t
		}
	}
}

// New creates a Classifier anchored at time.Now unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{now: time.Now()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify runs the keyword, context and deadline checks in order and
// falls back to medium.
func (c *Classifier) Classify(text string, deadline *time.Time) types.Priority {
	if p, ok := FromKeywords(text); ok {
		return p
	}
	if p, ok := FromContext(text); ok {
		return p
	}
	if p, ok := FromDeadline(deadline, c.now); ok {
		return p
	}
	return types.PriorityMedium
}

// Enrich sets a priority on every task.
func (c *Classifier) Enrich(tasks []*model.Task, sentences []model.Sentence) {
	byID := make(map[int]model.Sentence, len(sentences))
	for _, s := range sentences {
		byID[s.ID] = s
	}
	for _, t := range tasks {
		id, ok := t.SourceID()
		if !ok {
			t.Priority = types.PriorityMedium
			continue
		}
		s, ok := byID[id]
		if !ok {
			t.Priority = types.PriorityMedium
			continue
		}
		t.Priority = c.Classify(s.Text(), t.Deadline)
	}
}
