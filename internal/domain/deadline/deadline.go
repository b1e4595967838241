// Package deadline turns temporal expressions in sentences into concrete
// deadlines.
package deadline

import (
	"regexp"
	"strings"
	"time"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/textnorm"
	"github.com/olebedev/when"
)

const monthAlt = `january|february|march|april|may|june|july|august|september|october|november|december`

var absolutePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	regexp.MustCompile(`\b\d{1,2}\s+(?:` + monthAlt + `)\s+\d{2,4}\b`),
	regexp.MustCompile(`\b(?:` + monthAlt + `)\s+\d{1,2}(?:st|nd|rd|th)?\s*,?\s*\d{2,4}\b`),
	regexp.MustCompile(`\b\d{1,2}(?:st|nd|rd|th)\s+(?:` + monthAlt + `)\s+\d{2,4}\b`),
}

const weekdayAlt = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`

// Group 1 of each pattern is the relative expression.
var relativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bby\s+(today|tonight)\b`),
	regexp.MustCompile(`\bby\s+(tomorrow\s+night|tomorrow)\b`),
	regexp.MustCompile(`\bby\s+(day\s+after\s+tomorrow)\b`),
	regexp.MustCompile(`\bby\s+(this\s+(?:morning|afternoon|evening|week|month|quarter))\b`),
	regexp.MustCompile(`\bby\s+(next\s+(?:week|month|quarter|` + weekdayAlt + `))\b`),
	regexp.MustCompile(`\bby\s+(end\s+of\s+(?:the\s+)?(?:day|week|month|quarter))\b`),
	regexp.MustCompile(`\bby\s+(eod|eow|eom)\b`),
	regexp.MustCompile(`\bbefore\s+(today|tomorrow|next\s+week)\b`),
	regexp.MustCompile(`\bdue\s+(today|tomorrow|next\s+week)\b`),
	regexp.MustCompile(`\bdeadline\s+(?:is\s+)?(today|tomorrow|next\s+week)\b`),
}

var weekdayDeadlineRe = regexp.MustCompile(`\b(?:by|before|on|due)\s+((?:next\s+)?(?:` + weekdayAlt + `))\b`)

// Longer phrases first so a match masks its shorter suffixes.
var standaloneKeywords = []*regexp.Regexp{
	textnorm.WordBoundary("day after tomorrow"),
	textnorm.WordBoundary("tomorrow"),
	textnorm.WordBoundary("today"),
	textnorm.WordBoundary("next week"),
	textnorm.WordBoundary("end of the week"),
	textnorm.WordBoundary("end of week"),
	textnorm.WordBoundary("end of month"),
	textnorm.WordBoundary("end of day"),
	textnorm.WordBoundary("eod"),
	textnorm.WordBoundary("eow"),
	textnorm.WordBoundary("eom"),
}

var deadlineKeywords = []string{"by", "before", "until", "due", "deadline", "on", "at"}

// Resolver extracts deadlines relative to a fixed reference instant.
type Resolver struct {
	ref    time.Time
	parser *when.Parser
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReference sets the instant relative expressions are resolved against.
func WithReference(t time.Time) Option {
	return func(r *Resolver) {
		if !t.IsZero() {
			r.ref = t
		}
	}
}

// New builds a Resolver anchored at time.Now unless overridden.
func New(opts ...Option) *Resolver {
	r := &Resolver{ref: time.Now(), parser: newParser()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Relative resolves expr against the resolver's reference.
func (r *Resolver) Relative(expr string) (time.Time, bool) {
	return Relative(expr, r.ref)
}

func hasDeadlineKeyword(text string) bool {
	for _, kw := range deadlineKeywords {
		if textnorm.ContainsWord(text, kw) {
			return true
		}
	}
	return false
}

// FromText returns the earliest deadline mentioned in text.
func (r *Resolver) FromText(text string) (time.Time, bool) {
	norm := textnorm.Normalize(text)
	var found []time.Time
	add := func(t time.Time, ok bool) {
		if ok {
			found = append(found, t)
		}
	}

	for _, re := range absolutePatterns {
		for _, m := range re.FindAllString(norm, -1) {
			add(r.Absolute(m))
		}
	}

	for _, re := range relativePatterns {
		for _, m := range re.FindAllStringSubmatch(norm, -1) {
			add(r.Relative(m[1]))
		}
	}

	if hasDeadlineKeyword(norm) {
		masked := norm
		for _, re := range standaloneKeywords {
			if loc := re.FindStringIndex(masked); loc != nil {
				add(r.Relative(masked[loc[0]:loc[1]]))
				masked = re.ReplaceAllStringFunc(masked, func(s string) string {
					return strings.Repeat(" ", len(s))
				})
			}
		}
	}

	for _, m := range weekdayDeadlineRe.FindAllStringSubmatch(norm, -1) {
		add(r.Relative(m[1]))
	}

	if len(found) == 0 {
		return time.Time{}, false
	}
	earliest := found[0]
	for _, t := range found[1:] {
		if t.Before(earliest) {
			earliest = t
		}
	}
	return earliest, true
}

// Enrich sets each task's deadline from its own source sentence.
func (r *Resolver) Enrich(tasks []*model.Task, sentences []model.Sentence) {
	byID := make(map[int]model.Sentence, len(sentences))
	for _, s := range sentences {
		byID[s.ID] = s
	}
	for _, t := range tasks {
		id, ok := t.SourceID()
		if !ok {
			continue
		}
		s, ok := byID[id]
		if !ok {
			continue
		}
		if d, ok := r.FromText(s.Text()); ok {
			t.Deadline = &d
		}
	}
}
