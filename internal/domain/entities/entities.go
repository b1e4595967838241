// Package entities recognises people, technical terms and time expressions
// in transcript sentences and attaches them to tasks.
//
// Entity offsets are byte positions in the sentence text they were found
// in: the raw text, or the cleaned text when one was supplied.
package entities

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/skills"
	"github.com/okian/meetmind/internal/domain/textnorm"
	"github.com/okian/meetmind/internal/domain/types"
)

const (
	minNameLen     = 2
	nearWindow     = 2
	backfillWindow = 10
)

type person struct {
	name  string
	norm  string
	whole *regexp.Regexp
	parts *regexp.Regexp
}

// Extractor finds entities for one roster.
type Extractor struct {
	people []person
}

// New prepares name matchers for the roster. Names shorter than two
// characters are ignored.
func New(team model.Team) *Extractor {
	e := &Extractor{}
	for _, m := range team.Members {
		norm := textnorm.Normalize(m.Name)
		if len([]rune(norm)) < minNameLen {
			continue
		}
		p := person{name: m.Name, norm: norm, whole: textnorm.WordBoundary(norm)}
		if fields := strings.Fields(norm); len(fields) > 1 {
			quoted := make([]string, len(fields))
			for i, f := range fields {
				quoted[i] = regexp.QuoteMeta(f)
			}
			p.parts = regexp.MustCompile(`(?i)\b` + strings.Join(quoted, `[\s\-_.]+`) + `\b`)
		}
		e.people = append(e.people, p)
	}
	return e
}

// locate returns the span of p in norm.
func (p person) locate(norm string) (int, int, bool) {
	if loc := p.whole.FindStringIndex(norm); loc != nil {
		return loc[0], loc[1], true
	}
	for from := 0; from < len(norm); {
		i := strings.Index(norm[from:], p.norm)
		if i < 0 {
			break
		}
		start := from + i
		if textnorm.AtBoundary(norm, start, start+len(p.norm)) {
			return start, start + len(p.norm), true
		}
		from = start + 1
	}
	if p.parts != nil {
		if loc := p.parts.FindStringIndex(norm); loc != nil {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}

func (e *Extractor) personsIn(s model.Sentence) []model.Entity {
	var out []model.Entity
	texts := []string{s.RawText}
	if s.CleanedText != "" && s.CleanedText != s.RawText {
		texts = append(texts, s.CleanedText)
	}
	for _, p := range e.people {
		for _, t := range texts {
			norm, offs := textnorm.NormalizeOffsets(t)
			if i, j, ok := p.locate(norm); ok {
				start, end := offs.Span(i, j)
				out = append(out, model.Entity{Text: p.name, Type: types.EntityPerson, Start: start, End: end})
				break
			}
		}
	}
	return out
}

// Persons returns the roster members mentioned in sentences[idx]. When the
// sentence names nobody, the two sentences on either side are searched,
// then up to ten sentences before it.
func (e *Extractor) Persons(sentences []model.Sentence, idx int) []model.Entity {
	if idx < 0 || idx >= len(sentences) {
		return nil
	}
	found := e.personsIn(sentences[idx])
	if len(found) == 0 {
		for i := max(0, idx-nearWindow); i <= idx+nearWindow && i < len(sentences); i++ {
			if i != idx {
				found = append(found, e.personsIn(sentences[i])...)
			}
		}
	}
	if len(found) == 0 {
		for i := idx - 1; i >= 0 && i >= idx-backfillWindow; i-- {
			found = append(found, e.personsIn(sentences[i])...)
		}
	}
	return dedupe(found, func(en model.Entity) string { return en.Text + "\x00" + strconv.Itoa(en.Start) })
}

// Technical returns canonical skill names and known technical phrases
// found in text.
func Technical(text string) []model.Entity {
	norm, offs := textnorm.NormalizeOffsets(text)
	var out []model.Entity
	add := func(s string, i, j int) {
		start, end := offs.Span(i, j)
		out = append(out, model.Entity{Text: s, Type: types.EntityTechnical, Start: start, End: end})
	}
	for _, h := range skills.KeywordHits(text) {
		add(h.Skill, h.Start, h.End)
	}
	for _, p := range techPhrases {
		if i := strings.Index(norm, p); i >= 0 {
			add(p, i, i+len(p))
		}
	}
	return dedupe(out, func(en model.Entity) string { return strings.ToLower(en.Text) })
}

// Times returns time expressions found in text.
func Times(text string) []model.Entity {
	norm, offs := textnorm.NormalizeOffsets(text)
	var out []model.Entity
	add := func(s string, i, j int) {
		start, end := offs.Span(i, j)
		out = append(out, model.Entity{Text: s, Type: types.EntityTime, Start: start, End: end})
	}
	for _, p := range relativeTimePhrases {
		if i := strings.Index(norm, p); i >= 0 {
			add(p, i, i+len(p))
		}
	}
	for i, re := range simpleTimeRes {
		for _, loc := range re.FindAllStringIndex(norm, -1) {
			add(simpleTimeWords[i], loc[0], loc[1])
		}
	}
	for i, re := range weekdayRes {
		for _, loc := range re.FindAllStringIndex(norm, -1) {
			add(textnorm.Capitalize(weekdays[i]), loc[0], loc[1])
		}
	}
	for _, loc := range byBeforeRe.FindAllStringIndex(norm, -1) {
		add(norm[loc[0]:loc[1]], loc[0], loc[1])
	}
	return dedupe(out, func(en model.Entity) string { return strings.ToLower(en.Text) })
}

// ForSentence returns every entity for sentences[idx].
func (e *Extractor) ForSentence(sentences []model.Sentence, idx int) []model.Entity {
	if idx < 0 || idx >= len(sentences) {
		return nil
	}
	text := sentences[idx].Text()
	out := e.Persons(sentences, idx)
	out = append(out, Technical(text)...)
	return append(out, Times(text)...)
}

// Enrich fills the people, technical term and time expression lists of
// tasks from their source sentences. Tasks without a known source are
// left untouched.
func (e *Extractor) Enrich(tasks []*model.Task, sentences []model.Sentence) {
	index := make(map[int]int, len(sentences))
	for i, s := range sentences {
		index[s.ID] = i
	}
	for _, t := range tasks {
		id, ok := t.SourceID()
		if !ok {
			continue
		}
		idx, ok := index[id]
		if !ok {
			continue
		}
		var people, tech, times []string
		for _, en := range e.ForSentence(sentences, idx) {
			switch en.Type {
			case types.EntityPerson:
				people = append(people, en.Text)
			case types.EntityTechnical:
				tech = append(tech, en.Text)
			case types.EntityTime:
				times = append(times, en.Text)
			}
		}
		t.MentionedPeople = textnorm.Dedupe(people)
		t.TechnicalTerms = textnorm.Dedupe(tech)
		t.TimeExpressions = textnorm.Dedupe(times)
	}
}

func dedupe(in []model.Entity, key func(model.Entity) string) []model.Entity {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, en := range in {
		k := string(en.Type) + "\x00" + key(en)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, en)
	}
	return out
}
