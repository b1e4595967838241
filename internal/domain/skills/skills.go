// Package skills maps task text onto canonical skills and ranks roster
// members against them.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/textnorm"
)

// FuzzyThreshold is the minimum similarity for a token to count as a skill name.
const FuzzyThreshold = 0.85

var tokenSplit = regexp.MustCompile(`[,.!;:/\-]+|\s+`)

type compiledSkill struct {
	name     string
	lower    string
	keywords []keywordMatcher
}

type keywordMatcher struct {
	text string
	re   *regexp.Regexp
}

var compiled = func() []compiledSkill {
	out := make([]compiledSkill, len(dictionary))
	for i, s := range dictionary {
		cs := compiledSkill{name: s.Name, lower: strings.ToLower(s.Name)}
		for _, kw := range s.Keywords {
			kw = textnorm.Normalize(kw)
			cs.keywords = append(cs.keywords, keywordMatcher{text: kw, re: textnorm.WordBoundary(kw)})
		}
		out[i] = cs
	}
	return out
}()

// Hit is a keyword occurrence of a canonical skill.
type Hit struct {
	Skill   string
	Keyword string
	Start   int
	End     int
}

// KeywordHits returns the first keyword occurrence for each canonical skill
// found in text, in dictionary order.
func KeywordHits(text string) []Hit {
	norm := textnorm.Normalize(text)
	var hits []Hit
	for _, cs := range compiled {
		for _, kw := range cs.keywords {
			loc := kw.re.FindStringIndex(norm)
			if loc == nil {
				continue
			}
			hits = append(hits, Hit{Skill: cs.name, Keyword: kw.text, Start: loc[0], End: loc[1]})
			break
		}
	}
	return hits
}

// Similarity is a normalised edit-distance ratio in [0,1].
func Similarity(a, b string) float64 {
	a, b = textnorm.Normalize(a), textnorm.Normalize(b)
	if a == "" && b == "" {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// FuzzyMatch returns the canonical skill most similar to token when the
// similarity reaches FuzzyThreshold.
func FuzzyMatch(token string) (string, bool) {
	best, bestScore := "", 0.0
	for _, cs := range compiled {
		if score := Similarity(token, cs.lower); score > bestScore {
			best, bestScore = cs.name, score
		}
	}
	if best == "" || bestScore < FuzzyThreshold {
		return "", false
	}
	return best, true
}

// Infer derives the required canonical skills for a task description.
// Keyword hits come first, then fuzzy token matches; duplicates are dropped.
func Infer(description string) []string {
	found := []string{}
	for _, h := range KeywordHits(description) {
		found = append(found, h.Skill)
	}
	for _, tok := range tokenSplit.Split(textnorm.Normalize(description), -1) {
		if tok == "" {
			continue
		}
		if s, ok := FuzzyMatch(tok); ok {
			found = append(found, s)
		}
	}
	return textnorm.Dedupe(found)
}

// Enrich fills RequiredSkills for tasks that have none yet.
func Enrich(tasks []*model.Task) {
	for _, t := range tasks {
		if len(t.RequiredSkills) > 0 {
			continue
		}
		t.RequiredSkills = Infer(t.Description)
	}
}

// MemberMatch is a member's coverage of a task's required skills.
type MemberMatch struct {
	Member  model.TeamMember
	Matched []string
	Score   float64
}

// RankMembers scores each member by the share of required skills they
// cover. With no required skills every member scores zero in roster order.
func RankMembers(required []string, members []model.TeamMember) []MemberMatch {
	out := make([]MemberMatch, 0, len(members))
	if len(required) == 0 {
		for _, m := range members {
			out = append(out, MemberMatch{Member: m, Matched: []string{}})
		}
		return out
	}
	for _, m := range members {
		have := make([]string, 0, len(m.Skills))
		for _, s := range m.Skills {
			if n := textnorm.Normalize(s); n != "" {
				have = append(have, n)
			}
		}
		matched := []string{}
		for _, req := range required {
			r := textnorm.Normalize(req)
			for _, h := range have {
				if strings.Contains(h, r) || strings.Contains(r, h) {
					matched = append(matched, req)
					break
				}
			}
		}
		out = append(out, MemberMatch{
			Member:  m,
			Matched: matched,
			Score:   float64(len(matched)) / float64(len(required)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
