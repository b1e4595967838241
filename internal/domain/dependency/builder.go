package dependency

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/textnorm"
)

const (
	phraseLookback   = 3
	fingerprintSize  = 3
	fingerprintMin   = 2
	fingerprintWordL = 3
	keywordMinLen    = 3
)

var dependencyKeywords = []string{
	"depends on", "dependent on", "requires", "needs", "after", "before",
	"first", "then", "once", "when", "following", "subsequent",
	"prerequisite", "blocked by", "blocking", "waiting for", "waiting on",
}

var numberedRef = regexp.MustCompile(`\b(?:task|issue|ticket|bug)\s+#?(\d+)\b`)

var refSuffixes = map[string]struct{}{
	"task": {}, "fix": {}, "update": {}, "feature": {}, "bug": {},
}

// Words that end a descriptive reference when walking backwards.
var refBreakers = func() map[string]struct{} {
	m := map[string]struct{}{}
	for _, kw := range dependencyKeywords {
		for _, w := range textnorm.Words(kw) {
			m[w] = struct{}{}
		}
	}
	for _, w := range []string{"depends", "depend", "dependent", "requires", "require", "needs", "need", "blocked", "waiting", "until"} {
		m[w] = struct{}{}
	}
	return m
}()

// HasDependencyKeyword reports whether text signals an ordering relation.
func HasDependencyKeyword(text string) bool {
	for _, kw := range dependencyKeywords {
		if textnorm.ContainsWord(text, kw) {
			return true
		}
	}
	return false
}

// References returns the ids of tasks that text mentions, in discovery order.
// Tasks can be named by number ("task 2"), by a short phrase before a word
// like "fix" or "update" ("the login fix"), or by enough of their own
// description words.
func References(text string, tasks []*model.Task) []int {
	norm := textnorm.Normalize(text)
	var refs []int
	add := func(id int) {
		if !slices.Contains(refs, id) {
			refs = append(refs, id)
		}
	}

	for _, m := range numberedRef.FindAllStringSubmatch(norm, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		for _, t := range tasks {
			if t.ID == n {
				add(t.ID)
			}
		}
	}

	for _, kws := range descriptivePhrases(norm) {
		for _, t := range tasks {
			desc := textnorm.Normalize(t.Description)
			if allContained(desc, kws) {
				add(t.ID)
			}
		}
	}

	for _, t := range tasks {
		fp := fingerprint(t.Description)
		if len(fp) < fingerprintMin {
			continue
		}
		hits := 0
		for _, w := range fp {
			if textnorm.ContainsWord(norm, w) {
				hits++
			}
		}
		if hits >= fingerprintMin {
			add(t.ID)
		}
	}
	return refs
}

// descriptivePhrases returns the keyword sets of phrases such as
// "the login fix" found in norm.
func descriptivePhrases(norm string) [][]string {
	words := textnorm.Words(norm)
	var out [][]string
	for j, w := range words {
		if _, ok := refSuffixes[w]; !ok {
			continue
		}
		var phrase []string
		for i := j - 1; i >= 0 && j-i <= phraseLookback; i-- {
			if textnorm.IsStopWord(words[i]) {
				break
			}
			if _, stop := refBreakers[words[i]]; stop {
				break
			}
			phrase = append([]string{words[i]}, phrase...)
		}
		var kws []string
		for _, p := range phrase {
			if len(p) >= keywordMinLen {
				kws = append(kws, p)
			}
		}
		if len(kws) > 0 {
			out = append(out, kws)
		}
	}
	return out
}

func allContained(desc string, kws []string) bool {
	for _, k := range kws {
		if !textnorm.ContainsWord(desc, k) {
			return false
		}
	}
	return true
}

// fingerprint is the first few long words of a description.
func fingerprint(desc string) []string {
	var out []string
	for _, w := range textnorm.Words(desc) {
		if len(w) > fingerprintWordL {
			out = append(out, w)
		}
	}
	if len(out) > fingerprintSize {
		out = out[:fingerprintSize]
	}
	return out
}

// Build scans each task's source sentence, or its description when the
// sentence is unknown, and links it to the tasks it says it depends on.
// Task.Dependencies is filled from the resulting graph.
func Build(tasks []*model.Task, sentences []model.Sentence) *Graph {
	byID := make(map[int]model.Sentence, len(sentences))
	for _, s := range sentences {
		byID[s.ID] = s
	}
	g := NewGraph()
	for _, t := range tasks {
		text := t.Description
		if id, ok := t.SourceID(); ok {
			if s, ok := byID[id]; ok {
				text = s.Text()
			}
		}
		if !HasDependencyKeyword(text) {
			continue
		}
		for _, ref := range References(text, tasks) {
			if ref == t.ID {
				continue
			}
			g.AddEdge(model.DependencyEdge{
				From:        t.ID,
				To:          ref,
				Type:        EdgeDependsOn,
				Description: fmt.Sprintf("Task %d depends on task %d", t.ID, ref),
			})
		}
	}
	for _, t := range tasks {
		t.Dependencies = g.Dependencies(t.ID)
	}
	return g
}
