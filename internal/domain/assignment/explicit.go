package assignment

import (
	"regexp"
	"strings"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/textnorm"
)

const (
	cueWindow       = 20
	proximityWindow = 30
	cueConfidence   = 1.0
	nearConfidence  = 0.9
	overloadedCount = 8
	overloadedFloor = 0.7
	overloadedCut   = 0.2
)

// Group 1 is the person the task is handed to.
var assignmentCues = []*regexp.Regexp{
	regexp.MustCompile(`(\w+)\s+(?:will|should|must|can|shall)\s+`),
	regexp.MustCompile(`(?:assign|give|hand)\s+(?:this|it|task)\s+(?:to|for)\s+(\w+)`),
	regexp.MustCompile(`let\s+(\w+)\s+(?:handle|do|fix|work|take)`),
	regexp.MustCompile(`(\w+)[,\s]+(?:please|can you|will you)`),
	regexp.MustCompile(`(?:for|to)\s+(\w+)\s+(?:to|will)`),
}

var (
	contextWordRe = regexp.MustCompile(`\b(?:fix|do|handle|work|task|assign|update|create)`)
	taskWordRe    = regexp.MustCompile(`\b(?:fix|update|create|implement|do|handle|work)`)
)

func nameMatches(mentioned, name string) bool {
	if mentioned == name || strings.Contains(mentioned, name) {
		return true
	}
	if parts := strings.Fields(name); len(parts) > 1 {
		return mentioned == parts[0]
	}
	return false
}

func window(s string, start, end, pad int) string {
	return s[max(0, start-pad):min(len(s), end+pad)]
}

// explicitMention finds a roster member named as the owner of the work in
// text. Members are tried in roster order.
func explicitMention(text string, team model.Team) (string, float64, bool) {
	norm := textnorm.Normalize(text)
	for _, m := range team.Members {
		name := textnorm.Normalize(m.Name)
		if len(name) < 2 {
			continue
		}
		for _, re := range assignmentCues {
			for _, loc := range re.FindAllStringSubmatchIndex(norm, -1) {
				mentioned := norm[loc[2]:loc[3]]
				if !nameMatches(mentioned, name) {
					continue
				}
				if contextWordRe.MatchString(window(norm, loc[0], loc[1], cueWindow)) {
					return m.Name, cueConfidence, true
				}
			}
		}
		loc := textnorm.WordBoundary(name).FindStringIndex(norm)
		if loc == nil {
			continue
		}
		if taskWordRe.MatchString(window(norm, loc[0], loc[0], proximityWindow)) {
			return m.Name, nearConfidence, true
		}
	}
	return "", 0, false
}

func explicitConfidence(conf float64, count int) float64 {
	if count > overloadedCount {
		return max(overloadedFloor, conf-overloadedCut)
	}
	return conf
}
