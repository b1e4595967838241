package assignment

import (
	"slices"
	"sort"
	"strings"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/skills"
	"github.com/okian/meetmind/internal/domain/textnorm"
)

const (
	skillBase        = 0.5
	skillWeight      = 0.4
	skillCeiling     = 0.9
	boostedCeiling   = 0.95
	lightLoadBoost   = 0.05
	heavyLoadPenalty = 0.1
	heavyLoadMargin  = 2
	noSkillBase      = 0.3
	noSkillLight     = 0.4
	noSkillHeavy     = 0.2
	roleMapped       = 0.6
	roleDirect       = 0.7
	roleNone         = 0.2
	fallbackConf     = 0.1
	bonusPerTask     = 0.05
)

var roleSkills = []struct {
	role   string
	skills []string
}{
	{"frontend", []string{"React", "JavaScript", "UI bugs", "Frontend", "UI/UX"}},
	{"backend", []string{"Backend", "Node.js", "Databases", "API design"}},
	{"designer", []string{"UI/UX", "Figma", "Frontend"}},
	{"qa", []string{"Testing", "Automation", "Bug tracking"}},
	{"engineer", []string{"React", "JavaScript", "Node.js", "Backend", "Frontend"}},
	{"developer", []string{"React", "JavaScript", "Node.js", "Backend", "Frontend"}},
}

type candidate struct {
	name       string
	confidence float64
	matched    []string
}

func skillCandidates(task *model.Task, ranked []skills.MemberMatch, w Workload, teamSize int) []candidate {
	avg := w.Average(teamSize)
	var out []candidate
	for _, r := range ranked {
		load := float64(w.Count(r.Member.Name))
		switch {
		case r.Score > 0:
			c := min(skillCeiling, skillBase+r.Score*skillWeight)
			if load < avg {
				c = min(boostedCeiling, c+lightLoadBoost)
			} else if load > avg+heavyLoadMargin {
				c = max(minConfidence, c-heavyLoadPenalty)
			}
			out = append(out, candidate{name: r.Member.Name, confidence: c, matched: r.Matched})
		case len(task.RequiredSkills) == 0:
			c := noSkillBase
			if load < avg {
				c = noSkillLight
			} else if load > avg+1 {
				c = noSkillHeavy
			}
			out = append(out, candidate{name: r.Member.Name, confidence: c, matched: r.Matched})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].confidence != out[j].confidence {
			return out[i].confidence > out[j].confidence
		}
		return w.Count(out[i].name) < w.Count(out[j].name)
	})
	return out
}

func roleCandidates(task *model.Task, team model.Team) []candidate {
	if len(task.RequiredSkills) == 0 {
		out := make([]candidate, 0, len(team.Members))
		for _, m := range team.Members {
			out = append(out, candidate{name: m.Name, confidence: noSkillBase})
		}
		return out
	}
	var out []candidate
	for _, m := range team.Members {
		role := textnorm.Normalize(m.Role)
		c := 0.0
		for _, s := range task.RequiredSkills {
			for _, rs := range roleSkills {
				if textnorm.ContainsWord(role, rs.role) && slices.Contains(rs.skills, s) {
					c = max(c, roleMapped)
				}
			}
			sn := textnorm.Normalize(s)
			if role != "" && (strings.Contains(role, sn) || strings.Contains(sn, role)) {
				c = max(c, roleDirect)
			}
		}
		if c > 0 {
			out = append(out, candidate{name: m.Name, confidence: c})
		}
	}
	if len(out) == 0 {
		for _, m := range team.Members {
			out = append(out, candidate{name: m.Name, confidence: roleNone})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].confidence > out[j].confidence })
	return out
}

// pickBest applies workload adjustment and a below-average bonus, keeping
// the first candidate with the highest result.
func pickBest(cands []candidate, task *model.Task, w Workload, teamSize int, flatBonus bool) (candidate, bool) {
	best, found := candidate{}, false
	bestScore := -1.0
	avg := w.Average(teamSize)
	for _, c := range cands {
		final := AdjustForWorkload(c.name, c.confidence, w, task.Priority, teamSize)
		if load := float64(w.Count(c.name)); teamSize > 1 && load < avg {
			bonus := (avg - load) * bonusPerTask
			if flatBonus {
				bonus = bonusPerTask
			}
			final = min(boostedCeiling, final+bonus)
		}
		if final > bestScore {
			bestScore = final
			best = candidate{name: c.name, confidence: final, matched: c.matched}
			found = true
		}
	}
	return best, found
}

func leastLoaded(team model.Team, w Workload) (string, bool) {
	if len(team.Members) == 0 {
		return "", false
	}
	pick := team.Members[0].Name
	for _, m := range team.Members[1:] {
		if w.Count(m.Name) < w.Count(pick) {
			pick = m.Name
		}
	}
	return pick, true
}

func alternatives(cands []candidate, chosen string) []model.Alternative {
	out := []model.Alternative{}
	for _, c := range cands {
		if c.name == chosen {
			continue
		}
		out = append(out, model.Alternative{Name: c.name, Confidence: c.confidence})
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}
