package model

import "strings"

// TeamMember is one roster entry.
type TeamMember struct {
	Name   string   `json:"name" yaml:"name"`
	Role   string   `json:"role" yaml:"role"`
	Skills []string `json:"skills" yaml:"skills"`
}

// Team is a roster snapshot. The pipeline treats it as read-only.
type Team struct {
	Members []TeamMember `json:"members" yaml:"members"`
}

// Member returns the member whose name matches case-insensitively.
func (t Team) Member(name string) (TeamMember, bool) {
	for _, m := range t.Members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return TeamMember{}, false
}

// Names returns member names in roster order.
func (t Team) Names() []string {
	out := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		out = append(out, m.Name)
	}
	return out
}
