// Package types contains the small enumerations shared across the pipeline.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPriority is returned when a priority string cannot be parsed.
var ErrUnknownPriority = errors.New("unknown priority")

// Priority is the urgency level of a task. Lower values are more urgent,
// so sorting ascending puts critical work first.
type Priority int

// Priority levels in descending urgency.
const (
	PriorityUnset Priority = iota
	PriorityCritical
	PriorityHigh
	PriorityMedium
	PriorityLow
)

var priorityNames = map[Priority]string{
	PriorityCritical: "critical",
	PriorityHigh:     "high",
	PriorityMedium:   "medium",
	PriorityLow:      "low",
}

// String returns the wire form of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return ""
}

// Valid reports whether p is one of the four defined levels.
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Rank orders priorities for batch sorting: critical=0 ... low=3.
// Unset priorities rank as medium.
func (p Priority) Rank() int {
	if !p.Valid() {
		return int(PriorityMedium) - 1
	}
	return int(p) - 1
}

// MoreUrgentThan reports whether p outranks q.
func (p Priority) MoreUrgentThan(q Priority) bool {
	return p.Rank() < q.Rank()
}

// ParsePriority converts the wire form into a Priority.
func ParsePriority(s string) (Priority, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for p, name := range priorityNames {
		if name == needle {
			return p, nil
		}
	}
	return PriorityUnset, fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input leaves
// the priority unset.
func (p *Priority) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = PriorityUnset
		return nil
	}
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// AssignmentMethod names the strategy tier that produced an assignment.
type AssignmentMethod string

// Assignment strategy tiers, in evaluation order.
const (
	MethodExplicit   AssignmentMethod = "explicit"
	MethodSkillMatch AssignmentMethod = "skill_match"
	MethodRoleMatch  AssignmentMethod = "role_match"
	MethodFallback   AssignmentMethod = "fallback"
	MethodNone       AssignmentMethod = "none"
)

// EntityType classifies an extracted mention.
type EntityType string

// Entity kinds recognised by the extractor.
const (
	EntityPerson    EntityType = "person"
	EntityTechnical EntityType = "technical"
	EntityTime      EntityType = "time"
)
