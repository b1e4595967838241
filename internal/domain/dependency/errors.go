package dependency

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCycle is returned when an execution order is requested for a cyclic graph.
var ErrCycle = errors.New("dependency cycle")

// CycleError carries one cycle found in the graph, first node repeated at the end.
type CycleError struct {
	Path []int
}

func (e *CycleError) Error() string {
	if e == nil || len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }
