// Package dependency detects "this task needs that one first" relations
// between tasks and orders them.
package dependency

import (
	"encoding/json"
	"slices"
	"sort"

	"github.com/okian/meetmind/internal/domain/model"
)

// EdgeDependsOn is the only edge type produced from transcript text.
const EdgeDependsOn = "depends_on"

// Graph is a directed graph where an edge From -> To means From depends on To.
// The adjacency maps are kept in step with the edge list.
type Graph struct {
	edges        []model.DependencyEdge
	dependencies map[int][]int
	dependents   map[int][]int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		edges:        []model.DependencyEdge{},
		dependencies: map[int][]int{},
		dependents:   map[int][]int{},
	}
}

// AddEdge records e. Self-loops and repeated (From, To) pairs are ignored.
func (g *Graph) AddEdge(e model.DependencyEdge) bool {
	if e.From == e.To || slices.Contains(g.dependencies[e.From], e.To) {
		return false
	}
	g.edges = append(g.edges, e)
	g.dependencies[e.From] = append(g.dependencies[e.From], e.To)
	g.dependents[e.To] = append(g.dependents[e.To], e.From)
	return true
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []model.DependencyEdge {
	return append([]model.DependencyEdge{}, g.edges...)
}

// Dependencies returns the tasks id depends on.
func (g *Graph) Dependencies(id int) []int {
	return append([]int{}, g.dependencies[id]...)
}

// Nodes returns every task id that appears on an edge, ascending.
func (g *Graph) Nodes() []int {
	seen := map[int]struct{}{}
	for id := range g.dependencies {
		seen[id] = struct{}{}
	}
	for id := range g.dependents {
		seen[id] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// HasCycles reports whether following dependencies can return to a task.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycle()) > 0
}

// FindCycle returns one cycle as a path that starts and ends on the same
// task, or nil. The walk visits roots and neighbours in a fixed order so
// the same graph always yields the same witness.
func (g *Graph) FindCycle() []int {
	const (
		white = iota
		gray
		black
	)
	color := map[int]int{}
	parent := map[int]int{}

	roots := make([]int, 0, len(g.dependencies))
	for id := range g.dependencies {
		roots = append(roots, id)
	}
	sort.Ints(roots)

	type frame struct {
		node int
		next int
	}
	for _, root := range roots {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack := []frame{{node: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := g.dependencies[top.node]
			if top.next >= len(deps) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			v := deps[top.next]
			top.next++
			switch color[v] {
			case white:
				color[v] = gray
				parent[v] = top.node
				stack = append(stack, frame{node: v})
			case gray:
				path := []int{v}
				for cur := top.node; cur != v; cur = parent[cur] {
					path = append(path, cur)
				}
				path = append(path, v)
				slices.Reverse(path)
				return path
			}
		}
	}
	return nil
}

// TopologicalSort orders every task that has at least one edge so that
// prerequisites come first. Tasks with no edges are not included. The
// result is only meaningful when HasCycles is false.
func (g *Graph) TopologicalSort() []int {
	nodes := g.Nodes()
	pending := make(map[int]int, len(nodes))
	var queue []int
	for _, id := range nodes {
		pending[id] = len(g.dependencies[id])
		if pending[id] == 0 {
			queue = append(queue, id)
		}
	}
	order := make([]int, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, d := range g.dependents[id] {
			pending[d]--
			if pending[d] == 0 {
				queue = append(queue, d)
			}
		}
	}
	return order
}

// Order is TopologicalSort guarded by cycle detection.
func (g *Graph) Order() ([]int, error) {
	if c := g.FindCycle(); c != nil {
		return nil, &CycleError{Path: c}
	}
	return g.TopologicalSort(), nil
}

type graphJSON struct {
	Edges          []model.DependencyEdge `json:"edges"`
	HasCycles      bool                   `json:"has_cycles"`
	ExecutionOrder []int                  `json:"execution_order"`
}

// MarshalJSON renders the edges together with the derived cycle flag and order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	order, err := g.Order()
	if err != nil {
		order = []int{}
	}
	return json.Marshal(graphJSON{Edges: g.Edges(), HasCycles: err != nil, ExecutionOrder: order})
}

// UnmarshalJSON rebuilds the graph from its edge list.
func (g *Graph) UnmarshalJSON(b []byte) error {
	var in graphJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*g = *NewGraph()
	for _, e := range in.Edges {
		g.AddEdge(e)
	}
	return nil
}
