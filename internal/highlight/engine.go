// Package highlight derives the click/hover highlight state for a built
// graph. The rendering host dispatches pointer events in; render
// instructions come back out. State is owned here exclusively; the host
// reads it, never writes it.
package highlight

import (
	"github.com/acourtel/stackgraph/internal/graph"
)

// Mode is the current highlight mode.
type Mode string

const (
	ModeNone  Mode = "none"
	ModeClick Mode = "click"
	ModeHover Mode = "hover"
)

// incidence is one edge touching a node, with the node on the other end.
// The adjacency is undirected: every edge appears under both endpoints.
type incidence struct {
	edgeID string
	other  string
}

// Engine holds the highlight state for one graph. Operations are
// synchronous and each one fully replaces the prior derived state; there
// is no async work and nothing to lock.
type Engine struct {
	g   *graph.Graph
	adj map[string][]incidence

	mode        Mode
	hovered     string
	activeNodes map[string]struct{}
	activeEdges map[string]struct{}
}

// New builds an engine over a graph, indexing adjacency once so every
// traversal touches each edge a constant number of times.
func New(g *graph.Graph) *Engine {
	adj := make(map[string][]incidence, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], incidence{edgeID: e.ID, other: e.Target})
		adj[e.Target] = append(adj[e.Target], incidence{edgeID: e.ID, other: e.Source})
	}
	return &Engine{
		g:           g,
		adj:         adj,
		mode:        ModeNone,
		activeNodes: map[string]struct{}{},
		activeEdges: map[string]struct{}{},
	}
}

// Mode returns the current highlight mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// NodeActive reports whether a node is highlighted.
func (e *Engine) NodeActive(id string) bool {
	_, ok := e.activeNodes[id]
	return ok
}

// EdgeActive reports whether an edge is highlighted.
func (e *Engine) EdgeActive(id string) bool {
	_, ok := e.activeEdges[id]
	return ok
}

// ActiveNodeCount returns how many nodes are highlighted.
func (e *Engine) ActiveNodeCount() int {
	return len(e.activeNodes)
}

// ActiveEdgeCount returns how many edges are highlighted.
func (e *Engine) ActiveEdgeCount() int {
	return len(e.activeEdges)
}

// NodeClick highlights the full connected component of the clicked node:
// a breadth-first walk over the undirected adjacency, any number of hops,
// marking every edge it touches, including edges between two nodes that
// were both already visited. Replaces any prior state unconditionally.
// A stale node id (event racing a rebuild) is a no-op.
func (e *Engine) NodeClick(id string) {
	if !e.g.HasNode(id) {
		return
	}

	nodes := map[string]struct{}{id: {}}
	edges := map[string]struct{}{}

	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, inc := range e.adj[current] {
			edges[inc.edgeID] = struct{}{}
			if _, seen := nodes[inc.other]; seen {
				continue
			}
			nodes[inc.other] = struct{}{}
			queue = append(queue, inc.other)
		}
	}

	e.mode = ModeClick
	e.hovered = ""
	e.activeNodes = nodes
	e.activeEdges = edges
}

// NodeHoverEnter highlights the one-hop neighborhood of a node: the node
// itself, its direct neighbors, and the edges incident to it. A no-op
// while a click highlight is active (click wins), when re-entering the
// node already hovered, and for stale node ids.
func (e *Engine) NodeHoverEnter(id string) {
	if e.mode == ModeClick {
		return
	}
	if e.mode == ModeHover && e.hovered == id {
		return
	}
	if !e.g.HasNode(id) {
		return
	}

	nodes := map[string]struct{}{id: {}}
	edges := map[string]struct{}{}
	for _, inc := range e.adj[id] {
		edges[inc.edgeID] = struct{}{}
		nodes[inc.other] = struct{}{}
	}

	e.mode = ModeHover
	e.hovered = id
	e.activeNodes = nodes
	e.activeEdges = edges
}

// NodeHoverLeave clears a hover highlight. Leaving a hovered node must not
// erase an active click selection, so in click mode this is a no-op.
func (e *Engine) NodeHoverLeave() {
	if e.mode != ModeHover {
		return
	}
	e.reset()
}

// PaneClick (click on empty background) unconditionally clears the
// highlight regardless of prior mode.
func (e *Engine) PaneClick() {
	e.reset()
}

func (e *Engine) reset() {
	e.mode = ModeNone
	e.hovered = ""
	e.activeNodes = map[string]struct{}{}
	e.activeEdges = map[string]struct{}{}
}
