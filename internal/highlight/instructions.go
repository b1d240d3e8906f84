package highlight

import (
	"github.com/acourtel/stackgraph/internal/graph"
)

// Width boost over the built edge width for highlighted edges.
const (
	clickWidthBoost = 2
	hoverWidthBoost = 1
	dimmedOpacity   = 0.5
)

// NodeInstruction is the per-node render override.
type NodeInstruction struct {
	Active bool `json:"active"`
}

// EdgeInstruction is the per-edge render override.
type EdgeInstruction struct {
	Width   float64 `json:"width"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// Instructions is the full render-instruction set the host applies after a
// highlight-state change.
type Instructions struct {
	Mode  Mode                       `json:"mode"`
	Nodes map[string]NodeInstruction `json:"nodes"`
	Edges map[string]EdgeInstruction `json:"edges"`
}

// Instructions derives the render-instruction set from the current state.
// Pure with respect to the engine: calling it twice yields the same set.
//
// An active edge is widened and recolored to its source node's kind color;
// with a highlight active, inactive edges are dimmed so the active
// subgraph reads as emphasized; with no highlight, everything renders at
// its built style.
func (e *Engine) Instructions() Instructions {
	out := Instructions{
		Mode:  e.mode,
		Nodes: make(map[string]NodeInstruction, len(e.g.Nodes)),
		Edges: make(map[string]EdgeInstruction, len(e.g.Edges)),
	}

	for _, n := range e.g.Nodes {
		out.Nodes[n.ID] = NodeInstruction{Active: e.NodeActive(n.ID)}
	}

	boost := 0.0
	switch e.mode {
	case ModeClick:
		boost = clickWidthBoost
	case ModeHover:
		boost = hoverWidthBoost
	}

	for _, edge := range e.g.Edges {
		switch {
		case e.EdgeActive(edge.ID):
			color := edge.Style.Color
			if src := e.g.NodeByID(edge.Source); src != nil {
				color = graph.ColorForKind(src.Kind)
			}
			out.Edges[edge.ID] = EdgeInstruction{
				Width:   edge.Style.Width + boost,
				Color:   color,
				Opacity: 1,
			}
		case e.mode != ModeNone:
			out.Edges[edge.ID] = EdgeInstruction{
				Width:   edge.Style.Width,
				Color:   edge.Style.Color,
				Opacity: dimmedOpacity,
			}
		default:
			out.Edges[edge.ID] = EdgeInstruction{
				Width:   edge.Style.Width,
				Color:   edge.Style.Color,
				Opacity: edge.Style.Opacity,
			}
		}
	}

	return out
}
