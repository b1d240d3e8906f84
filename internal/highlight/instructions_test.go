package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acourtel/stackgraph/internal/graph"
)

func TestInstructionsIdle(t *testing.T) {
	e := New(chainGraph())
	ins := e.Instructions()

	assert.Equal(t, ModeNone, ins.Mode)
	for _, n := range ins.Nodes {
		assert.False(t, n.Active)
	}
	// With no highlight, every edge renders at its built style.
	e1 := ins.Edges["e1"]
	assert.Equal(t, 1.5, e1.Width)
	assert.Equal(t, graph.ColorServer, e1.Color)
	assert.Equal(t, 1.0, e1.Opacity)
}

func TestInstructionsClick(t *testing.T) {
	e := New(chainGraph())
	e.NodeClick("A")
	ins := e.Instructions()

	require.Equal(t, ModeClick, ins.Mode)
	assert.True(t, ins.Nodes["A"].Active)
	assert.True(t, ins.Nodes["D"].Active)
	assert.False(t, ins.Nodes["E"].Active)

	// Active edges: base width +2, recolored to the source node's kind.
	e1 := ins.Edges["e1"] // A (server) -> B
	assert.Equal(t, 3.5, e1.Width)
	assert.Equal(t, graph.ColorServer, e1.Color)
	assert.Equal(t, 1.0, e1.Opacity)

	e2 := ins.Edges["e2"] // B (service) -> C
	assert.Equal(t, graph.ColorService, e2.Color)

	e3 := ins.Edges["e3"] // C (credential) -> D
	assert.Equal(t, graph.ColorCredential, e3.Color)

	// Inactive edges are dimmed while a highlight is active.
	e4 := ins.Edges["e4"]
	assert.Equal(t, 1.5, e4.Width)
	assert.Equal(t, 0.5, e4.Opacity)
}

func TestInstructionsHover(t *testing.T) {
	e := New(chainGraph())
	e.NodeHoverEnter("B")
	ins := e.Instructions()

	require.Equal(t, ModeHover, ins.Mode)

	// Hover widens by 1 instead of 2.
	e1 := ins.Edges["e1"]
	assert.Equal(t, 2.5, e1.Width)

	e3 := ins.Edges["e3"]
	assert.Equal(t, 0.5, e3.Opacity)
}

func TestInstructionsPure(t *testing.T) {
	e := New(chainGraph())
	e.NodeClick("A")
	assert.Equal(t, e.Instructions(), e.Instructions())
}

func TestInstructionsKeepBuiltOpacityWhenIdle(t *testing.T) {
	g := chainGraph()
	g.Edges[0].Style.Opacity = 0.5 // e.g. a group summary edge

	e := New(g)
	ins := e.Instructions()
	assert.Equal(t, 0.5, ins.Edges["e1"].Opacity)
}
