package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acourtel/stackgraph/internal/model"
)

func TestFlatSharedResourcePlacedOnce(t *testing.T) {
	g := NewFlatBuilder().Build(testSnapshot())

	// Credential 2 is shared by two services: one node, two edges.
	count := 0
	for _, n := range g.Nodes {
		if n.ID == "credential-1-2" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	edges := 0
	for _, e := range g.Edges {
		if e.Target == "credential-1-2" {
			edges++
		}
	}
	assert.Equal(t, 2, edges)
}

func TestFlatServerDirectResources(t *testing.T) {
	g := NewFlatBuilder().Build(testSnapshot())

	// Server-direct credential connects from the server node itself.
	var found bool
	for _, e := range g.Edges {
		if e.Source == "server-1" && e.Target == "credential-1-1" {
			found = true
			assert.Equal(t, ColorCredential, e.Style.Color)
		}
	}
	assert.True(t, found)
}

func TestFlatServiceInstancedPerServer(t *testing.T) {
	snap := &model.Snapshot{
		Servers: []model.Server{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
		Services: []model.Service{
			{ID: 5, Name: "shared", ServerIDs: []int{1, 2}},
		},
	}

	g := NewFlatBuilder().Build(snap)
	ids := nodeIDs(g)
	assert.Contains(t, ids, "service-1-5")
	assert.Contains(t, ids, "service-2-5")
}

func TestFlatEdgeStyles(t *testing.T) {
	g := NewFlatBuilder().Build(testSnapshot())

	styleOf := func(source, target string) *EdgeStyle {
		for _, e := range g.Edges {
			if e.Source == source && e.Target == target {
				return &e.Style
			}
		}
		return nil
	}

	srvSvc := styleOf("server-1", "service-1-10")
	require.NotNil(t, srvSvc)
	assert.Equal(t, ColorServer, srvSvc.Color)
	assert.False(t, srvSvc.Dashed)

	internal := styleOf("service-1-10", "dep-1-11")
	require.NotNil(t, internal)
	assert.Equal(t, ColorInternalDep, internal.Color)
	assert.True(t, internal.Dashed)

	external := styleOf("service-1-10", "ext-1-1")
	require.NotNil(t, external)
	assert.Equal(t, ColorExternalService, external.Color)
	assert.True(t, external.Dashed)

	domain := styleOf("service-1-10", "domain-1-2")
	require.NotNil(t, domain)
	assert.Equal(t, ColorDomain, domain.Color)
}

func TestFlatNoGroupNodes(t *testing.T) {
	g := NewFlatBuilder().Build(testSnapshot())
	for _, n := range g.Nodes {
		assert.NotEqual(t, KindGroup, n.Kind)
		assert.Empty(t, n.ParentID)
	}
}

func TestFlatDependencyScopedPerServer(t *testing.T) {
	// postgres (service 11) is a dependency target for services on both
	// servers; each server scope gets its own instance.
	g := NewFlatBuilder().Build(testSnapshot())
	ids := nodeIDs(g)
	assert.Contains(t, ids, "dep-1-11")
	assert.Contains(t, ids, "dep-2-11")
}
