package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acourtel/stackgraph/internal/graph"
	"github.com/acourtel/stackgraph/internal/model"
)

func buildTestGraph() *graph.Graph {
	snap := &model.Snapshot{
		Servers: []model.Server{
			{ID: 1, Name: "atlas", CredentialIDs: []int{1}},
		},
		Services: []model.Service{
			{ID: 10, Name: "webapp", ServerIDs: []int{1}, Dependencies: []model.Dependency{
				{ID: 100, ExternalServiceName: "Stripe", ExternalType: "payments"},
			}},
		},
		Credentials: []model.Credential{
			{ID: 1, Name: "root-ssh", Username: "root"},
		},
	}
	return graph.Build(snap)
}

func TestRenderD2(t *testing.T) {
	out, err := (&D2Renderer{}).Render(buildTestGraph())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "direction: right\n"))

	// Groups become containers with their children nested inside.
	assert.Contains(t, out, `group-1-services: "Services" {`)
	assert.Contains(t, out, `service-1-10: "webapp"`)
	assert.Contains(t, out, `credential-1-1: "root-ssh"`)

	// External services get the cloud shape.
	assert.Contains(t, out, "shape: cloud")

	// Edges address nested nodes through their group path.
	assert.Contains(t, out, "server-1 -> group-1-services {")
	assert.Contains(t, out, `style.stroke: "#6B7280"`)

	// Group summary edges carry the reduced opacity and dashing.
	assert.Contains(t, out, "style.stroke-dash: 3")
	assert.Contains(t, out, "style.opacity: 0.5")
}

func TestRenderD2Deterministic(t *testing.T) {
	r := &D2Renderer{}
	a, err := r.Render(buildTestGraph())
	require.NoError(t, err)
	b, err := r.Render(buildTestGraph())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderJSON(t *testing.T) {
	out, err := (&JSONRenderer{}).Render(buildTestGraph())
	require.NoError(t, err)

	assert.Contains(t, out, `"nodes"`)
	assert.Contains(t, out, `"edges"`)
	assert.Contains(t, out, `"server-1"`)
	assert.Contains(t, out, `"resourceUrl": "/servers?serverId=1"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRendererFor(t *testing.T) {
	assert.IsType(t, &D2Renderer{}, For("d2"))
	assert.IsType(t, &JSONRenderer{}, For("json"))
	assert.IsType(t, &JSONRenderer{}, For("unknown"))
}
