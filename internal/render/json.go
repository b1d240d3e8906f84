package render

import (
	"encoding/json"

	"github.com/acourtel/stackgraph/internal/graph"
)

// JSONRenderer emits the graph as the JSON document the rendering host
// consumes: a nodes array and an edges array, positions included.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(g *graph.Graph) (string, error) {
	out, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
