package render

import "github.com/acourtel/stackgraph/internal/graph"

// Renderer turns a built graph into an output document.
type Renderer interface {
	Render(g *graph.Graph) (string, error)
}

// For returns the renderer for a format name. Unknown formats fall back
// to JSON.
func For(format string) Renderer {
	if format == "d2" {
		return &D2Renderer{}
	}
	return &JSONRenderer{}
}
