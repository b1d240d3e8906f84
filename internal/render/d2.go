package render

import (
	"fmt"
	"strings"

	"github.com/acourtel/stackgraph/internal/graph"
	"github.com/acourtel/stackgraph/internal/util"
)

// D2Renderer generates D2 diagram text from the built graph, for static
// exports of the same structure the interactive host renders. Group nodes
// become D2 containers; edge colors and dashing carry over.
type D2Renderer struct{}

func (r *D2Renderer) Render(g *graph.Graph) (string, error) {
	var b strings.Builder
	b.WriteString("direction: right\n\n")

	children := make(map[string][]graph.Node)
	for _, n := range g.Nodes {
		if n.ParentID != "" {
			children[n.ParentID] = append(children[n.ParentID], n)
		}
	}

	for _, n := range g.Nodes {
		if n.ParentID != "" {
			continue
		}
		if n.Kind == graph.KindGroup {
			r.renderGroup(&b, n, children[n.ID])
			continue
		}
		r.renderLeaf(&b, n, "")
	}

	b.WriteString("\n")

	paths := nodePaths(g)
	for _, e := range g.Edges {
		src, okSrc := paths[e.Source]
		dst, okDst := paths[e.Target]
		if !okSrc || !okDst {
			continue
		}
		fmt.Fprintf(&b, "%s -> %s {\n", src, dst)
		fmt.Fprintf(&b, "  style.stroke: %q\n", e.Style.Color)
		if e.Style.Dashed {
			b.WriteString("  style.stroke-dash: 3\n")
		}
		if e.Style.Opacity > 0 && e.Style.Opacity < 1 {
			fmt.Fprintf(&b, "  style.opacity: %.1f\n", e.Style.Opacity)
		}
		b.WriteString("}\n")
	}

	return b.String(), nil
}

func (r *D2Renderer) renderGroup(b *strings.Builder, n graph.Node, members []graph.Node) {
	fmt.Fprintf(b, "%s: %s {\n", util.SanitizeID(n.ID), util.Quote(n.Data.Label))
	fmt.Fprintf(b, "  style.stroke: %q\n", graph.ColorForKind(n.Kind))
	for _, child := range members {
		r.renderLeaf(b, child, "  ")
	}
	b.WriteString("}\n")
}

func (r *D2Renderer) renderLeaf(b *strings.Builder, n graph.Node, indent string) {
	fmt.Fprintf(b, "%s%s: %s {\n", indent, util.SanitizeID(n.ID), util.Quote(n.Data.Label))
	fmt.Fprintf(b, "%s  style.stroke: %q\n", indent, graph.ColorForKind(n.Kind))
	if n.Kind == graph.KindExternalService {
		fmt.Fprintf(b, "%s  shape: cloud\n", indent)
	}
	if n.Data.Detail != "" {
		fmt.Fprintf(b, "%s  tooltip: %q\n", indent, n.Data.Detail)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

// nodePaths maps node ids to their D2 reference paths; nodes nested in a
// group are addressed as parent.child.
func nodePaths(g *graph.Graph) map[string]string {
	paths := make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ParentID == "" {
			paths[n.ID] = util.SanitizeID(n.ID)
			continue
		}
		paths[n.ID] = util.SanitizeID(n.ParentID) + "." + util.SanitizeID(n.ID)
	}
	return paths
}
