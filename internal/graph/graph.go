package graph

// NodeKind classifies a graph node. The set is closed; every kind-driven
// table in this package switches exhaustively over it.
type NodeKind string

const (
	KindServer          NodeKind = "server"
	KindService         NodeKind = "service"
	KindCredential      NodeKind = "credential"
	KindDomain          NodeKind = "domain"
	KindExternalService NodeKind = "external-service"
	KindGroup           NodeKind = "group"
)

// Position is an absolute canvas position for top-level nodes, or a
// position relative to the parent group for nested nodes.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the display payload attached to a node.
type NodeData struct {
	Label       string `json:"label"`
	Detail      string `json:"detail,omitempty"`
	ResourceURL string `json:"resourceUrl,omitempty"`
}

// Node is one entity or group in the laid-out graph.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
	ParentID string   `json:"parentId,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
}

// EdgeStyle is the visual style an edge is built with. The highlight
// engine derives per-event overrides from it but never mutates it.
type EdgeStyle struct {
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Dashed  bool    `json:"dashed,omitempty"`
	Opacity float64 `json:"opacity"`
}

// Edge is one relationship in the laid-out graph.
type Edge struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	SourceHandle string    `json:"sourceHandle"`
	TargetHandle string    `json:"targetHandle"`
	Style        EdgeStyle `json:"style"`
}

// Graph is the positioned, deduplicated output of a build. It is immutable
// between rebuilds; highlight state lives outside it.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// HasNode reports whether a node id exists in the graph.
func (g *Graph) HasNode(id string) bool {
	return g.NodeByID(id) != nil
}
