package graph

import (
	"github.com/acourtel/stackgraph/internal/model"
)

// FlatBuilder is the alternate layout: no group nodes, every entity is its
// own top-level node and every relationship its own edge. Service node ids
// carry the owning-server scope, so a service visited from two servers is
// instantiated once per server. This is the same per-server dedup scope the
// grouped layout uses, which keeps highlight traversal identical across
// the two strategies.
type FlatBuilder struct{}

// NewFlatBuilder creates a flat-layout builder.
func NewFlatBuilder() *FlatBuilder {
	return &FlatBuilder{}
}

// Flat column order: servers, services, dependencies, credentials, domains.
const (
	flatColServices = 1
	flatColDeps     = 2
	flatColCreds    = 3
	flatColDomains  = 4
)

// Build lays out the snapshot in the flat layout. A resource shared by
// several services is placed once: first placement wins, later references
// reuse the stored position and only add an edge.
func (b *FlatBuilder) Build(snap *model.Snapshot) *Graph {
	g := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	eb := newEdgeBuilder()

	// Per-column row counters and the placement memo, local to this pass.
	rows := map[int]int{}
	placed := map[string]bool{}

	place := func(col int) Position {
		pos := Position{X: float64(col) * colPitch, Y: float64(rows[col]) * childPitch}
		rows[col]++
		return pos
	}

	serverRow := 0
	for i := range snap.Servers {
		server := &snap.Servers[i]
		res := collectServer(snap, server)
		if !res.visualizable() {
			continue
		}

		srvID := serverNodeID(server.ID)
		g.Nodes = append(g.Nodes, serverNode(server, Position{X: 0, Y: float64(serverRow) * rowPitch}))
		serverRow++

		serviceIDs := map[int]string{}
		for _, svc := range res.services {
			id := serviceNodeID(server.ID, svc.ID)
			serviceIDs[svc.ID] = id
			g.Nodes = append(g.Nodes, serviceNode(id, svc, place(flatColServices), ""))
			eb.add(srvID, id, serverServiceStyle())
		}

		// origin resolves the edge source for a resource reference:
		// service id 0 means the server owns the resource directly.
		origin := func(serviceID int) string {
			if serviceID == 0 {
				return srvID
			}
			return serviceIDs[serviceID]
		}

		for _, entry := range res.credentials {
			id := credentialNodeID(server.ID, entry.cred.ID)
			if !placed[id] {
				placed[id] = true
				g.Nodes = append(g.Nodes, credentialNode(id, entry.cred, place(flatColCreds), ""))
			}
			for _, ref := range entry.serviceIDs {
				eb.add(origin(ref), id, serviceCredentialStyle())
			}
		}

		for _, entry := range res.domains {
			id := domainNodeID(server.ID, entry.domain.ID)
			if !placed[id] {
				placed[id] = true
				g.Nodes = append(g.Nodes, domainNode(id, entry.domain, place(flatColDomains), ""))
			}
			for _, ref := range entry.serviceIDs {
				eb.add(origin(ref), id, serviceDomainStyle())
			}
		}

		for j, entry := range res.deps {
			var id string
			var style EdgeStyle
			if entry.target != nil {
				id = depNodeID(server.ID, entry.target.ID)
				style = internalDepStyle()
				if !placed[id] {
					placed[id] = true
					g.Nodes = append(g.Nodes, serviceNode(id, entry.target, place(flatColDeps), ""))
				}
			} else {
				id = externalNodeID(server.ID, j)
				style = externalDepStyle()
				if !placed[id] {
					placed[id] = true
					g.Nodes = append(g.Nodes, externalNode(id, entry.dep, place(flatColDeps), ""))
				}
			}
			for _, ref := range entry.serviceIDs {
				eb.add(origin(ref), id, style)
			}
		}
	}

	g.Edges = eb.edges
	return g
}
