package graph

import (
	"github.com/acourtel/stackgraph/internal/model"
)

// GroupedBuilder is the primary layout: per server, services are nested in
// one synthetic group node, and aggregated resources land in one group per
// kind (Dependencies, Credentials, Domains) connected by a single summary
// edge each. Scales better with fan-out than the flat layout.
type GroupedBuilder struct{}

// NewGroupedBuilder creates a grouped-layout builder.
func NewGroupedBuilder() *GroupedBuilder {
	return &GroupedBuilder{}
}

const rowGap = 40.0

// groupHeight is the height of a group node sized to fit n children.
func groupHeight(n int) float64 {
	return 2*groupPad + float64(n)*childPitch
}

func groupNode(id, label string, pos Position, children int) Node {
	return Node{
		ID:       id,
		Kind:     KindGroup,
		Position: pos,
		Data:     NodeData{Label: label},
		Width:    childWidth + 2*groupPad,
		Height:   groupHeight(children),
	}
}

// childPos is the position of the j-th child inside its group, relative to
// the group's origin.
func childPos(j int) Position {
	return Position{X: groupPad, Y: groupPad + float64(j)*childPitch}
}

// Build lays out the snapshot in the grouped layout. Deterministic for a
// given snapshot: servers, services, and resources are walked in snapshot
// order and every accumulator is local to this call.
func (b *GroupedBuilder) Build(snap *model.Snapshot) *Graph {
	g := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	eb := newEdgeBuilder()
	y := 0.0

	for i := range snap.Servers {
		server := &snap.Servers[i]
		res := collectServer(snap, server)
		if !res.visualizable() {
			continue
		}

		srvID := serverNodeID(server.ID)
		g.Nodes = append(g.Nodes, serverNode(server, Position{X: 0, Y: y}))

		// Services column: one group holding every service of this server.
		servicesHeight := 0.0
		resourceSource := srvID
		if len(res.services) > 0 {
			gid := groupNodeID(server.ID, "services")
			g.Nodes = append(g.Nodes, groupNode(gid, "Services", Position{X: colPitch, Y: y}, len(res.services)))
			for j, svc := range res.services {
				g.Nodes = append(g.Nodes, serviceNode(serviceNodeID(server.ID, svc.ID), svc, childPos(j), gid))
			}
			eb.add(srvID, gid, serverServiceStyle())
			servicesHeight = groupHeight(len(res.services))
			resourceSource = gid
		}

		// Resource column: one group per kind, stacked below each other.
		resourceY := y
		addGroup := func(kind, label string, children int, style EdgeStyle) string {
			gid := groupNodeID(server.ID, kind)
			g.Nodes = append(g.Nodes, groupNode(gid, label, Position{X: 2 * colPitch, Y: resourceY}, children))
			eb.add(resourceSource, gid, groupStyle(style))
			resourceY += groupHeight(children) + rowGap
			return gid
		}

		if len(res.deps) > 0 {
			gid := addGroup("dependencies", "Dependencies", len(res.deps), internalDepStyle())
			for j, entry := range res.deps {
				if entry.target != nil {
					g.Nodes = append(g.Nodes, serviceNode(depNodeID(server.ID, entry.target.ID), entry.target, childPos(j), gid))
					continue
				}
				g.Nodes = append(g.Nodes, externalNode(externalNodeID(server.ID, j), entry.dep, childPos(j), gid))
			}
		}
		if len(res.credentials) > 0 {
			gid := addGroup("credentials", "Credentials", len(res.credentials), serviceCredentialStyle())
			for j, entry := range res.credentials {
				g.Nodes = append(g.Nodes, credentialNode(credentialNodeID(server.ID, entry.cred.ID), entry.cred, childPos(j), gid))
			}
		}
		if len(res.domains) > 0 {
			gid := addGroup("domains", "Domains", len(res.domains), serviceDomainStyle())
			for j, entry := range res.domains {
				g.Nodes = append(g.Nodes, domainNode(domainNodeID(server.ID, entry.domain.ID), entry.domain, childPos(j), gid))
			}
		}

		rowHeight := rowPitch
		if servicesHeight > rowHeight {
			rowHeight = servicesHeight
		}
		if resourceColumn := resourceY - y; resourceColumn > rowHeight {
			rowHeight = resourceColumn
		}
		y += rowHeight + rowGap
	}

	g.Edges = eb.edges
	return g
}
