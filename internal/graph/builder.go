// Package graph turns a relational inventory snapshot into a positioned,
// deduplicated node/edge graph ready for a rendering host.
package graph

import (
	"fmt"

	"github.com/acourtel/stackgraph/internal/model"
)

// Builder lays out a snapshot as a graph. Both layout strategies satisfy
// it; Build picks the grouped one as the default.
type Builder interface {
	Build(snap *model.Snapshot) *Graph
}

// Build constructs the graph with the default grouped layout.
func Build(snap *model.Snapshot) *Graph {
	return NewGroupedBuilder().Build(snap)
}

// BuilderFor returns the builder for a layout name. Unknown names fall
// back to grouped.
func BuilderFor(layout string) Builder {
	if layout == "flat" {
		return NewFlatBuilder()
	}
	return NewGroupedBuilder()
}

// Layout constants. The column/row grid is fixed; re-layout on resize and
// layout persistence are out of scope.
const (
	colPitch   = 320.0
	rowPitch   = 160.0
	groupPad   = 40.0
	childPitch = 70.0
	childWidth = 180.0

	baseEdgeWidth = 1.5
)

// credEntry is one deduplicated credential reachable from a server, with
// the services that reference it (service id 0 means the server itself).
type credEntry struct {
	cred       *model.Credential
	serviceIDs []int
}

type domainEntry struct {
	domain     *model.Domain
	serviceIDs []int
}

// depEntry is one deduplicated dependency reachable from a server's
// services. target is nil for external dependencies.
type depEntry struct {
	target     *model.Service
	dep        model.Dependency
	serviceIDs []int
}

// serverResources is the aggregated child-resource set of one server: the
// union of everything attached to the server directly and to each of its
// services, deduplicated by entity identity within the server's scope.
type serverResources struct {
	services    []*model.Service
	credentials []credEntry
	domains     []domainEntry
	deps        []depEntry
}

// visualizable reports whether the server has anything worth drawing. A
// server with no services, credentials, and domains is omitted from the
// graph entirely.
func (r serverResources) visualizable() bool {
	return len(r.services) > 0 || len(r.credentials) > 0 || len(r.domains) > 0
}

// collectServer aggregates the resources reachable from one server.
// Iteration order is snapshot order throughout, so the result is stable
// across rebuilds with unchanged data.
func collectServer(snap *model.Snapshot, server *model.Server) serverResources {
	res := serverResources{services: snap.ServicesForServer(server.ID)}

	credIdx := make(map[int]int)
	addCred := func(credID, serviceID int) {
		cred := snap.CredentialByID(credID)
		if cred == nil {
			return
		}
		if i, ok := credIdx[credID]; ok {
			res.credentials[i].serviceIDs = append(res.credentials[i].serviceIDs, serviceID)
			return
		}
		credIdx[credID] = len(res.credentials)
		res.credentials = append(res.credentials, credEntry{cred: cred, serviceIDs: []int{serviceID}})
	}

	domainIdx := make(map[int]int)
	addDomain := func(domainID, serviceID int) {
		domain := snap.DomainByID(domainID)
		if domain == nil {
			return
		}
		if i, ok := domainIdx[domainID]; ok {
			res.domains[i].serviceIDs = append(res.domains[i].serviceIDs, serviceID)
			return
		}
		domainIdx[domainID] = len(res.domains)
		res.domains = append(res.domains, domainEntry{domain: domain, serviceIDs: []int{serviceID}})
	}

	for _, id := range server.CredentialIDs {
		addCred(id, 0)
	}
	for _, id := range server.DomainIDs {
		addDomain(id, 0)
	}

	internalIdx := make(map[int]int)
	externalIdx := make(map[string]int)
	for _, svc := range res.services {
		for _, id := range svc.CredentialIDs {
			addCred(id, svc.ID)
		}
		for _, id := range svc.DomainIDs {
			addDomain(id, svc.ID)
		}
		for _, dep := range svc.Dependencies {
			if !dep.Valid() {
				continue
			}
			if dep.Internal() {
				target := snap.ServiceByID(dep.DependencyServiceID)
				if target == nil {
					continue
				}
				if i, ok := internalIdx[target.ID]; ok {
					res.deps[i].serviceIDs = append(res.deps[i].serviceIDs, svc.ID)
					continue
				}
				internalIdx[target.ID] = len(res.deps)
				res.deps = append(res.deps, depEntry{target: target, dep: dep, serviceIDs: []int{svc.ID}})
				continue
			}
			if i, ok := externalIdx[dep.ExternalServiceName]; ok {
				res.deps[i].serviceIDs = append(res.deps[i].serviceIDs, svc.ID)
				continue
			}
			externalIdx[dep.ExternalServiceName] = len(res.deps)
			res.deps = append(res.deps, depEntry{dep: dep, serviceIDs: []int{svc.ID}})
		}
	}

	return res
}

// edgeBuilder accumulates edges with unique ids and per-pair handle slots.
// It is local to one build pass; nothing in this package holds state
// between builds.
type edgeBuilder struct {
	edges []Edge
	slots slotTracker
}

func newEdgeBuilder() *edgeBuilder {
	return &edgeBuilder{slots: slotTracker{}}
}

func (b *edgeBuilder) add(source, target string, style EdgeStyle) {
	slot := b.slots.next(source, target)
	b.edges = append(b.edges, Edge{
		ID:           fmt.Sprintf("e%d-%s-%s", len(b.edges)+1, source, target),
		Source:       source,
		Target:       target,
		SourceHandle: "out-" + slot,
		TargetHandle: "in-" + slot,
		Style:        style,
	})
}

// Relation styles. Each relationship type has a fixed color and dash.
func serverServiceStyle() EdgeStyle {
	return EdgeStyle{Color: ColorServer, Width: baseEdgeWidth, Opacity: 1}
}

func serviceCredentialStyle() EdgeStyle {
	return EdgeStyle{Color: ColorCredential, Width: baseEdgeWidth, Opacity: 1}
}

func serviceDomainStyle() EdgeStyle {
	return EdgeStyle{Color: ColorDomain, Width: baseEdgeWidth, Opacity: 1}
}

func internalDepStyle() EdgeStyle {
	return EdgeStyle{Color: ColorInternalDep, Width: baseEdgeWidth, Dashed: true, Opacity: 1}
}

func externalDepStyle() EdgeStyle {
	return EdgeStyle{Color: ColorExternalService, Width: baseEdgeWidth, Dashed: true, Opacity: 1}
}

// groupStyle reuses the summarized kind's color at reduced opacity for
// group-to-group edges.
func groupStyle(base EdgeStyle) EdgeStyle {
	base.Opacity = 0.5
	return base
}

// Scoped node ids. Scope is the owning server: the same service,
// credential, or domain reachable from two servers gets one instance per
// server, and at most one instance within a server.
func serverNodeID(serverID int) string {
	return fmt.Sprintf("server-%d", serverID)
}

func serviceNodeID(serverID, serviceID int) string {
	return fmt.Sprintf("service-%d-%d", serverID, serviceID)
}

func credentialNodeID(serverID, credID int) string {
	return fmt.Sprintf("credential-%d-%d", serverID, credID)
}

func domainNodeID(serverID, domainID int) string {
	return fmt.Sprintf("domain-%d-%d", serverID, domainID)
}

// depNodeID identifies a service appearing as a dependency target. It is
// distinct from the service's own node id so that the dependencies column
// shows the target without collapsing it into the services column.
func depNodeID(serverID, serviceID int) string {
	return fmt.Sprintf("dep-%d-%d", serverID, serviceID)
}

func externalNodeID(serverID, ord int) string {
	return fmt.Sprintf("ext-%d-%d", serverID, ord)
}

func groupNodeID(serverID int, kind string) string {
	return fmt.Sprintf("group-%d-%s", serverID, kind)
}

func serverNode(server *model.Server, pos Position) Node {
	return Node{
		ID:       serverNodeID(server.ID),
		Kind:     KindServer,
		Position: pos,
		Data: NodeData{
			Label:       server.Name,
			Detail:      server.Address,
			ResourceURL: ResourceURL(KindServer, server.ID),
		},
	}
}

func serviceNode(id string, svc *model.Service, pos Position, parent string) Node {
	return Node{
		ID:       id,
		Kind:     KindService,
		Position: pos,
		ParentID: parent,
		Data: NodeData{
			Label:       svc.Name,
			ResourceURL: ResourceURL(KindService, svc.ID),
		},
	}
}

func credentialNode(id string, cred *model.Credential, pos Position, parent string) Node {
	return Node{
		ID:       id,
		Kind:     KindCredential,
		Position: pos,
		ParentID: parent,
		Data: NodeData{
			Label:       cred.Name,
			Detail:      cred.Username,
			ResourceURL: ResourceURL(KindCredential, cred.ID),
		},
	}
}

func domainNode(id string, domain *model.Domain, pos Position, parent string) Node {
	return Node{
		ID:       id,
		Kind:     KindDomain,
		Position: pos,
		ParentID: parent,
		Data: NodeData{
			Label:       domain.Name,
			ResourceURL: ResourceURL(KindDomain, domain.ID),
		},
	}
}

func externalNode(id string, dep model.Dependency, pos Position, parent string) Node {
	return Node{
		ID:       id,
		Kind:     KindExternalService,
		Position: pos,
		ParentID: parent,
		Data: NodeData{
			Label:  dep.ExternalServiceName,
			Detail: dep.ExternalType,
		},
	}
}
