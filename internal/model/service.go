package model

import "strings"

// Service represents an application or system service. A service may run on
// several servers; older inventories carry a single server back-reference
// instead, which ServerRefs folds in.
type Service struct {
	ID            int          `yaml:"id" json:"id"`
	Name          string       `yaml:"name" json:"name"`
	ServerIDs     []int        `yaml:"servers,omitempty" json:"servers,omitempty"`
	ServerID      int          `yaml:"server,omitempty" json:"server,omitempty"` // legacy single-server form
	CredentialIDs []int        `yaml:"credentials,omitempty" json:"credentials,omitempty"`
	DomainIDs     []int        `yaml:"domains,omitempty" json:"domains,omitempty"`
	Dependencies  []Dependency `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// ServerRefs returns the ids of all servers this service runs on, merging
// the legacy back-reference with the multi-server association.
func (s *Service) ServerRefs() []int {
	refs := make([]int, 0, len(s.ServerIDs)+1)
	refs = append(refs, s.ServerIDs...)
	if s.ServerID != 0 {
		found := false
		for _, id := range refs {
			if id == s.ServerID {
				found = true
				break
			}
		}
		if !found {
			refs = append(refs, s.ServerID)
		}
	}
	return refs
}

// RunsOn reports whether this service runs on the given server.
func (s *Service) RunsOn(serverID int) bool {
	for _, id := range s.ServerRefs() {
		if id == serverID {
			return true
		}
	}
	return false
}

// Dependency links a service to something it depends on: either another
// service in the inventory (internal) or a named external service. Exactly
// one of the two forms is populated; a record with neither is invalid and
// is dropped during aggregation.
type Dependency struct {
	ID                  int    `yaml:"id" json:"id"`
	DependencyServiceID int    `yaml:"dependencyService,omitempty" json:"dependencyService,omitempty"`
	ExternalServiceName string `yaml:"externalServiceName,omitempty" json:"externalServiceName,omitempty"`
	ExternalType        string `yaml:"externalType,omitempty" json:"externalType,omitempty"`
	ExternalURL         string `yaml:"externalUrl,omitempty" json:"externalUrl,omitempty"`
}

// Internal reports whether the dependency targets a service in the inventory.
func (d Dependency) Internal() bool {
	return d.DependencyServiceID != 0
}

// Valid reports whether the record has a usable target. Invalid records
// produce no node or edge.
func (d Dependency) Valid() bool {
	return d.Internal() || strings.TrimSpace(d.ExternalServiceName) != ""
}
