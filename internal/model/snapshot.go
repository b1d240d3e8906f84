package model

// Snapshot is the full relational read of the inventory at one point in
// time. It is the read-only input to graph construction; collectors fill
// it, the graph builder consumes it.
type Snapshot struct {
	Servers     []Server     `yaml:"servers" json:"servers"`
	Services    []Service    `yaml:"services" json:"services"`
	Credentials []Credential `yaml:"credentials" json:"credentials"`
	Domains     []Domain     `yaml:"domains" json:"domains"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// ServiceByID returns the service with the given id, or nil.
func (s *Snapshot) ServiceByID(id int) *Service {
	for i := range s.Services {
		if s.Services[i].ID == id {
			return &s.Services[i]
		}
	}
	return nil
}

// CredentialByID returns the credential with the given id, or nil.
func (s *Snapshot) CredentialByID(id int) *Credential {
	for i := range s.Credentials {
		if s.Credentials[i].ID == id {
			return &s.Credentials[i]
		}
	}
	return nil
}

// DomainByID returns the domain with the given id, or nil.
func (s *Snapshot) DomainByID(id int) *Domain {
	for i := range s.Domains {
		if s.Domains[i].ID == id {
			return &s.Domains[i]
		}
	}
	return nil
}

// ServicesForServer returns the services attached to a server, in snapshot
// order. Both the multi-server association and the legacy single-server
// back-reference are honored.
func (s *Snapshot) ServicesForServer(serverID int) []*Service {
	var out []*Service
	for i := range s.Services {
		if s.Services[i].RunsOn(serverID) {
			out = append(out, &s.Services[i])
		}
	}
	return out
}

// NextServiceID returns an id one past the highest service id in the
// snapshot. Collectors use it when synthesizing services from sources that
// have no integer identity of their own.
func (s *Snapshot) NextServiceID() int {
	max := 0
	for i := range s.Services {
		if s.Services[i].ID > max {
			max = s.Services[i].ID
		}
	}
	return max + 1
}

// NextServerID returns an id one past the highest server id in the snapshot.
func (s *Snapshot) NextServerID() int {
	max := 0
	for i := range s.Servers {
		if s.Servers[i].ID > max {
			max = s.Servers[i].ID
		}
	}
	return max + 1
}
