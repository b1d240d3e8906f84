package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencyValid(t *testing.T) {
	tests := []struct {
		name     string
		dep      Dependency
		expected bool
	}{
		{"internal", Dependency{ID: 1, DependencyServiceID: 7}, true},
		{"external", Dependency{ID: 2, ExternalServiceName: "Stripe"}, true},
		{"both empty", Dependency{ID: 3}, false},
		{"external name blank", Dependency{ID: 4, ExternalServiceName: "   "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dep.Valid())
		})
	}
}

func TestServerRefsMergesLegacyBackReference(t *testing.T) {
	svc := Service{ID: 1, ServerIDs: []int{1, 2}, ServerID: 2}
	assert.Equal(t, []int{1, 2}, svc.ServerRefs())

	svc = Service{ID: 2, ServerID: 3}
	assert.Equal(t, []int{3}, svc.ServerRefs())

	svc = Service{ID: 3}
	assert.Empty(t, svc.ServerRefs())
}

func TestServicesForServer(t *testing.T) {
	snap := &Snapshot{
		Servers: []Server{{ID: 1}, {ID: 2}},
		Services: []Service{
			{ID: 10, Name: "webapp", ServerIDs: []int{1}},
			{ID: 11, Name: "worker", ServerID: 2},
			{ID: 12, Name: "shared", ServerIDs: []int{1, 2}},
		},
	}

	names := func(svcs []*Service) []string {
		out := make([]string, len(svcs))
		for i, s := range svcs {
			out[i] = s.Name
		}
		return out
	}

	assert.Equal(t, []string{"webapp", "shared"}, names(snap.ServicesForServer(1)))
	assert.Equal(t, []string{"worker", "shared"}, names(snap.ServicesForServer(2)))
	assert.Empty(t, snap.ServicesForServer(3))
}

func TestNextIDs(t *testing.T) {
	snap := &Snapshot{
		Servers:  []Server{{ID: 4}},
		Services: []Service{{ID: 10}, {ID: 7}},
	}
	assert.Equal(t, 5, snap.NextServerID())
	assert.Equal(t, 11, snap.NextServiceID())

	empty := NewSnapshot()
	assert.Equal(t, 1, empty.NextServerID())
	assert.Equal(t, 1, empty.NextServiceID())
}
