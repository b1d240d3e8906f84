package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acourtel/stackgraph/internal/graph"
	"github.com/acourtel/stackgraph/internal/highlight"
	"github.com/acourtel/stackgraph/internal/model"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	snap := &model.Snapshot{
		Servers: []model.Server{{ID: 1, Name: "atlas"}},
		Services: []model.Service{
			{ID: 10, Name: "webapp", ServerIDs: []int{1}},
		},
	}

	srv, err := New("grouped")
	require.NoError(t, err)
	require.NoError(t, srv.SetSnapshot(snap))
	return srv
}

func TestGraphEndpoint(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var g graph.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.NotEmpty(t, g.Nodes)
	assert.True(t, g.HasNode("server-1"))
}

func TestGraphEndpointWithoutSnapshot(t *testing.T) {
	srv, err := New("grouped")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGraphD2Endpoint(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/graph/d2", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "direction: right")
}

func postEvent(t *testing.T, srv *Server, ev Event) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestEventEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := postEvent(t, srv, Event{Type: EventNodeClick, NodeID: "server-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var ins highlight.Instructions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ins))
	assert.Equal(t, highlight.ModeClick, ins.Mode)
	assert.True(t, ins.Nodes["server-1"].Active)
	assert.True(t, ins.Nodes["group-1-services"].Active)

	// A pane click resets everything.
	rec = postEvent(t, srv, Event{Type: EventPaneClick})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ins))
	assert.Equal(t, highlight.ModeNone, ins.Mode)
	assert.False(t, ins.Nodes["server-1"].Active)
}

func TestEventEndpointStaleNode(t *testing.T) {
	srv := testServer(t)

	rec := postEvent(t, srv, Event{Type: EventNodeClick, NodeID: "server-99"})
	require.Equal(t, http.StatusOK, rec.Code)

	var ins highlight.Instructions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ins))
	assert.Equal(t, highlight.ModeNone, ins.Mode, "stale node id leaves state untouched")
}

func TestEventEndpointUnknownType(t *testing.T) {
	srv := testServer(t)
	rec := postEvent(t, srv, Event{Type: "doubleClick", NodeID: "server-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetSnapshotReusesCachedGraph(t *testing.T) {
	snap := &model.Snapshot{
		Servers:  []model.Server{{ID: 1, Name: "atlas"}},
		Services: []model.Service{{ID: 10, Name: "webapp", ServerIDs: []int{1}}},
	}

	srv, err := New("grouped")
	require.NoError(t, err)

	require.NoError(t, srv.SetSnapshot(snap))
	first := srv.Graph()
	require.NoError(t, srv.SetSnapshot(snap))
	assert.Same(t, first, srv.Graph(), "identical snapshot hits the cache")
}

func TestApplyEvents(t *testing.T) {
	g := graph.Build(&model.Snapshot{
		Servers:  []model.Server{{ID: 1, Name: "atlas"}},
		Services: []model.Service{{ID: 10, Name: "webapp", ServerIDs: []int{1}}},
	})
	engine := highlight.New(g)

	require.NoError(t, Apply(engine, Event{Type: EventNodeHoverEnter, NodeID: "server-1"}))
	assert.Equal(t, highlight.ModeHover, engine.Mode())

	require.NoError(t, Apply(engine, Event{Type: EventNodeHoverLeave}))
	assert.Equal(t, highlight.ModeNone, engine.Mode())

	assert.Error(t, Apply(engine, Event{Type: "nope"}))
}
