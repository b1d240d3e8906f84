// Package server bridges the graph engine to a rendering host over HTTP:
// it serves the built graph, accepts pointer events, and pushes render
// instructions back, either per request or over a WebSocket.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/acourtel/stackgraph/internal/graph"
	"github.com/acourtel/stackgraph/internal/highlight"
	"github.com/acourtel/stackgraph/internal/model"
	"github.com/acourtel/stackgraph/internal/render"
)

// graphCacheSize bounds how many built graphs are kept; rebuilds for a
// snapshot already seen come straight from the cache.
const graphCacheSize = 16

// Server owns the current graph and the highlight engine for the REST
// event path. WebSocket connections get an engine of their own, so one
// host's clicks never disturb another's.
type Server struct {
	layout string
	graphs *lru.Cache[string, *graph.Graph]

	mu      sync.Mutex
	current *graph.Graph
	engine  *highlight.Engine
}

// New creates a server for the given layout strategy.
func New(layout string) (*Server, error) {
	cache, err := lru.New[string, *graph.Graph](graphCacheSize)
	if err != nil {
		return nil, err
	}
	return &Server{layout: layout, graphs: cache}, nil
}

// SetSnapshot swaps in the graph for a snapshot, building it unless the
// identical snapshot was seen before, and resets highlight state. The
// graph is immutable until the next SetSnapshot.
func (s *Server) SetSnapshot(snap *model.Snapshot) error {
	digest, err := snapshotDigest(snap)
	if err != nil {
		return fmt.Errorf("snapshot digest: %w", err)
	}

	g, ok := s.graphs.Get(digest)
	if !ok {
		g = graph.BuilderFor(s.layout).Build(snap)
		s.graphs.Add(digest, g)
	}

	s.mu.Lock()
	s.current = g
	s.engine = highlight.New(g)
	s.mu.Unlock()
	return nil
}

func snapshotDigest(snap *model.Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Graph returns the current graph, or nil before the first SetSnapshot.
func (s *Server) Graph() *graph.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Router builds the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Get("/api/graph", s.handleGraph)
	r.Get("/api/graph/d2", s.handleGraphD2)
	r.Post("/api/events", s.handleEvent)
	r.Get("/ws", s.handleWS)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"ok":true,"service":"stackgraph"}`))
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	g := s.Graph()
	if g == nil {
		http.Error(w, "no snapshot loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g)
}

func (s *Server) handleGraphD2(w http.ResponseWriter, _ *http.Request) {
	g := s.Graph()
	if g == nil {
		http.Error(w, "no snapshot loaded", http.StatusServiceUnavailable)
		return
	}
	out, err := (&render.D2Renderer{}).Render(g)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out))
}

// handleEvent applies one pointer event to the shared engine and responds
// with the derived render instructions. Events are serialized so each one
// fully replaces the prior state before the next is processed.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		http.Error(w, "no snapshot loaded", http.StatusServiceUnavailable)
		return
	}
	if err := Apply(s.engine, ev); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.engine.Instructions())
}
