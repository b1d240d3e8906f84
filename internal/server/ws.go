package server

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/acourtel/stackgraph/internal/highlight"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// wsError is sent to the host when an event cannot be applied; the
// connection stays open.
type wsError struct {
	Error string `json:"error"`
}

// handleWS upgrades the connection and runs the event loop: the host
// sends pointer events, the server answers each with the full render
// instruction set. Every connection owns a private highlight engine over
// the graph current at connect time.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	g := s.Graph()
	if g == nil {
		http.Error(w, "no snapshot loaded", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	engine := highlight.New(g)

	// Initial instruction set so the host starts from a known state.
	if err := conn.WriteJSON(engine.Instructions()); err != nil {
		return
	}

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws %s: %v", session, err)
			}
			return
		}
		if err := Apply(engine, ev); err != nil {
			if err := conn.WriteJSON(wsError{Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(engine.Instructions()); err != nil {
			return
		}
	}
}
