package server

import (
	"fmt"

	"github.com/acourtel/stackgraph/internal/highlight"
)

// Pointer event types the rendering host dispatches.
const (
	EventNodeClick      = "nodeClick"
	EventNodeHoverEnter = "nodeHoverEnter"
	EventNodeHoverLeave = "nodeHoverLeave"
	EventPaneClick      = "paneClick"
)

// Event is one pointer event from the rendering host.
type Event struct {
	Type   string `json:"type"`
	NodeID string `json:"nodeId,omitempty"`
}

// Apply routes an event to the engine. Stale node ids are handled inside
// the engine (no-op); only an unknown event type is an error.
func Apply(engine *highlight.Engine, ev Event) error {
	switch ev.Type {
	case EventNodeClick:
		engine.NodeClick(ev.NodeID)
	case EventNodeHoverEnter:
		engine.NodeHoverEnter(ev.NodeID)
	case EventNodeHoverLeave:
		engine.NodeHoverLeave()
	case EventPaneClick:
		engine.PaneClick()
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}
