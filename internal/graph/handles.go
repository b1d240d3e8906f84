package graph

// handleSlots is the fixed set of anchor slots edges rotate through when
// several of them run between the same two nodes. A fourth parallel edge
// wraps back to the first slot; that reuse is accepted, not worked around.
var handleSlots = [...]string{"top", "center", "bottom"}

type pairKey struct {
	source string
	target string
}

// slotTracker hands out handle slots round-robin, counted per
// (source, target) pair rather than per node, so parallel edges between
// the same two nodes spread across the slots in insertion order.
type slotTracker map[pairKey]int

func (t slotTracker) next(source, target string) string {
	k := pairKey{source: source, target: target}
	slot := handleSlots[t[k]%len(handleSlots)]
	t[k]++
	return slot
}
