package graph

import "fmt"

// Kind colors. Edge construction uses the relation colors below; the
// highlight engine recolors active edges to their source node's kind color
// through ColorForKind.
const (
	ColorServer          = "#6B7280"
	ColorService         = "#3B82F6"
	ColorCredential      = "#F59E0B"
	ColorDomain          = "#8B5CF6"
	ColorInternalDep     = "#22C55E"
	ColorExternalService = "#EC4899"
	ColorGroup           = "#9CA3AF"
)

// ColorForKind returns the color associated with a node kind.
func ColorForKind(kind NodeKind) string {
	switch kind {
	case KindServer:
		return ColorServer
	case KindService:
		return ColorService
	case KindCredential:
		return ColorCredential
	case KindDomain:
		return ColorDomain
	case KindExternalService:
		return ColorExternalService
	case KindGroup:
		return ColorGroup
	}
	return ColorGroup
}

// ResourceURL returns the dashboard path for an entity, or "" for kinds
// that have no page of their own (external services, groups).
func ResourceURL(kind NodeKind, entityID int) string {
	switch kind {
	case KindServer:
		return fmt.Sprintf("/servers?serverId=%d", entityID)
	case KindService:
		return fmt.Sprintf("/services?serviceId=%d", entityID)
	case KindCredential:
		return fmt.Sprintf("/credentials?credentialId=%d", entityID)
	case KindDomain:
		return "/domains"
	}
	return ""
}
