package analytics

import "time"

// LinkType identifies which link variant an event belongs to.
type LinkType string

const (
	TypeAlias     LinkType = "alias"
	TypeExpiring  LinkType = "expiring"
	TypeProtected LinkType = "protected"
	TypeRotator   LinkType = "rotator"
	TypeCard      LinkType = "card"
)

// Event is one visit to a link. IP is used only for optional country
// enrichment and is never persisted.
type Event struct {
	LinkType   LinkType
	LinkID     uint
	Referrer   string
	UserAgent  string
	IP         string
	OccurredAt time.Time
}

// Emitter records visit events. Emission is best-effort by contract:
// implementations swallow and log failures, and must never block or
// fail the redirect decision they are attached to.
type Emitter interface {
	Emit(event Event)
}
