package models

import "time"

// Visit holds the fields shared by every analytics event table.
// Events are append-only: the resolver inserts them and nothing in
// the application ever updates or deletes them.
type Visit struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	LinkID     uint      `gorm:"not null;index" json:"link_id"`
	Referrer   string    `json:"referrer,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Country    string    `json:"country,omitempty"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
}

// AliasClick records one resolved visit to a CustomAlias.
type AliasClick struct {
	Visit
}

// ExpiringClick records one resolved visit to an ExpiringLink.
type ExpiringClick struct {
	Visit
}

// ProtectedClick records one successful unlock of a ProtectedLink.
type ProtectedClick struct {
	Visit
}

// RotatorClick records one resolved visit to a RotatorLink.
type RotatorClick struct {
	Visit
}

// CardView records one view of a PreviewCard.
type CardView struct {
	Visit
}
