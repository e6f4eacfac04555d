package analytics

import (
	"github.com/rs/zerolog/log"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
	"gorm.io/gorm"
)

// Store writes events into the per-type tables in the primary
// database. It is the default sink.
type Store struct {
	db  *gorm.DB
	geo *Geo
}

// NewStore creates a store sink. geo may be nil.
func NewStore(db *gorm.DB, geo *Geo) *Store {
	return &Store{db: db, geo: geo}
}

// Emit inserts one event row. Failures are logged and discarded;
// the visit that triggered the event has already been served.
func (s *Store) Emit(event Event) {
	visit := models.Visit{
		LinkID:     event.LinkID,
		Referrer:   event.Referrer,
		UserAgent:  event.UserAgent,
		Country:    s.geo.Country(event.IP),
		OccurredAt: event.OccurredAt,
	}

	var row interface{}
	switch event.LinkType {
	case TypeAlias:
		row = &models.AliasClick{Visit: visit}
	case TypeExpiring:
		row = &models.ExpiringClick{Visit: visit}
	case TypeProtected:
		row = &models.ProtectedClick{Visit: visit}
	case TypeRotator:
		row = &models.RotatorClick{Visit: visit}
	case TypeCard:
		row = &models.CardView{Visit: visit}
	default:
		log.Warn().Str("link_type", string(event.LinkType)).Msg("unknown analytics link type")
		return
	}

	if err := s.db.Create(row).Error; err != nil {
		log.Warn().Err(err).
			Str("link_type", string(event.LinkType)).
			Uint("link_id", event.LinkID).
			Msg("analytics write failed")
	}
}
