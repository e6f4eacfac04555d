package resolve

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/seolnk/seolnk/pkg/seolnk/analytics"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/cache"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
	"gorm.io/gorm"
)

// State is the terminal (or, for password links, intermediate) result
// of resolving a public key.
type State int

const (
	StateNotFound State = iota
	StateInactive
	StateExpired
	StatePasswordRequired
	StateRedirect
)

// Outcome is the resolver's decision for one visit. TargetURL is set
// only for StateRedirect; Title only for StatePasswordRequired.
type Outcome struct {
	State     State
	TargetURL string
	Title     string
}

// Visitor carries request metadata for analytics. It never influences
// the resolution decision.
type Visitor struct {
	Referrer  string
	UserAgent string
	IP        string
}

// Errors returned by VerifyProtected.
var (
	ErrLinkNotFound      = errors.New("link not found")
	ErrLinkInactive      = errors.New("link is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// Resolver evaluates the shared predicate chain for all five link
// types: lookup, active, expiry, password gate, then redirect with a
// best-effort analytics write. Per-type behavior (click counting,
// target selection) hangs off that one chain.
type Resolver struct {
	db      *gorm.DB
	emitter analytics.Emitter
	cache   *cache.Cache
	intn    func(n int) int
	now     func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache attaches a resolve-path cache for custom aliases.
func WithCache(c *cache.Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithClock overrides the expiry clock.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithRand overrides the rotator selection source.
func WithRand(intn func(n int) int) Option {
	return func(r *Resolver) { r.intn = intn }
}

// New creates a Resolver.
func New(db *gorm.DB, emitter analytics.Emitter, opts ...Option) *Resolver {
	r := &Resolver{
		db:      db,
		emitter: emitter,
		intn:    rand.Intn,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// gate runs the status checks shared by every link type. It returns
// the blocking outcome and true when the chain short-circuits.
func (r *Resolver) gate(isActive bool, expiresAt *time.Time) (Outcome, bool) {
	if !isActive {
		return Outcome{State: StateInactive}, true
	}
	if expiresAt != nil && r.now().After(*expiresAt) {
		return Outcome{State: StateExpired}, true
	}
	return Outcome{}, false
}

// fetchErr separates record absence from storage failure.
func fetchErr(err error) (Outcome, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Outcome{State: StateNotFound}, nil
	}
	return Outcome{}, err
}

func (r *Resolver) emit(linkType analytics.LinkType, linkID uint, v Visitor) {
	r.emitter.Emit(analytics.Event{
		LinkType:   linkType,
		LinkID:     linkID,
		Referrer:   v.Referrer,
		UserAgent:  v.UserAgent,
		IP:         v.IP,
		OccurredAt: r.now(),
	})
}

// bumpClickCount increments the denormalized alias counter.
// Best-effort: a failed increment never blocks the redirect, and the
// analytics write proceeds independently.
func (r *Resolver) bumpClickCount(aliasID uint) {
	err := r.db.Model(&models.CustomAlias{}).Where("id = ?", aliasID).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
	if err != nil {
		log.Warn().Err(err).Uint("alias_id", aliasID).Msg("click count update failed")
	}
}

// ResolveAlias resolves a custom alias. Alias lookup is
// normalized-lowercase; the other link types are case-sensitive.
func (r *Resolver) ResolveAlias(ctx context.Context, rawKey string, v Visitor) (Outcome, error) {
	key := strings.ToLower(strings.TrimSpace(rawKey))

	if r.cache != nil {
		if entry, err := r.cache.GetAlias(ctx, key); err == nil {
			r.bumpClickCount(entry.ID)
			r.emit(analytics.TypeAlias, entry.ID, v)
			return Outcome{State: StateRedirect, TargetURL: entry.URL}, nil
		}
	}

	var link models.CustomAlias
	if err := r.db.Where("alias = ?", key).First(&link).Error; err != nil {
		return fetchErr(err)
	}
	if out, done := r.gate(link.IsActive, link.ExpiresAt); done {
		return out, nil
	}

	r.bumpClickCount(link.ID)
	r.emit(analytics.TypeAlias, link.ID, v)

	// Only aliases without an expiry are cached; deadline checks must
	// always see fresh state.
	if r.cache != nil && link.ExpiresAt == nil {
		entry := cache.CachedAlias{ID: link.ID, URL: link.OriginalURL}
		if err := r.cache.SetAlias(ctx, key, entry); err != nil {
			log.Warn().Err(err).Str("alias", key).Msg("alias cache write failed")
		}
	}

	return Outcome{State: StateRedirect, TargetURL: link.OriginalURL}, nil
}

// ResolveExpiring resolves an expiring link.
func (r *Resolver) ResolveExpiring(slug string, v Visitor) (Outcome, error) {
	var link models.ExpiringLink
	if err := r.db.Where("slug = ?", slug).First(&link).Error; err != nil {
		return fetchErr(err)
	}
	if out, done := r.gate(link.IsActive, &link.ExpiresAt); done {
		return out, nil
	}

	r.emit(analytics.TypeExpiring, link.ID, v)
	return Outcome{State: StateRedirect, TargetURL: link.OriginalURL}, nil
}

// ResolveCard resolves a preview card link.
func (r *Resolver) ResolveCard(slug string, v Visitor) (Outcome, error) {
	var card models.PreviewCard
	if err := r.db.Where("slug = ?", slug).First(&card).Error; err != nil {
		return fetchErr(err)
	}
	if out, done := r.gate(card.IsActive, nil); done {
		return out, nil
	}

	r.emit(analytics.TypeCard, card.ID, v)
	return Outcome{State: StateRedirect, TargetURL: card.OriginalURL}, nil
}

// ResolveRotator resolves a rotator link, choosing uniformly at random
// among its active targets. The selection is not persisted.
func (r *Resolver) ResolveRotator(slug string, v Visitor) (Outcome, error) {
	var link models.RotatorLink
	if err := r.db.Preload("Targets").Where("slug = ?", slug).First(&link).Error; err != nil {
		return fetchErr(err)
	}
	if out, done := r.gate(link.IsActive, nil); done {
		return out, nil
	}

	candidates := make([]models.RotatorTarget, 0, len(link.Targets))
	for _, t := range link.Targets {
		if t.IsActive {
			candidates = append(candidates, t)
		}
	}
	// A rotator always has at least one target; if the owner disabled
	// them all, fall back to the full set rather than dead-ending.
	if len(candidates) == 0 {
		candidates = link.Targets
	}
	if len(candidates) == 0 {
		return Outcome{State: StateNotFound}, nil
	}
	target := candidates[r.intn(len(candidates))]

	r.emit(analytics.TypeRotator, link.ID, v)
	return Outcome{State: StateRedirect, TargetURL: target.URL}, nil
}

// ResolveProtected resolves a protected link up to the password gate.
// The outcome carries the display title, never the hash. No analytics
// event is written until the password is verified.
func (r *Resolver) ResolveProtected(slug string) (Outcome, error) {
	var link models.ProtectedLink
	if err := r.db.Where("slug = ?", slug).First(&link).Error; err != nil {
		return fetchErr(err)
	}
	if out, done := r.gate(link.IsActive, nil); done {
		return out, nil
	}

	return Outcome{State: StatePasswordRequired, Title: link.Title}, nil
}

// VerifyProtected checks a password against a protected link and, on
// success, records the visit and returns the destination URL. The
// error message never reveals more than "incorrect password".
func (r *Resolver) VerifyProtected(slug, password string, v Visitor) (string, error) {
	var link models.ProtectedLink
	if err := r.db.Where("slug = ?", slug).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrLinkNotFound
		}
		return "", err
	}
	if !link.IsActive {
		return "", ErrLinkInactive
	}
	if !auth.CheckPassword(password, link.PasswordHash) {
		return "", ErrIncorrectPassword
	}

	r.emit(analytics.TypeProtected, link.ID, v)
	return link.OriginalURL, nil
}
