package reveal

import (
	"context"
	"time"
)

// OverrideStore reads the persisted admin reveal override.
type OverrideStore interface {
	GetOverride(ctx context.Context) (bool, error)
}

// Gate decides whether aggregate predictions and scores may be shown.
// The reveal happens either when the configured calendar date passes or
// when the admin flips the override, whichever comes first.
type Gate struct {
	revealDate time.Time
	store      OverrideStore
	now        func() time.Time
}

// NewGate creates a reveal gate.
func NewGate(revealDate time.Time, store OverrideStore) *Gate {
	return &Gate{revealDate: revealDate, store: store, now: time.Now}
}

// CanReveal reports whether the reveal condition holds.
func (g *Gate) CanReveal(ctx context.Context) (bool, error) {
	if !g.now().Before(g.revealDate) {
		return true, nil
	}
	return g.store.GetOverride(ctx)
}

// RevealDate returns the configured calendar reveal date.
func (g *Gate) RevealDate() time.Time {
	return g.revealDate
}
