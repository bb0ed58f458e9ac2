package draft

import (
	"context"
	"log"
	"time"

	"github.com/felipeleveke/gym-sub000/internal/domain"
)

// Autosaver mirrors every session mutation into the draft store. A failing
// write only degrades the session to in-memory operation: the error is
// logged, the engine keeps running, and the UI drops its "saved" indicator
// until a later write succeeds.
type Autosaver struct {
	store  Store
	now    func() time.Time
	logger *log.Logger

	lastSavedAt time.Time
	lastErr     error
}

// NewAutosaver wires a store and logger; now defaults to time.Now.
func NewAutosaver(store Store, logger *log.Logger, now func() time.Time) *Autosaver {
	if now == nil {
		now = time.Now
	}
	return &Autosaver{store: store, now: now, logger: logger}
}

// Autosave snapshots the session and overwrites the stored draft.
// Satisfies the engine's Saver interface; never returns an error.
func (a *Autosaver) Autosave(s *domain.Session) {
	snap := Take(s, a.now())
	if err := a.store.Save(context.Background(), snap); err != nil {
		a.lastErr = err
		if a.logger != nil {
			a.logger.Printf("draft autosave failed: %v", err)
		}
		return
	}
	a.lastErr = nil
	a.lastSavedAt = snap.LastSavedAt
}

// LastSavedAt is the timestamp of the most recent successful write.
func (a *Autosaver) LastSavedAt() time.Time { return a.lastSavedAt }

// Degraded reports whether the most recent write failed.
func (a *Autosaver) Degraded() bool { return a.lastErr != nil }
