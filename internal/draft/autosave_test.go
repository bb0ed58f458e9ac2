package draft

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipeleveke/gym-sub000/internal/testutil"
)

type flakyStore struct {
	fail  bool
	saved *Snapshot
}

func (f *flakyStore) Save(_ context.Context, snap *Snapshot) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.saved = snap
	return nil
}

func (f *flakyStore) Load(context.Context) (*Snapshot, error) { return nil, ErrNoDraft }
func (f *flakyStore) Clear(context.Context) error             { return nil }
func (f *flakyStore) Exists(context.Context) (bool, error)    { return f.saved != nil, nil }

func TestAutosaver_RecordsLastSavedAt(t *testing.T) {
	store := &flakyStore{}
	now := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)
	a := NewAutosaver(store, nil, func() time.Time { return now })

	a.Autosave(testutil.SessionFixture(1))

	require.NotNil(t, store.saved)
	assert.Equal(t, now, a.LastSavedAt())
	assert.False(t, a.Degraded())
}

func TestAutosaver_DegradesOnFailure(t *testing.T) {
	store := &flakyStore{fail: true}
	var buf bytes.Buffer
	a := NewAutosaver(store, log.New(&buf, "", 0), nil)

	// A failed write must not surface: the session keeps running in memory.
	a.Autosave(testutil.SessionFixture(1))

	assert.True(t, a.Degraded())
	assert.Zero(t, a.LastSavedAt())
	assert.Contains(t, buf.String(), "draft autosave failed")

	// A later successful write recovers.
	store.fail = false
	a.Autosave(testutil.SessionFixture(1))
	assert.False(t, a.Degraded())
	assert.False(t, a.LastSavedAt().IsZero())
}
