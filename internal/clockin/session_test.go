package clockin_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr_management/internal/clockin"
	"github.com/hr_management/internal/repositories/repofake"
)

func newRegistry(clock *fakeClock) *clockin.SessionRegistry {
	v := clockin.NewVerifier(repofake.NewFakeAttendanceRepo(), time.UTC)
	return clockin.NewSessionRegistry(v, 3*time.Second, 10*time.Minute, clock.Now)
}

func TestSessionRegistry_OwnershipAndClose(t *testing.T) {
	clock := newFakeClock(baseTime)
	r := newRegistry(clock)

	s := r.Open("emp042")
	require.NotEmpty(t, s.ID)

	got, err := r.Get(s.ID, "emp042")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = r.Get(s.ID, "emp001")
	assert.ErrorIs(t, err, clockin.ErrSessionForbidden)
	assert.ErrorIs(t, r.Close(s.ID, "emp001"), clockin.ErrSessionForbidden)

	require.NoError(t, r.Close(s.ID, "emp042"))
	_, err = r.Get(s.ID, "emp042")
	assert.ErrorIs(t, err, clockin.ErrSessionNotFound)
	assert.Equal(t, clockin.StateClosed, s.Scanner.Snapshot().State)
}

func TestSessionRegistry_IdleSessionsExpire(t *testing.T) {
	clock := newFakeClock(baseTime)
	r := newRegistry(clock)

	old := r.Open("emp042")
	clock.Advance(11 * time.Minute)

	_, err := r.Get(old.ID, "emp042")
	assert.ErrorIs(t, err, clockin.ErrSessionNotFound)

	stale := r.Open("emp001")
	clock.Advance(11 * time.Minute)
	r.Open("emp002")
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, clockin.StateClosed, stale.Scanner.Snapshot().State)
}
