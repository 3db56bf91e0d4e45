package clockin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr_management/internal/clockin"
	"github.com/hr_management/internal/repositories/repofake"
)

func newScanner(clock *fakeClock) (*clockin.Scanner, *repofake.FakeAttendanceRepo) {
	store := repofake.NewFakeAttendanceRepo()
	v := clockin.NewVerifier(store, time.UTC)
	return clockin.NewScanner(v, "emp042", 3*time.Second, clock.Now), store
}

func TestScanner_RejectionCoolsDownThenRearms(t *testing.T) {
	clock := newFakeClock(baseTime)
	s, _ := newScanner(clock)
	ctx := context.Background()

	_, err := s.Scan(ctx, "garbage")
	require.ErrorIs(t, err, clockin.ErrMalformedToken)
	snap := s.Snapshot()
	assert.Equal(t, clockin.StateRejected, snap.State)
	require.NotNil(t, snap.RearmAt)
	assert.ErrorIs(t, snap.LastErr, clockin.ErrMalformedToken)

	clock.Advance(time.Second)
	_, err = s.Scan(ctx, mustToken("emp042", clock.Now()))
	require.ErrorIs(t, err, clockin.ErrScannerCoolingDown)
	var cooling *clockin.CoolingDownError
	require.True(t, errors.As(err, &cooling))
	assert.Equal(t, 2*time.Second, cooling.Remaining)
	assert.Equal(t, clockin.KindCoolingDown, clockin.KindOf(err))

	clock.Advance(2 * time.Second)
	assert.Equal(t, clockin.StateIdle, s.Snapshot().State)

	record, err := s.Scan(ctx, mustToken("emp042", clock.Now()))
	require.NoError(t, err)
	assert.Equal(t, "emp042", record.EmployeeID)
	assert.Equal(t, clockin.StateAccepted, s.Snapshot().State)
}

func TestScanner_AcceptedSessionDoesNotRearm(t *testing.T) {
	clock := newFakeClock(baseTime)
	s, store := newScanner(clock)
	ctx := context.Background()

	_, err := s.Scan(ctx, mustToken("emp042", clock.Now()))
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = s.Scan(ctx, mustToken("emp042", clock.Now()))
	assert.ErrorIs(t, err, clockin.ErrSessionCompleted)
	assert.Equal(t, 1, store.CreateCalls)
}

func TestScanner_EveryFailureKindCoolsDown(t *testing.T) {
	for name, scanned := range map[string]func(now time.Time) string{
		"malformed": func(time.Time) string { return "wrong-scheme|employeeId=emp042|timestamp=123" },
		"identity":  func(now time.Time) string { return mustToken("emp999", now) },
		"expired":   func(now time.Time) string { return mustToken("emp042", now.Add(-2*time.Hour)) },
	} {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock(baseTime)
			s, _ := newScanner(clock)

			_, err := s.Scan(context.Background(), scanned(clock.Now()))
			require.Error(t, err)

			_, err = s.Scan(context.Background(), mustToken("emp042", clock.Now()))
			assert.ErrorIs(t, err, clockin.ErrScannerCoolingDown)
		})
	}
}

func TestScanner_OneAttemptAtATime(t *testing.T) {
	clock := newFakeClock(baseTime)
	s, store := newScanner(clock)

	entered := make(chan struct{})
	release := make(chan struct{})
	store.BeforeCreate = func() {
		close(entered)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Scan(context.Background(), mustToken("emp042", clock.Now()))
		done <- err
	}()

	<-entered
	assert.Equal(t, clockin.StateRecording, s.Snapshot().State)
	_, err := s.Scan(context.Background(), mustToken("emp042", clock.Now()))
	assert.ErrorIs(t, err, clockin.ErrScanInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, clockin.StateAccepted, s.Snapshot().State)
}

func TestScanner_CancelledRequestStillCommits(t *testing.T) {
	clock := newFakeClock(baseTime)
	s, store := newScanner(clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Scan(ctx, mustToken("emp042", clock.Now()))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count())
}

func TestScanner_Closed(t *testing.T) {
	clock := newFakeClock(baseTime)
	s, _ := newScanner(clock)
	s.Close()

	_, err := s.Scan(context.Background(), mustToken("emp042", clock.Now()))
	assert.ErrorIs(t, err, clockin.ErrScannerClosed)
	assert.Equal(t, "Closed", s.Snapshot().Name)
}
