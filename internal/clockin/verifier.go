package clockin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
)

// Store is the part of the attendance store the verifier needs.
// repositories.AttendanceRepository satisfies it.
type Store interface {
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
}

// Verifier decides whether a scanned token may clock the caller in and
// records the attendance when it may.
type Verifier struct {
	store Store
	loc   *time.Location
}

// NewVerifier returns a Verifier writing to store. Calendar dates are taken in loc (UTC when nil).
func NewVerifier(store Store, loc *time.Location) *Verifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Verifier{store: store, loc: loc}
}

// Today returns the attendance date of now in the organisation timezone.
func (v *Verifier) Today(now time.Time) string {
	return now.In(v.loc).Format(models.DateLayout)
}

// Verify checks scanned against the caller's identity and the current slot,
// then creates today's Present record. It returns one of ErrMalformedToken,
// ErrIdentityMismatch, ErrTokenExpired, ErrAlreadyClockedIn or ErrPersistence
// (wrapping the store error).
func (v *Verifier) Verify(ctx context.Context, scanned, currentEmployeeID string, now time.Time) (*models.AttendanceRecord, error) {
	return v.verify(ctx, scanned, currentEmployeeID, now, nil)
}

func (v *Verifier) verify(ctx context.Context, scanned, currentEmployeeID string, now time.Time, observe func(State)) (*models.AttendanceRecord, error) {
	step := func(s State) {
		if observe != nil {
			observe(s)
		}
	}

	step(StateDecoding)
	token, err := ParseToken(scanned)
	if err != nil {
		return nil, err
	}

	step(StateValidating)
	if token.EmployeeID != currentEmployeeID {
		return nil, ErrIdentityMismatch
	}
	if token.TimeSlot != TimeSlot(now) {
		return nil, fmt.Errorf("%w: token slot %d, current slot %d", ErrTokenExpired, token.TimeSlot, TimeSlot(now))
	}

	today := v.Today(now)
	existing, err := v.store.FindByEmployeeAndDate(ctx, currentEmployeeID, today)
	switch {
	case err == nil && existing != nil:
		return nil, ErrAlreadyClockedIn
	case err != nil && !errors.Is(err, repositories.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	step(StateRecording)
	checkIn := now
	record := &models.AttendanceRecord{
		EmployeeID:  currentEmployeeID,
		Date:        today,
		CheckInTime: &checkIn,
		Status:      models.AttendanceStatusPresent,
	}
	if err := v.store.Create(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrAttendanceExists) {
			// lost the race against a concurrent clock-in for the same day
			return nil, ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	log.Info().
		Str("employee_id", currentEmployeeID).
		Str("date", today).
		Int64("slot", token.TimeSlot).
		Msg("clock-in recorded")
	return record, nil
}
