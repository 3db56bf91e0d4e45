package clockin

import (
	"context"
	"sync"
	"time"

	"github.com/hr_management/internal/models"
)

// DefaultCooldown is how long a rejected scanner waits before accepting another scan.
const DefaultCooldown = 3 * time.Second

// State of a Scanner.
type State int

const (
	StateIdle State = iota
	StateDecoding
	StateValidating
	StateRecording
	StateRejected
	StateAccepted
	StateClosed
)

var stateNames = [...]string{"Idle", "Decoding", "Validating", "Recording", "Rejected", "Accepted", "Closed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

func (s State) busy() bool {
	return s == StateDecoding || s == StateValidating || s == StateRecording
}

// Snapshot is a point-in-time view of a Scanner.
type Snapshot struct {
	State   State                    `json:"-"`
	Name    string                   `json:"state"`
	RearmAt *time.Time               `json:"rearmAt,omitempty"`
	LastErr error                    `json:"-"`
	Record  *models.AttendanceRecord `json:"record,omitempty"`
}

// Scanner runs scan attempts for one employee's scanning view, one at a time:
// Idle -> Decoding -> Validating -> {Recording, Rejected} -> Idle.
// A rejection re-arms after the cooldown; an accepted clock-in ends the session.
type Scanner struct {
	verifier   *Verifier
	employeeID string
	cooldown   time.Duration
	now        func() time.Time

	mu      sync.Mutex
	state   State
	rearmAt time.Time
	lastErr error
	record  *models.AttendanceRecord
}

// NewScanner creates an armed scanner for employeeID.
func NewScanner(verifier *Verifier, employeeID string, cooldown time.Duration, now func() time.Time) *Scanner {
	if now == nil {
		now = time.Now
	}
	if cooldown < 0 {
		cooldown = DefaultCooldown
	}
	return &Scanner{
		verifier:   verifier,
		employeeID: employeeID,
		cooldown:   cooldown,
		now:        now,
		state:      StateIdle,
	}
}

// Scan processes one decoded scan string.
//
// The store operations run detached from ctx's cancellation: abandoning the
// view does not abort a commit that is already under way.
func (s *Scanner) Scan(ctx context.Context, scanned string) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	now := s.now()
	if err := s.armLocked(now); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = StateDecoding
	s.mu.Unlock()

	record, err := s.verifier.verify(context.WithoutCancel(ctx), scanned, s.employeeID, now, s.transition)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return record, err
	}
	if err != nil {
		s.state = StateRejected
		s.lastErr = err
		s.rearmAt = s.now().Add(s.cooldown)
		return nil, err
	}
	s.state = StateAccepted
	s.lastErr = nil
	s.record = record
	return record, nil
}

func (s *Scanner) transition(next State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateClosed {
		s.state = next
	}
}

// armLocked checks the scanner can take a new attempt, re-arming after an elapsed cooldown.
func (s *Scanner) armLocked(now time.Time) error {
	switch {
	case s.state == StateClosed:
		return ErrScannerClosed
	case s.state == StateAccepted:
		return ErrSessionCompleted
	case s.state.busy():
		return ErrScanInProgress
	case s.state == StateRejected:
		if now.Before(s.rearmAt) {
			return &CoolingDownError{Remaining: s.rearmAt.Sub(now)}
		}
		s.state = StateIdle
	}
	return nil
}

// Snapshot reports the current state; a rejected scanner whose cooldown has
// elapsed reports Idle.
func (s *Scanner) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	snap := Snapshot{LastErr: s.lastErr, Record: s.record}
	if state == StateRejected {
		if s.now().Before(s.rearmAt) {
			rearm := s.rearmAt
			snap.RearmAt = &rearm
		} else {
			state = StateIdle
		}
	}
	snap.State = state
	snap.Name = state.String()
	return snap
}

// Close abandons the session. A commit already issued is not rolled back.
func (s *Scanner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
}
