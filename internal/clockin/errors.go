package clockin

import (
	"errors"
	"fmt"
	"time"
)

// Verification outcomes. Callers match them with errors.Is.
var (
	ErrMalformedToken   = errors.New("malformed clock-in token")
	ErrIdentityMismatch = errors.New("clock-in token belongs to another employee")
	ErrTokenExpired     = errors.New("clock-in token expired")
	ErrAlreadyClockedIn = errors.New("already clocked in today")
	ErrPersistence      = errors.New("failed to record attendance")

	ErrInvalidEmployeeID = errors.New("invalid employee id")
)

// Scan session errors.
var (
	ErrScanInProgress     = errors.New("a scan is already being processed")
	ErrScannerCoolingDown = errors.New("scanner is cooling down")
	ErrSessionCompleted   = errors.New("clock-in already accepted in this session")
	ErrScannerClosed      = errors.New("scan session closed")
	ErrSessionNotFound    = errors.New("scan session not found")
	ErrSessionForbidden   = errors.New("scan session belongs to another employee")
)

// CoolingDownError is returned while a rejected scanner waits to re-arm.
type CoolingDownError struct {
	Remaining time.Duration
}

func (e *CoolingDownError) Error() string {
	return fmt.Sprintf("%s: retry in %s", ErrScannerCoolingDown, e.Remaining.Round(time.Millisecond))
}

func (e *CoolingDownError) Unwrap() error {
	return ErrScannerCoolingDown
}

// Kind is the transport-stable name of an outcome.
type Kind string

const (
	KindNone             Kind = ""
	KindMalformedToken   Kind = "MalformedToken"
	KindIdentityMismatch Kind = "IdentityMismatch"
	KindTokenExpired     Kind = "TokenExpired"
	KindAlreadyClockedIn Kind = "AlreadyClockedIn"
	KindPersistenceError Kind = "PersistenceError"
	KindScanInProgress   Kind = "ScanInProgress"
	KindCoolingDown      Kind = "CoolingDown"
	KindSessionCompleted Kind = "SessionCompleted"
	KindSessionClosed    Kind = "SessionClosed"
	KindUnknown          Kind = "Unknown"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrMalformedToken, KindMalformedToken},
	{ErrIdentityMismatch, KindIdentityMismatch},
	{ErrTokenExpired, KindTokenExpired},
	{ErrAlreadyClockedIn, KindAlreadyClockedIn},
	{ErrPersistence, KindPersistenceError},
	{ErrScanInProgress, KindScanInProgress},
	{ErrScannerCoolingDown, KindCoolingDown},
	{ErrSessionCompleted, KindSessionCompleted},
	{ErrScannerClosed, KindSessionClosed},
}

// KindOf maps err to its Kind; nil maps to KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}
