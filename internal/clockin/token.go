// Package clockin implements the rotating QR-code token used to authorise
// employee clock-in: token generation, verification against the attendance
// store, and the per-session scan state machine.
package clockin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hr_management/pkg/utils"
)

const (
	// SchemeTag identifies the token format. Versionless.
	SchemeTag = "atprofit-clock-in"
	// SlotDuration is the width of one time slot; generator and verifier must agree on it.
	SlotDuration = 90 * time.Minute

	slotMillis      = int64(SlotDuration / time.Millisecond) // 5,400,000
	separator       = "|"
	employeeIDField = "employeeId="
	timestampField  = "timestamp="
)

// Token is the decoded form of a clock-in token.
type Token struct {
	EmployeeID string
	TimeSlot   int64
}

// String renders the wire form: atprofit-clock-in|employeeId=<id>|timestamp=<slot>.
func (t Token) String() string {
	return SchemeTag + separator + employeeIDField + t.EmployeeID + separator + timestampField + strconv.FormatInt(t.TimeSlot, 10)
}

// TimeSlot returns floor(t in unix millis / 5,400,000).
func TimeSlot(t time.Time) int64 {
	ms := t.UnixMilli()
	slot := ms / slotMillis
	if ms%slotMillis != 0 && ms < 0 {
		slot--
	}
	return slot
}

// SlotBounds returns the first instant of slot and the first instant of the next one.
func SlotBounds(slot int64) (start, end time.Time) {
	start = time.UnixMilli(slot * slotMillis)
	return start, start.Add(SlotDuration)
}

// ValidateEmployeeID reports whether id can be embedded in a token and parsed back.
func ValidateEmployeeID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidEmployeeID)
	}
	if strings.Contains(id, separator) {
		return fmt.Errorf("%w: must not contain %q", ErrInvalidEmployeeID, separator)
	}
	return nil
}

// ParseToken decodes a scanned string. Every failure wraps ErrMalformedToken.
func ParseToken(scanned string) (Token, error) {
	parts := strings.Split(scanned, separator)
	if len(parts) != 3 {
		return Token{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}
	if parts[0] != SchemeTag {
		return Token{}, fmt.Errorf("%w: unknown scheme %q", ErrMalformedToken, parts[0])
	}

	employeeID, ok := strings.CutPrefix(parts[1], employeeIDField)
	if !ok || employeeID == "" {
		return Token{}, fmt.Errorf("%w: missing employeeId", ErrMalformedToken)
	}

	rawSlot, ok := strings.CutPrefix(parts[2], timestampField)
	if !ok || !utils.IsNumeric(rawSlot) {
		return Token{}, fmt.Errorf("%w: timestamp must be digits", ErrMalformedToken)
	}
	slot, err := strconv.ParseInt(rawSlot, 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("%w: timestamp: %v", ErrMalformedToken, err)
	}

	return Token{EmployeeID: employeeID, TimeSlot: slot}, nil
}
