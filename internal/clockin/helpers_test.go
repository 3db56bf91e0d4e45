package clockin_test

import (
	"sync"
	"time"

	"github.com/hr_management/internal/clockin"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// slotStart returns the first instant of the slot containing t.
func slotStart(t time.Time) time.Time {
	start, _ := clockin.SlotBounds(clockin.TimeSlot(t))
	return start
}

func mustToken(employeeID string, at time.Time) string {
	code, err := clockin.GenerateAt(employeeID, at)
	if err != nil {
		panic(err)
	}
	return code.Token
}
