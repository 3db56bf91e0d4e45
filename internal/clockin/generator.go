package clockin

import (
	"context"
	"time"
)

// Code is a generated token plus the window in which it verifies.
type Code struct {
	Token      string    `json:"token"`
	EmployeeID string    `json:"employeeId"`
	TimeSlot   int64     `json:"timeSlot"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"` // exclusive; the first instant of the next slot
}

// GenerateAt builds the token for employeeID in the slot containing now.
func GenerateAt(employeeID string, now time.Time) (Code, error) {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return Code{}, err
	}
	slot := TimeSlot(now)
	from, until := SlotBounds(slot)
	return Code{
		Token:      Token{EmployeeID: employeeID, TimeSlot: slot}.String(),
		EmployeeID: employeeID,
		TimeSlot:   slot,
		ValidFrom:  from,
		ValidUntil: until,
	}, nil
}

// Generator produces tokens from its clock.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a Generator reading time from now (time.Now when nil).
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Generate returns the current token for employeeID.
func (g *Generator) Generate(employeeID string) (Code, error) {
	return GenerateAt(employeeID, g.now())
}

// Presenter keeps a displayed code fresh: it emits one immediately and a new
// one at every slot boundary until ctx is done or emit fails.
type Presenter struct {
	Generator *Generator
	// After defaults to time.After.
	After func(time.Duration) <-chan time.Time
}

// Run blocks until ctx is cancelled (returning ctx.Err()) or emit returns an error.
func (p *Presenter) Run(ctx context.Context, employeeID string, emit func(Code) error) error {
	after := p.After
	if after == nil {
		after = time.After
	}
	gen := p.Generator
	if gen == nil {
		gen = NewGenerator(nil)
	}

	for {
		code, err := gen.Generate(employeeID)
		if err != nil {
			return err
		}
		if err := emit(code); err != nil {
			return err
		}

		wait := code.ValidUntil.Sub(gen.now())
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-after(wait):
		}
	}
}
