package clockin

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an unused scan session is kept.
const DefaultSessionTTL = 10 * time.Minute

// Session is one open scanning view owned by an employee.
type Session struct {
	ID         string    `json:"sessionId"`
	EmployeeID string    `json:"employeeId"`
	CreatedAt  time.Time `json:"createdAt"`
	Scanner    *Scanner  `json:"-"`

	lastUsed time.Time
}

// SessionRegistry holds the open scan sessions in memory. Sessions are lost
// on restart, which only costs the user reopening the scanner.
type SessionRegistry struct {
	verifier *Verifier
	cooldown time.Duration
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionRegistry creates a registry whose scanners use verifier and cooldown.
func NewSessionRegistry(verifier *Verifier, cooldown, ttl time.Duration, now func() time.Time) *SessionRegistry {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRegistry{
		verifier: verifier,
		cooldown: cooldown,
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]*Session),
	}
}

// Open starts a new armed session for employeeID and purges idle ones.
func (r *SessionRegistry) Open(employeeID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.purgeLocked(now)

	s := &Session{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		CreatedAt:  now,
		Scanner:    NewScanner(r.verifier, employeeID, r.cooldown, r.now),
		lastUsed:   now,
	}
	r.sessions[s.ID] = s
	return s
}

// Get returns the session id owned by employeeID.
func (r *SessionRegistry) Get(id, employeeID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s, ok := r.sessions[id]
	if !ok || now.Sub(s.lastUsed) > r.ttl {
		if ok {
			s.Scanner.Close()
			delete(r.sessions, id)
		}
		return nil, ErrSessionNotFound
	}
	if s.EmployeeID != employeeID {
		return nil, ErrSessionForbidden
	}
	s.lastUsed = now
	return s, nil
}

// Close closes and forgets the session.
func (r *SessionRegistry) Close(id, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.EmployeeID != employeeID {
		return ErrSessionForbidden
	}
	s.Scanner.Close()
	delete(r.sessions, id)
	return nil
}

// Len reports the number of tracked sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) purgeLocked(now time.Time) {
	for id, s := range r.sessions {
		if now.Sub(s.lastUsed) > r.ttl {
			s.Scanner.Close()
			delete(r.sessions, id)
		}
	}
}

// Cooldown reports the rejection cooldown of scanners opened by the registry.
func (r *SessionRegistry) Cooldown() time.Duration {
	return r.cooldown
}
