package doctorauth

import (
	"strings"
	"sync"
	"time"
)

// AttemptStore remembers when each email last attempted to sign up.
type AttemptStore interface {
	Last(email string) time.Time
	Record(email string, at time.Time)
}

// MemoryAttempts is an in-memory AttemptStore keyed by normalized email.
type MemoryAttempts struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryAttempts() *MemoryAttempts {
	return &MemoryAttempts{last: make(map[string]time.Time)}
}

func (m *MemoryAttempts) Last(email string) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last[normalizeEmail(email)]
}

func (m *MemoryAttempts) Record(email string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[normalizeEmail(email)] = at
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
