package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/domain"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore is an in-process Store. It is used when no Redis URL is
// configured and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns a MemoryStore whose sessions expire ttl after
// their last write.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for expiry. For tests.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeLocked()
	m.entries[s.ID] = memoryEntry{session: s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.liveLocked(id)
	if !ok {
		return Session{}, fmt.Errorf("session.MemoryStore.Get: %w", domain.ErrNotFound)
	}
	return e.session, nil
}

func (m *MemoryStore) Update(_ context.Context, id uuid.UUID, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.liveLocked(id)
	if !ok {
		return Session{}, fmt.Errorf("session.MemoryStore.Update: %w", domain.ErrNotFound)
	}
	s := e.session
	if err := fn(&s); err != nil {
		return Session{}, err
	}
	m.entries[id] = memoryEntry{session: s, expiresAt: m.now().Add(m.ttl)}
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.liveLocked(id); !ok {
		return fmt.Errorf("session.MemoryStore.Delete: %w", domain.ErrNotFound)
	}
	delete(m.entries, id)
	return nil
}

// liveLocked returns the entry for id unless it is missing or expired.
// Expired entries are removed. m.mu must be held.
func (m *MemoryStore) liveLocked(id uuid.UUID) (memoryEntry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return memoryEntry{}, false
	}
	return e, true
}

// purgeLocked drops every expired entry. m.mu must be held.
func (m *MemoryStore) purgeLocked() {
	now := m.now()
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}
