package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	data    Data
	expires time.Time
}

// sweepEvery bounds how often Save scans for expired entries.
const sweepEvery = time.Minute

// MemoryStore is used when REDIS_ADDR is unset. Sessions die with the process.
// Expired entries are dropped on read and swept during Save, so sessions that
// are never read back do not accumulate.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memEntry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return Data{}, ErrNotFound
	}
	if s.now().After(e.expires) {
		delete(s.entries, id)
		return Data{}, ErrNotFound
	}
	d := e.data
	d.Flashes = append([]Flash(nil), e.data.Flashes...)
	return d, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, d Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= sweepEvery {
		s.sweep(now)
	}
	d.Flashes = append([]Flash(nil), d.Flashes...)
	s.entries[id] = memEntry{data: d, expires: now.Add(ttl)}
	return nil
}

// sweep must be called with mu held.
func (s *MemoryStore) sweep(now time.Time) {
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
