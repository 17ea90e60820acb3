package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// DefaultCapacity bounds the in-process cache when no capacity is given
const DefaultCapacity = 100

type memoryEntry struct {
	data     []byte
	storedAt time.Time
	ttl      time.Duration
}

// MemoryStore is a mutex-guarded in-process TTL cache. Expired entries are
// evicted lazily on Get, not by a background sweep. When an insert pushes
// the map past capacity, the oldest-inserted entry is evicted (insertion
// order, not access order).
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	order    []string // insertion order, may contain keys already removed
	capacity int
	now      func() time.Time
}

// NewMemoryStore creates an in-process cache. capacity <= 0 falls back to
// DefaultCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{
		entries:  make(map[string]*memoryEntry),
		capacity: capacity,
		now:      time.Now,
	}
}

// Get unmarshals the cached value into dest, deleting the entry if expired
func (s *MemoryStore) Get(ctx context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	entry, ok := s.entries[key]
	if ok && s.expired(entry) {
		delete(s.entries, key)
		ok = false
	}
	var data []byte
	if ok {
		data = entry.data
	}
	s.mu.Unlock()

	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

// Set stores value under key, evicting the oldest-inserted entry when the
// capacity bound is exceeded
func (s *MemoryStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, key)
	}
	s.entries[key] = &memoryEntry{data: data, storedAt: s.now(), ttl: ttl}

	for len(s.entries) > s.capacity {
		s.evictOldestLocked()
	}
	return nil
}

// Delete removes keys; missing keys are ignored
func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

// Len returns the number of live entries
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(entry *memoryEntry) bool {
	return s.now().Sub(entry.storedAt) > entry.ttl
}

// evictOldestLocked drops the oldest-inserted live entry. Order slots whose
// key was already deleted (lazy expiry, explicit delete) are skipped.
func (s *MemoryStore) evictOldestLocked() {
	for len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		if _, ok := s.entries[oldest]; ok {
			delete(s.entries, oldest)
			return
		}
	}
}
