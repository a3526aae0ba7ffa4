package cache

import (
	"sync"
	"time"
)

// MemoryStore keeps short-lived session values, such as transient notices,
// that disappear on their own after a TTL.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type memoryItem struct {
	value    string
	expireAt time.Time
}

// NewMemoryStore creates a store that sweeps expired values every interval.
// A non-positive interval defaults to one minute.
func NewMemoryStore(interval time.Duration) *MemoryStore {
	if interval <= 0 {
		interval = time.Minute
	}
	store := &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	go store.sweep(interval)

	return store
}

// Set stores value under key until ttl elapses
func (ms *MemoryStore) Set(key, value string, ttl time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = memoryItem{value: value, expireAt: ms.now().Add(ttl)}
}

// Get returns the live value for key
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, ok := ms.items[key]
	if !ok || !ms.now().Before(item.expireAt) {
		return "", false
	}
	return item.value, true
}

// Expiry returns when key stops being visible
func (ms *MemoryStore) Expiry(key string) (time.Time, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, ok := ms.items[key]
	if !ok {
		return time.Time{}, false
	}
	return item.expireAt, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// Len counts stored keys, expired ones not yet swept included.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.items)
}

// Close stops the sweeper. Values stay readable.
func (ms *MemoryStore) Close() {
	ms.stopOnce.Do(func() { close(ms.stop) })
}

func (ms *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.removeExpired()
		}
	}
}

func (ms *MemoryStore) removeExpired() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, item := range ms.items {
		if !now.Before(item.expireAt) {
			delete(ms.items, key)
		}
	}
}
