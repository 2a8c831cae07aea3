package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/skillmatch/backend/internal/domain"
)

const defaultTTL = time.Hour

// storedDataset represents a single dataset in the store with expiration
type storedDataset struct {
	dataset    *domain.Dataset
	expiration time.Time
}

// MemoryStore is a thread-safe in-memory dataset store with TTL support
type MemoryStore struct {
	data  map[string]storedDataset
	ttl   time.Duration
	mutex sync.RWMutex
	done  chan struct{}
	once  sync.Once
}

// NewMemoryStore creates a new in-memory dataset store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	s := &MemoryStore{
		data: make(map[string]storedDataset),
		ttl:  ttl,
		done: make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired datasets
	go s.cleanupExpired(cleanupInterval(ttl))

	return s
}

// Save stores a dataset, replacing any dataset with the same id
func (s *MemoryStore) Save(ctx context.Context, dataset *domain.Dataset) error {
	if dataset == nil || dataset.ID == "" {
		return domain.ErrInvalidRequest
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[dataset.ID] = storedDataset{
		dataset:    dataset,
		expiration: time.Now().Add(s.ttl),
	}
	return nil
}

// Get retrieves a dataset from the store
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Dataset, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, exists := s.data[id]
	if !exists || time.Now().After(item.expiration) {
		return nil, domain.ErrDatasetNotFound
	}

	return item.dataset, nil
}

// Delete removes a dataset from the store
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, id)
	return nil
}

// Size returns the current number of datasets in the store (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

// cleanupExpired removes expired datasets periodically
func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.removeExpired(time.Now()); n > 0 {
				log.Printf("[STORE] Removed %d expired datasets", n)
			}
		}
	}
}

func (s *MemoryStore) removeExpired(now time.Time) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for id, item := range s.data {
		if now.After(item.expiration) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// cleanupInterval sweeps at most every 10 minutes, sooner for short TTLs
func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < 10*time.Minute {
		return ttl
	}
	return 10 * time.Minute
}
