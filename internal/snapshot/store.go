// Package snapshot stores the most recent data payload per provider.
// Providers push snapshots in; the renderer reads them out. Snapshots
// carry an advisory TTL but are never evicted: a stale reading is still
// worth showing on a dashboard, and widgets decide how to present age.
package snapshot

import (
	"context"
	"sync"

	"github.com/einkhub/renderer/pkg/models"
)

// Store is the provider snapshot cache.
type Store interface {
	// Put replaces the snapshot for snap.Provider.
	Put(ctx context.Context, snap models.ProviderSnapshot) error
	// Get returns the snapshot for a provider. The bool reports whether
	// one exists; absence is not an error.
	Get(ctx context.Context, provider string) (models.ProviderSnapshot, bool, error)
	// All returns every stored snapshot keyed by provider name.
	All(ctx context.Context) (map[string]models.ProviderSnapshot, error)
	// Delete removes a provider's snapshot. Deleting a missing provider
	// is a no-op.
	Delete(ctx context.Context, provider string) error
	Close() error
}

// MemoryStore keeps snapshots in process memory. It is the default when
// no Redis address is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]models.ProviderSnapshot
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]models.ProviderSnapshot)}
}

func (s *MemoryStore) Put(_ context.Context, snap models.ProviderSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.Provider] = snap
	return nil
}

func (s *MemoryStore) Get(_ context.Context, provider string) (models.ProviderSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[provider]
	return snap, ok, nil
}

func (s *MemoryStore) All(_ context.Context) (map[string]models.ProviderSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.ProviderSnapshot, len(s.snapshots))
	for k, v := range s.snapshots {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, provider)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
