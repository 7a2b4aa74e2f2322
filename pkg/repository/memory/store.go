package memory

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

// bucket keeps the records of one workspace in insertion order
type bucket[K comparable, V any] struct {
	items map[K]V
	order []K
}

func newBucket[K comparable, V any]() *bucket[K, V] {
	return &bucket[K, V]{items: make(map[K]V)}
}

// workspaceStore is a workspace-scoped, insertion-ordered map. Values are
// cloned on the way in and out so callers never share memory with the store.
type workspaceStore[K comparable, V any] struct {
	mu      sync.RWMutex
	kind    string
	buckets map[types.WorkspaceID]*bucket[K, V]
	clone   func(V) V
}

func newWorkspaceStore[K comparable, V any](kind string, clone func(V) V) *workspaceStore[K, V] {
	return &workspaceStore[K, V]{
		kind:    kind,
		buckets: make(map[types.WorkspaceID]*bucket[K, V]),
		clone:   clone,
	}
}

func (s *workspaceStore[K, V]) put(workspaceID types.WorkspaceID, id K, v V) V {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[workspaceID]
	if !ok {
		b = newBucket[K, V]()
		s.buckets[workspaceID] = b
	}
	if _, exists := b.items[id]; !exists {
		b.order = append(b.order, id)
	}
	b.items[id] = s.clone(v)
	return s.clone(v)
}

func (s *workspaceStore[K, V]) get(workspaceID types.WorkspaceID, id K) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	b, ok := s.buckets[workspaceID]
	if !ok {
		return zero, goerr.Wrap(ErrNotFound, s.kind+" not found",
			goerr.V("workspace_id", workspaceID), goerr.V("id", id))
	}
	v, ok := b.items[id]
	if !ok {
		return zero, goerr.Wrap(ErrNotFound, s.kind+" not found",
			goerr.V("workspace_id", workspaceID), goerr.V("id", id))
	}
	return s.clone(v), nil
}

func (s *workspaceStore[K, V]) list(workspaceID types.WorkspaceID) []V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[workspaceID]
	if !ok {
		return []V{}
	}
	result := make([]V, 0, len(b.order))
	for _, id := range b.order {
		result = append(result, s.clone(b.items[id]))
	}
	return result
}

func (s *workspaceStore[K, V]) delete(workspaceID types.WorkspaceID, id K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[workspaceID]
	if !ok {
		return goerr.Wrap(ErrNotFound, s.kind+" not found",
			goerr.V("workspace_id", workspaceID), goerr.V("id", id))
	}
	if _, exists := b.items[id]; !exists {
		return goerr.Wrap(ErrNotFound, s.kind+" not found",
			goerr.V("workspace_id", workspaceID), goerr.V("id", id))
	}

	delete(b.items, id)
	for i, k := range b.order {
		if k == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// replace swaps the bucket atomically so readers never see a half-loaded set
func (s *workspaceStore[K, V]) replace(workspaceID types.WorkspaceID, ids []K, values []V) {
	b := newBucket[K, V]()
	for i, id := range ids {
		if _, exists := b.items[id]; !exists {
			b.order = append(b.order, id)
		}
		b.items[id] = s.clone(values[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[workspaceID] = b
}
