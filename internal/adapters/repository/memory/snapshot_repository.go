package memory

import (
	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
	"sync"
)

type viewState struct {
	generation uint64
	snapshot   *domain.Snapshot
}

type SnapshotRepository struct {
	mu    sync.RWMutex
	views map[string]*viewState
}

// NewSnapshotRepository creates an empty in-memory SnapshotRepository.
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		views: make(map[string]*viewState),
	}
}

// withView finds (or creates) the state of a view and executes fn while
// holding the write lock, so generation checks and writes happen atomically.
func (r *SnapshotRepository) withView(view string, fn func(v *viewState) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[view]
	if !ok {
		v = &viewState{}
		r.views[view] = v
	}
	return fn(v)
}

// Apply stores s only if its generation is newer than the last one seen for
// the view.
func (r *SnapshotRepository) Apply(s domain.Snapshot) bool {
	return r.withView(s.View, func(v *viewState) bool {
		if s.Generation <= v.generation {
			return false
		}
		v.generation = s.Generation
		v.snapshot = &s
		return true
	})
}

// Invalidate drops the view's snapshot after a failed refresh so a stale
// result is never served in its place.
func (r *SnapshotRepository) Invalidate(view string, gen uint64) bool {
	return r.withView(view, func(v *viewState) bool {
		if gen <= v.generation {
			return false
		}
		v.generation = gen
		v.snapshot = nil
		return true
	})
}

func (r *SnapshotRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, v := range r.views {
		if v.snapshot != nil {
			n++
		}
	}
	return n
}

func (r *SnapshotRepository) GetSnapshot(view string) (*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.views[view]
	if !ok || v.snapshot == nil {
		return nil, coreerrors.ErrSnapshotNotFound
	}
	snapCopy := *v.snapshot
	return &snapCopy, nil
}
