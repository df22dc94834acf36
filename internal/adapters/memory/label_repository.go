package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/label"
)

// LabelRepository is a concurrency-safe in-memory label store.
type LabelRepository struct {
	mu     sync.RWMutex
	labels map[int64]label.Label
	nextID int64
}

// NewLabelRepository creates an empty LabelRepository.
func NewLabelRepository() *LabelRepository {
	return &LabelRepository{labels: make(map[int64]label.Label)}
}

// Create stores a label under a fresh ID. Names are compared exactly.
func (r *LabelRepository) Create(_ context.Context, in label.Create) (*label.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.labels {
		if existing.Name == in.Name {
			return nil, &domain.DuplicateError{Resource: label.Resource, ID: existing.ID}
		}
	}

	r.nextID++
	l := label.Label{ID: r.nextID, Name: in.Name}
	r.labels[l.ID] = l
	return &l, nil
}

// All returns every label in ascending ID order.
func (r *LabelRepository) All(_ context.Context) ([]label.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(r.labels))
	out := make([]label.Label, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.labels[id])
	}
	return out, nil
}

// Delete removes a label. Todos that referenced it stop listing it on their
// next read.
func (r *LabelRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.labels[id]; !ok {
		return &domain.NotFoundError{Resource: label.Resource, ID: id}
	}
	delete(r.labels, id)
	return nil
}

// resolve maps every id to its label, failing on the first unknown id.
func (r *LabelRepository) resolve(ids []int64) ([]label.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]label.Label, 0, len(ids))
	for _, id := range ids {
		l, ok := r.labels[id]
		if !ok {
			return nil, &domain.InvalidReferenceError{Resource: label.Resource, ID: id}
		}
		out = append(out, l)
	}
	return out, nil
}

// lookup maps ids to labels, silently skipping ids that no longer exist.
func (r *LabelRepository) lookup(ids []int64) []label.Label {
	if len(ids) == 0 {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]label.Label, 0, len(ids))
	for _, id := range ids {
		if l, ok := r.labels[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
