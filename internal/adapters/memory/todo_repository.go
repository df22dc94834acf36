package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// record is the stored form of a todo. Labels are kept by ID.
type record struct {
	id        int64
	text      string
	completed bool
	labelIDs  []int64
}

// TodoRepository is a concurrency-safe in-memory todo store.
type TodoRepository struct {
	mu     sync.RWMutex
	todos  map[int64]*record
	nextID int64
	labels *LabelRepository
}

// NewTodoRepository creates an empty TodoRepository that resolves labels
// against the given label repository.
func NewTodoRepository(labels *LabelRepository) *TodoRepository {
	return &TodoRepository{
		todos:  make(map[int64]*record),
		labels: labels,
	}
}

// Create stores a new todo. IDs come from a counter and are never reused.
func (r *TodoRepository) Create(_ context.Context, in todo.Create) (*todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec := &record{id: r.nextID, text: in.Text}
	r.todos[rec.id] = rec

	t := r.hydrate(rec)
	return &t, nil
}

// Find returns the todo with the given ID.
func (r *TodoRepository) Find(_ context.Context, id int64) (*todo.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.todos[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: todo.Resource, ID: id}
	}

	t := r.hydrate(rec)
	return &t, nil
}

// All returns every todo ordered by descending ID.
func (r *TodoRepository) All(_ context.Context) ([]todo.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]todo.Todo, 0, len(r.todos))
	for _, rec := range r.todos {
		out = append(out, r.hydrate(rec))
	}
	slices.SortFunc(out, func(a, b todo.Todo) int {
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

// Update applies a partial update under the write lock. Labels are resolved
// before anything is written, so an unknown label ID leaves the todo intact.
func (r *TodoRepository) Update(_ context.Context, id int64, in todo.Update) (*todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.todos[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: todo.Resource, ID: id}
	}

	var labelIDs []int64
	if in.HasLabels() {
		ids := in.LabelIDs()
		if _, err := r.labels.resolve(ids); err != nil {
			return nil, err
		}
		labelIDs = ids
	}

	if in.Text != nil {
		rec.text = *in.Text
	}
	if in.Completed != nil {
		rec.completed = *in.Completed
	}
	if in.HasLabels() {
		rec.labelIDs = labelIDs
	}

	t := r.hydrate(rec)
	return &t, nil
}

// Delete removes the todo with the given ID.
func (r *TodoRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return &domain.NotFoundError{Resource: todo.Resource, ID: id}
	}
	delete(r.todos, id)
	return nil
}

// hydrate builds a detached Todo from a record. Must be called with r.mu held.
func (r *TodoRepository) hydrate(rec *record) todo.Todo {
	return todo.Todo{
		ID:        rec.id,
		Text:      rec.text,
		Completed: rec.completed,
		Labels:    r.labels.lookup(rec.labelIDs),
	}
}
