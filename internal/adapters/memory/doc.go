// Package memory provides in-process implementations of the repository ports.
//
// Each repository guards its own map with a sync.RWMutex and hands out copies,
// so callers can never mutate stored state. Todos keep label IDs and resolve
// them against the label repository on every read; deleting a label therefore
// detaches it from every todo without touching the todo map.
//
// Lock order is todo lock, then label lock. Label operations never take the
// todo lock.
//
//	store := memory.NewStore()
//	created, err := store.Todos.Create(ctx, todo.Create{Text: "buy milk"})
package memory

// Store bundles the two repositories that share label state.
type Store struct {
	Todos  *TodoRepository
	Labels *LabelRepository
}

// NewStore creates empty repositories wired to each other.
func NewStore() *Store {
	labels := NewLabelRepository()
	return &Store{
		Todos:  NewTodoRepository(labels),
		Labels: labels,
	}
}
