package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/label"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoRepository persists todos and resolves their labels.
// Implemented by the in-memory and relational storage adapters.
type TodoRepository interface {
	// Create stores a new todo with a fresh ID, Completed=false and no labels.
	Create(ctx context.Context, in todo.Create) (*todo.Todo, error)

	// Find returns a single todo by ID with its labels.
	// Returns a *domain.NotFoundError if the todo does not exist.
	Find(ctx context.Context, id int64) (*todo.Todo, error)

	// All returns every todo, newest (highest ID) first.
	All(ctx context.Context) ([]todo.Todo, error)

	// Update applies a partial update. Absent fields keep their stored values.
	// Returns a *domain.NotFoundError if the todo does not exist and a
	// *domain.InvalidReferenceError if a label ID cannot be resolved; in both
	// cases nothing is written.
	Update(ctx context.Context, id int64, in todo.Update) (*todo.Todo, error)

	// Delete removes a todo.
	// Returns a *domain.NotFoundError if the todo does not exist.
	Delete(ctx context.Context, id int64) error
}

// LabelRepository persists labels.
type LabelRepository interface {
	// Create stores a new label.
	// Returns a *domain.DuplicateError carrying the existing ID when a label
	// with the same name already exists.
	Create(ctx context.Context, in label.Create) (*label.Label, error)

	// All returns every label in ascending ID order.
	All(ctx context.Context) ([]label.Label, error)

	// Delete removes a label and detaches it from every todo.
	// Returns a *domain.NotFoundError if the label does not exist.
	Delete(ctx context.Context, id int64) error
}
