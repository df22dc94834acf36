package dto

import (
	"github.com/jsamuelsen11/todo-service/internal/domain/label"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// Length limits are counted in characters, not bytes.

// CreateTodoRequest represents the JSON body for creating a todo.
type CreateTodoRequest struct {
	Text string `json:"text" validate:"min=1,max=100"`
}

// Validate checks the text length.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateTodoRequest) Validate() error {
	return validateStruct(r)
}

// ToDomain converts the request to the repository input.
func (r *CreateTodoRequest) ToDomain() todo.Create {
	return todo.Create{Text: r.Text}
}

// UpdateTodoRequest represents the JSON body for a partial todo update.
// A nil field means "do not change this field". An empty labels array
// clears every label; a missing or null one leaves labels untouched.
type UpdateTodoRequest struct {
	Text      *string `json:"text,omitempty" validate:"omitnil,min=1,max=100"`
	Completed *bool   `json:"completed,omitempty"`
	Labels    []int64 `json:"labels,omitempty"`
}

// Validate checks any provided fields.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateTodoRequest) Validate() error {
	return validateStruct(r)
}

// ToDomain converts the request to the repository input.
func (r *UpdateTodoRequest) ToDomain() todo.Update {
	return todo.Update{
		Text:      r.Text,
		Completed: r.Completed,
		Labels:    r.Labels,
	}
}

// CreateLabelRequest represents the JSON body for creating a label.
type CreateLabelRequest struct {
	Name string `json:"name" validate:"min=1,max=100"`
}

// Validate checks the name length.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateLabelRequest) Validate() error {
	return validateStruct(r)
}

// ToDomain converts the request to the repository input.
func (r *CreateLabelRequest) ToDomain() label.Create {
	return label.Create{Name: r.Name}
}
