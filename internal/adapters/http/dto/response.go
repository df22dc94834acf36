// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/todo-service/internal/domain/label"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoResponse represents a single todo in HTTP responses. Labels are
// omitted when the todo has none.
type TodoResponse struct {
	ID        int64           `json:"id"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
	Labels    []LabelResponse `json:"labels,omitempty"`
}

// LabelResponse represents a single label in HTTP responses.
type LabelResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToTodoResponse converts a domain Todo entity to an HTTP response DTO.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	resp := TodoResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
	}
	if len(t.Labels) > 0 {
		resp.Labels = ToLabelListResponse(t.Labels)
	}
	return resp
}

// ToTodoListResponse converts todos to a JSON array. An empty input yields
// an empty, non-nil slice so it encodes as [] rather than null.
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	items := make([]TodoResponse, len(todos))
	for i := range todos {
		items[i] = ToTodoResponse(&todos[i])
	}
	return items
}

// ToLabelResponse converts a domain Label to an HTTP response DTO.
func ToLabelResponse(l *label.Label) LabelResponse {
	return LabelResponse{ID: l.ID, Name: l.Name}
}

// ToLabelListResponse converts labels to a JSON array, never null.
func ToLabelListResponse(labels []label.Label) []LabelResponse {
	items := make([]LabelResponse, len(labels))
	for i := range labels {
		items[i] = ToLabelResponse(&labels[i])
	}
	return items
}
