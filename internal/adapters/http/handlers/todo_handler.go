package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// TodoHandler handles HTTP requests for todo CRUD operations.
type TodoHandler struct {
	todos ports.TodoRepository
}

// NewTodoHandler creates a new TodoHandler backed by the given repository.
func NewTodoHandler(todos ports.TodoRepository) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// ListTodos handles GET /todos. Todos are returned newest first.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.All(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTodoListResponse(todos))
}

// CreateTodo handles POST /todos. Wrap with ValidatedJSON.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request, req dto.CreateTodoRequest) {
	created, err := h.todos.Create(r.Context(), req.ToDomain())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	logging.FromContext(r.Context()).InfoContext(r.Context(), "todo created",
		slog.Int64("todo_id", created.ID),
	)
	writeJSON(w, r, http.StatusCreated, dto.ToTodoResponse(created))
}

// GetTodo handles GET /todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	t, err := h.todos.Find(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTodoResponse(t))
}

// UpdateTodo handles PATCH /todos/{id}. Wrap with ValidatedJSON.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request, req dto.UpdateTodoRequest) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	updated, err := h.todos.Update(r.Context(), id, req.ToDomain())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTodoResponse(updated))
}

// DeleteTodo handles DELETE /todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.todos.Delete(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
