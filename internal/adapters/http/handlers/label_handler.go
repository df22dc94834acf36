package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// LabelHandler handles HTTP requests for labels.
type LabelHandler struct {
	labels ports.LabelRepository
}

// NewLabelHandler creates a new LabelHandler backed by the given repository.
func NewLabelHandler(labels ports.LabelRepository) *LabelHandler {
	return &LabelHandler{labels: labels}
}

// ListLabels handles GET /labels.
func (h *LabelHandler) ListLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := h.labels.All(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToLabelListResponse(labels))
}

// CreateLabel handles POST /labels. A taken name is answered with 409 and
// the existing label's id in the detail. Wrap with ValidatedJSON.
func (h *LabelHandler) CreateLabel(w http.ResponseWriter, r *http.Request, req dto.CreateLabelRequest) {
	created, err := h.labels.Create(r.Context(), req.ToDomain())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToLabelResponse(created))
}

// DeleteLabel handles DELETE /labels/{id}. The label is detached from every
// todo that carried it.
func (h *LabelHandler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.labels.Delete(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
