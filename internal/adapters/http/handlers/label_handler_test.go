package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/label"
	"github.com/jsamuelsen11/todo-service/mocks"
)

func newLabelHandler(t *testing.T) (*handlers.LabelHandler, *mocks.MockLabelRepository) {
	t.Helper()
	repo := mocks.NewMockLabelRepository(t)
	return handlers.NewLabelHandler(repo), repo
}

func TestListLabels_Success(t *testing.T) {
	t.Parallel()
	h, repo := newLabelHandler(t)

	repo.EXPECT().All(mock.Anything).Return([]label.Label{{ID: 1, Name: "home"}, {ID: 2, Name: "work"}}, nil)

	rec := httptest.NewRecorder()
	h.ListLabels(rec, httptest.NewRequest(http.MethodGet, "/labels", nil))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[[]dto.LabelResponse](t, rec)
	if len(resp) != 2 || resp[0].Name != "home" || resp[1].Name != "work" {
		t.Errorf("response = %+v, want [home work]", resp)
	}
}

func TestCreateLabel_Success(t *testing.T) {
	t.Parallel()
	h, repo := newLabelHandler(t)

	repo.EXPECT().Create(mock.Anything, label.Create{Name: "home"}).Return(&label.Label{ID: 4, Name: "home"}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/labels", bytes.NewBufferString(`{"name":"home"}`))
	handlers.ValidatedJSON(h.CreateLabel)(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.LabelResponse](t, rec)
	if resp.ID != 4 || resp.Name != "home" {
		t.Errorf("response = %+v, want {4 home}", resp)
	}
}

func TestCreateLabel_Duplicate(t *testing.T) {
	t.Parallel()
	h, repo := newLabelHandler(t)

	repo.EXPECT().Create(mock.Anything, label.Create{Name: "home"}).
		Return(nil, &domain.DuplicateError{Resource: label.Resource, ID: 4})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/labels", bytes.NewBufferString(`{"name":"home"}`))
	handlers.ValidatedJSON(h.CreateLabel)(rec, req)

	requireProblem(t, rec, http.StatusConflict, "label already exists with id 4")
}

func TestCreateLabel_EmptyName(t *testing.T) {
	t.Parallel()
	h, _ := newLabelHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/labels", bytes.NewBufferString(`{"name":""}`))
	handlers.ValidatedJSON(h.CreateLabel)(rec, req)

	requireProblem(t, rec, http.StatusBadRequest, "name: can not be empty")
}

func TestDeleteLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		setup      func(repo *mocks.MockLabelRepository)
		wantStatus int
	}{
		{
			name: "deleted",
			id:   "2",
			setup: func(repo *mocks.MockLabelRepository) {
				repo.EXPECT().Delete(mock.Anything, int64(2)).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "missing",
			id:   "2",
			setup: func(repo *mocks.MockLabelRepository) {
				repo.EXPECT().Delete(mock.Anything, int64(2)).Return(&domain.NotFoundError{Resource: label.Resource, ID: 2})
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad id",
			id:         "two",
			setup:      func(*mocks.MockLabelRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, repo := newLabelHandler(t)
			tt.setup(repo)

			rec := httptest.NewRecorder()
			req := withChiParams(httptest.NewRequest(http.MethodDelete, "/labels/"+tt.id, nil), map[string]string{"id": tt.id})
			h.DeleteLabel(rec, req)

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}
