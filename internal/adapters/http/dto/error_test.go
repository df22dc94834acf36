package dto_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

func TestNewErrorResponse_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{
			name:       "not found maps to 404",
			err:        &domain.NotFoundError{Resource: "todo", ID: 42},
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
		},
		{
			name:       "validation maps to 400",
			err:        &domain.ValidationError{Fields: map[string]string{"text": domain.MsgEmpty}},
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Bad Request",
		},
		{
			name:       "duplicate maps to 409",
			err:        &domain.DuplicateError{Resource: "label", ID: 1},
			wantStatus: http.StatusConflict,
			wantTitle:  "Conflict",
		},
		{
			name:       "invalid reference maps to 422",
			err:        &domain.InvalidReferenceError{Resource: "label", ID: 9},
			wantStatus: http.StatusUnprocessableEntity,
			wantTitle:  "Unprocessable Entity",
		},
		{
			name:       "unavailable maps to 503",
			err:        fmt.Errorf("%w: database: circuit breaker is open", domain.ErrUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantTitle:  "Service Unavailable",
		},
		{
			name:       "timeout maps to 504",
			err:        fmt.Errorf("%w after 10s", domain.ErrTimeout),
			wantStatus: http.StatusGatewayTimeout,
			wantTitle:  "Gateway Timeout",
		},
		{
			name:       "unexpected maps to 500",
			err:        domain.Unexpected(errors.New("connection reset")),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("oops"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
		},
		{
			name:       "wrapped not found preserves mapping",
			err:        fmt.Errorf("finding todo: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/todos/42", nil)
			got := dto.NewErrorResponse(r, tt.err)

			if got.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestNewErrorResponse_Fields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/todos/7", nil)
	err := &domain.NotFoundError{Resource: "todo", ID: 7}

	got := dto.NewErrorResponse(r, err)

	if got.Type != "about:blank" {
		t.Errorf("Type = %q, want %q", got.Type, "about:blank")
	}
	if got.Instance != "/todos/7" {
		t.Errorf("Instance = %q, want %q", got.Instance, "/todos/7")
	}
	if got.Detail != "todo 7 not found" {
		t.Errorf("Detail = %q, want %q", got.Detail, "todo 7 not found")
	}
	if got.Errors != nil {
		t.Errorf("Errors = %v, want nil for non-validation error", got.Errors)
	}
}

func TestNewErrorResponse_HidesInternalDetail(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/todos", nil)
	got := dto.NewErrorResponse(r, domain.Unexpected(errors.New("pq: password authentication failed")))

	if strings.Contains(got.Detail, "password") {
		t.Errorf("Detail = %q leaks the storage error", got.Detail)
	}
	if got.Detail != "internal server error" {
		t.Errorf("Detail = %q, want %q", got.Detail, "internal server error")
	}
}

func TestNewErrorResponse_ValidationErrors(t *testing.T) {
	t.Parallel()

	verr := &domain.ValidationError{Fields: map[string]string{
		"text":      domain.MsgTooLong,
		"completed": "failed boolean validation",
		"labels":    "failed dive validation",
	}}

	r := httptest.NewRequest(http.MethodPatch, "/todos/1", nil)
	got := dto.NewErrorResponse(r, verr)

	if len(got.Errors) != 3 {
		t.Fatalf("len(Errors) = %d, want 3", len(got.Errors))
	}
	for i := 1; i < len(got.Errors); i++ {
		if got.Errors[i-1].Location >= got.Errors[i].Location {
			t.Errorf("Errors not sorted: %q >= %q", got.Errors[i-1].Location, got.Errors[i].Location)
		}
	}
	for _, detail := range got.Errors {
		if !strings.HasPrefix(detail.Location, "body.") {
			t.Errorf("Location %q does not start with %q", detail.Location, "body.")
		}
	}
	if got.Detail != verr.Error() {
		t.Errorf("Detail = %q, want %q", got.Detail, verr.Error())
	}
}

func TestWriteErrorResponse_Body(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/labels", nil)

	dto.WriteErrorResponse(w, r, &domain.ValidationError{Fields: map[string]string{
		"name": domain.MsgEmpty,
	}})

	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/problem+json")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(resp.Errors))
	}
	if resp.Errors[0].Location != "body.name" || resp.Errors[0].Message != domain.MsgEmpty {
		t.Errorf("Errors[0] = %+v, want body.name: %s", resp.Errors[0], domain.MsgEmpty)
	}
}

func TestWriteErrorResponse_LogsServerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{name: "500 is logged", err: errors.New("disk full"), wantLog: true},
		{name: "503 is logged", err: domain.ErrUnavailable, wantLog: true},
		{name: "404 is not logged", err: domain.ErrNotFound, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/todos", nil)
			r = r.WithContext(logging.WithLogger(r.Context(), logger))

			dto.WriteErrorResponse(w, r, tt.err)

			logged := strings.Contains(buf.String(), "request failed")
			if logged != tt.wantLog {
				t.Errorf("logged = %v, want %v; log = %s", logged, tt.wantLog, buf.String())
			}
		})
	}
}
