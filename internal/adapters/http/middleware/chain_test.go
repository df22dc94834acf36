package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string

	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+":before")
				next.ServeHTTP(w, r)
				order = append(order, name+":after")
			})
		}
	}

	handler := middleware.Chain(mw("outer"), mw("inner"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/todos/1", http.NoBody))

	want := []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	handler := middleware.Chain()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func stackHandler(buf *bytes.Buffer, timeout time.Duration, h http.HandlerFunc) http.Handler {
	var logger *slog.Logger
	if buf != nil {
		logger = slog.New(slog.NewJSONHandler(buf, nil))
	}
	return middleware.Chain(middleware.Stack(middleware.StackConfig{
		Logger: logger,
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			AllowedHeaders: []string{"Content-Type"},
		},
		Timeout: timeout,
	})...)(h)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("Content-Type = %q, want application/problem+json", ct)
	}
	var problem dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&problem); err != nil {
		t.Fatalf("decoding problem: %v", err)
	}
	return problem
}

func TestStack_HandlerPanicBecomesProblemResponse(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := stackHandler(&buf, time.Second, func(http.ResponseWriter, *http.Request) {
		panic("label index corrupted")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos/1", http.NoBody)
	req.Header.Set("X-Request-ID", "req-panic")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	problem := decodeProblem(t, rec)
	if problem.Detail != "internal server error" {
		t.Errorf("detail = %q, want %q", problem.Detail, "internal server error")
	}
	if rec.Header().Get("X-Request-ID") != "req-panic" {
		t.Errorf("X-Request-ID = %q, want req-panic", rec.Header().Get("X-Request-ID"))
	}

	logs := buf.String()
	if !strings.Contains(logs, "panic recovered") || !strings.Contains(logs, "label index corrupted") {
		t.Errorf("panic not logged: %s", logs)
	}
	if !strings.Contains(logs, "chain_test.go") {
		t.Error("logged stack does not point at the panicking handler")
	}
}

func TestStack_SlowHandlerGetsTimeoutProblem(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	handler := stackHandler(nil, 20*time.Millisecond, func(http.ResponseWriter, *http.Request) {
		<-release
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flaky", http.NoBody))

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
	problem := decodeProblem(t, rec)
	if !strings.Contains(problem.Detail, "request timed out") {
		t.Errorf("detail = %q, want it to mention the timeout", problem.Detail)
	}
}

func TestStack_NormalRequest(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := stackHandler(&buf, time.Second, func(w http.ResponseWriter, r *http.Request) {
		if middleware.RequestIDFromContext(r.Context()) == "" {
			t.Error("request ID not in context")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"name":"home"}`))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/labels", http.NoBody)
	req.Header.Set("Origin", "http://localhost:5173")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.String() != `{"id":1,"name":"home"}` {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if rec.Header().Get("X-Request-ID") == "" || rec.Header().Get("X-Correlation-ID") == "" {
		t.Error("response missing request or correlation id header")
	}
	if !strings.Contains(buf.String(), `"status":201`) {
		t.Errorf("completion not logged with status 201: %s", buf.String())
	}
}
