package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantBytes  int64
	}{
		{
			name:       "nothing written",
			write:      func(http.ResponseWriter) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no content",
			write:      func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
			wantStatus: http.StatusNoContent,
		},
		{
			name: "first status wins",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusCreated)
				w.WriteHeader(http.StatusConflict)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "implicit 200 on body",
			write: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte(`[]`))
				_, _ = w.Write([]byte("\n"))
			},
			wantStatus: http.StatusOK,
			wantBytes:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			rw := newResponseWriter(rec)
			tt.write(rw)

			if rw.Status() != tt.wantStatus {
				t.Errorf("Status() = %d, want %d", rw.Status(), tt.wantStatus)
			}
			if rw.BytesWritten() != tt.wantBytes {
				t.Errorf("BytesWritten() = %d, want %d", rw.BytesWritten(), tt.wantBytes)
			}
		})
	}
}

func TestResponseWriter_LateWriteHeaderNotForwarded(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	_, _ = rw.Write([]byte("partial"))
	rw.WriteHeader(http.StatusInternalServerError)

	if rec.Code != http.StatusOK {
		t.Errorf("recorder Code = %d, want %d", rec.Code, http.StatusOK)
	}
	if rw.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusOK)
	}
}

func TestResponseWriter_NestedWrappersShareState(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	outer := newResponseWriter(rec)
	inner := newResponseWriter(outer)

	if inner != outer {
		t.Fatal("newResponseWriter wrapped an existing *responseWriter again")
	}

	inner.WriteHeader(http.StatusNotFound)
	if outer.Status() != http.StatusNotFound {
		t.Errorf("outer Status() = %d, want %d", outer.Status(), http.StatusNotFound)
	}
}

func TestResponseWriter_Unwrap(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	if rw.Unwrap() != rec {
		t.Error("Unwrap() did not return the underlying writer")
	}
}
