package middleware

import "net/http"

// responseWriter records the status and size of a response for the
// middleware that report on it. Nested middleware share one wrapper, so a
// status written deep in the stack is visible to every layer above it.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
	written       int64
}

// newResponseWriter wraps w, or returns w itself when it is already a
// *responseWriter from an outer middleware.
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader records the first status code and forwards it. Later calls are
// dropped, matching net/http's "superfluous WriteHeader" behavior without the
// log noise.
func (rw *responseWriter) WriteHeader(code int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = code
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.headerWritten = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Status is the code sent to the client, 200 when the handler never set one.
func (rw *responseWriter) Status() int {
	return rw.statusCode
}

// BytesWritten is the number of body bytes sent so far.
func (rw *responseWriter) BytesWritten() int64 {
	return rw.written
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
