package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/domain"
)

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

var errTrailingData = errors.New("trailing characters after JSON value")

// payload is implemented by pointers to request DTOs that validate themselves.
type payload[T any] interface {
	*T
	Validate() error
}

// ValidatedJSON adapts a handler that takes a decoded request body into an
// http.HandlerFunc. The body is capped at 1 MB and decoded into T, then
// validated. The body must hold exactly one JSON value. A malformed body or
// a validation violation is answered with 400 and next is not called.
//
//	r.Post("/todos", handlers.ValidatedJSON(todos.CreateTodo))
func ValidatedJSON[T any, PT payload[T]](next func(http.ResponseWriter, *http.Request, T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body T

		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		if err := decodeSingle(r.Body, &body); err != nil {
			dto.WriteErrorResponse(w, r, parseError(err))
			return
		}

		if err := PT(&body).Validate(); err != nil {
			dto.WriteErrorResponse(w, r, err)
			return
		}

		next(w, r, body)
	}
}

// decodeSingle decodes exactly one JSON value from body. Anything but
// whitespace after it is an error.
func decodeSingle(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// parseError reports a body that could not be decoded. Multi-line decoder
// messages are flattened so the detail stays on one line.
func parseError(err error) error {
	msg := strings.ReplaceAll(strings.TrimSpace(err.Error()), "\n", ", ")
	return &domain.ValidationError{Fields: map[string]string{
		"body": fmt.Sprintf("json parse error: [%s]", msg),
	}}
}
