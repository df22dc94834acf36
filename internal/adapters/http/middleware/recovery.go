package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

// handlerPanic carries a panic from the goroutine Timeout runs the handler
// on back to the serving goroutine, together with the stack where it
// happened.
type handlerPanic struct {
	value any
	stack []byte
}

// Recovery turns a panic anywhere below it into a 500 problem response. The
// panic value and stack are logged; the client only sees "internal server
// error". If the handler already started the response, only the log entry is
// emitted. http.ErrAbortHandler is re-raised so net/http can abort the
// connection quietly.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}

				value, stack := v, []byte(nil)
				if hp, ok := v.(*handlerPanic); ok {
					value, stack = hp.value, hp.stack
				} else {
					stack = debug.Stack()
				}
				if err, ok := value.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(err)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(value)),
					slog.String("stack", string(stack)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if !rw.headerWritten {
					ctx := logging.WithLogger(r.Context(), logger)
					dto.WriteErrorResponse(rw, r.WithContext(ctx), domain.Unexpected(fmt.Errorf("panic: %v", value)))
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
