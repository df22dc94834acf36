// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// Stack returns the pipeline the server runs, in this order:
//
//	Recovery → RequestID → CorrelationID → CORS → OpenTelemetry → Logging → Timeout → router
//
// Each middleware is a func(http.Handler) http.Handler and can be composed
// using the Chain helper.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
)

// Chain composes multiple middleware into a single middleware. The first
// argument becomes the outermost middleware:
//
//	Chain(Recovery, RequestID, Logging)(handler)
//
// is equivalent to:
//
//	Recovery(RequestID(Logging(handler)))
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// StackConfig holds the dependencies of the standard middleware stack.
// Metrics may be nil when telemetry is disabled.
type StackConfig struct {
	Logger  *slog.Logger
	Metrics *telemetry.Metrics
	CORS    config.CORSConfig
	Timeout time.Duration
}

// Stack returns the service's middleware, outermost first. Recovery wraps
// everything, including panics Timeout hands back from its handler goroutine.
func Stack(cfg StackConfig) []func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return []func(http.Handler) http.Handler{
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		CORS(cfg.CORS),
		OpenTelemetry(cfg.Metrics),
		Logging(logger),
		Timeout(cfg.Timeout),
	}
}
