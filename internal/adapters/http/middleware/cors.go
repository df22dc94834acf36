package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

var corsMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// CORS returns middleware that answers preflight requests and sets the
// Access-Control-Allow-* headers for the configured origins. Every method
// the API serves is allowed.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: corsMethods,
		AllowedHeaders: cfg.AllowedHeaders,
	})
	return c.Handler
}
