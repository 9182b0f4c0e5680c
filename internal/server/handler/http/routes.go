package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ameleshko/TodoKeeper/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the todo
// API. It applies JSON content-type enforcement and request logging
// router-wide, and bearer-token authentication on the protected group.
//
// Routes:
//
//	GET    /                   → health check (public)
//	POST   /signup             → authHandler.SignUp (public)
//	POST   /login              → authHandler.Login (public)
//	POST   /logout             → authHandler.Logout (protected)
//	GET    /todos/             → todoHandler.List (protected)
//	POST   /todos/             → todoHandler.Create (protected)
//	GET    /todos/{id}/        → todoHandler.Get (protected)
//	PUT    /todos/{id}/        → todoHandler.Update (protected)
//	DELETE /todos/{id}/        → todoHandler.Delete (protected)
//	PUT    /todos/{id}/done/   → todoHandler.MarkDone (protected)
//	GET    /done_todos/        → todoHandler.ListDone (protected)
//	POST   /done_todos/        → todoHandler.CreateDone (protected)
func NewRouter(
	authHandler *AuthHandler,
	todoHandler *TodoHandler,
	auth func(http.Handler) http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/signup", authHandler.SignUp)
	r.Post("/login", authHandler.Login)

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/logout", authHandler.Logout)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Get("/{id}/", todoHandler.Get)
			r.Put("/{id}/", todoHandler.Update)
			r.Delete("/{id}/", todoHandler.Delete)
			r.Put("/{id}/done/", todoHandler.MarkDone)
		})

		r.Route("/done_todos", func(r chi.Router) {
			r.Get("/", todoHandler.ListDone)
			r.Post("/", todoHandler.CreateDone)
		})
	})

	return r
}
