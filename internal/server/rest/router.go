package rest

import (
	"net/http"

	"github.com/dmitrijs2005/userdirectory/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// UserRoute is the mount point of the user resource.
const UserRoute = "/users"

// NewRouter wires the middleware stack and all routes.
func NewRouter(users UserDirectory, logger logging.Logger) http.Handler {
	h := NewHandler(users, logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(AccessLog(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Mount(UserRoute, h.userRoutes())

	return r
}

func (h *Handler) userRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listUsers)
	r.Post("/", h.createUser)
	r.Get("/{id}", h.getUser)
	r.Put("/{id}", h.updateUser)
	r.Patch("/{id}", h.patchUser)
	r.Delete("/{id}", h.deleteUser)
	return r
}
