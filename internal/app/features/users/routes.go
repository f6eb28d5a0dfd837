// internal/app/features/users/routes.go
package users

import (
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all User routes under the base path (typically "/users"
// from bootstrap). Registration is public; the list is admin only; the
// per-user operations check admin-or-self in the handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleRegister)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireAdmin)
		pr.Get("/", h.ServeList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/{id}", h.ServeView)
		pr.Put("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
