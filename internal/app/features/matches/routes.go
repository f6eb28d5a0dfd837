// internal/app/features/matches/routes.go
package matches

import (
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Match routes under the base path (typically
// "/match" from bootstrap). Every operation requires a signed-in
// caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
