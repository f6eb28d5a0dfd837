// internal/app/features/opportunities/routes.go
package opportunities

import (
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Opportunity routes under the base path (typically
// "/opportunities" from bootstrap). Reads need a signed-in caller;
// writes are admin only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/industries", h.ServeIndustries)
		pr.Get("/{id}", h.ServeView)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireAdmin)

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
