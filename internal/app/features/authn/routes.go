// internal/app/features/authn/routes.go
package authn

import (
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the authentication routes under the base path
// (typically "/auth" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/renew", h.HandleRenew)
		pr.Post("/logout", h.HandleLogout)
	})

	return r
}
