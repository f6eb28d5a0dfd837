// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Notification routes under the base path (typically
// "/notifications" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/{userId}", h.ServeListForUser)
		pr.Put("/user/{id}/accept", h.HandleUserAccept)
		pr.Put("/user/{id}/cancel", h.HandleUserCancel)
	})

	// The admin side of the conversation is role-gated on top of the
	// per-document ownership checks in the store.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireAdmin)

		pr.Put("/admin/{id}/accept", h.HandleAdminAccept)
		pr.Put("/admin/{id}/cancel", h.HandleAdminCancel)
	})

	return r
}
