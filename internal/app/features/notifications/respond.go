// internal/app/features/notifications/respond.go
package notifications

import (
	"context"
	"errors"
	"net/http"

	notifstore "github.com/oportuna/oportuna/internal/app/store/notifications"
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// transition is a store method acting on one notification for one
// actor; all four accept/cancel endpoints share the same plumbing.
type transition func(ctx context.Context, id, actorID primitive.ObjectID) (*models.Notification, error)

// HandleUserAccept records the user's acceptance.
//
// Route: PUT /notifications/user/{id}/accept
func (h *Handler) HandleUserAccept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Notifs.AcceptByUser, "notification accepted")
}

// HandleUserCancel cancels the agreement from the user side.
//
// Route: PUT /notifications/user/{id}/cancel
func (h *Handler) HandleUserCancel(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Notifs.CancelByUser, "notification cancelled")
}

// HandleAdminAccept records the admin's acceptance.
//
// Route: PUT /notifications/admin/{id}/accept
func (h *Handler) HandleAdminAccept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Notifs.AcceptByAdmin, "notification accepted")
}

// HandleAdminCancel cancels the agreement from the admin side.
//
// Route: PUT /notifications/admin/{id}/cancel
func (h *Handler) HandleAdminCancel(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Notifs.CancelByAdmin, "notification cancelled")
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, fn transition, okMessage string) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.BadRequest(w, "invalid notification id")
		return
	}

	caller := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := fn(ctx, id, caller.ID)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.NotFound(w, "notification not found")
		case errors.Is(err, notifstore.ErrNotOwner):
			httpjson.Forbidden(w, "notification does not belong to this account")
		case errors.Is(err, models.ErrAlreadyAccepted), errors.Is(err, models.ErrNotificationClosed):
			httpjson.InvalidState(w, err.Error())
		case errors.Is(err, notifstore.ErrConflict):
			httpjson.Conflict(w, "notification changed, retry the request")
		default:
			h.Log.Error("notification transition failed", zap.Error(err),
				zap.String("notification_id", idHex), zap.String("actor_id", caller.ID.Hex()))
			httpjson.Internal(w, "could not update notification")
		}
		return
	}

	// Mirror the committed transition onto the match. Best effort; the
	// notification remains the source of truth.
	h.Bridge.Apply(ctx, n)

	httpjson.OK(w, okMessage)
}
