// internal/app/features/notifications/list.go
package notifications

import (
	"context"
	"errors"
	"net/http"

	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// notificationView is one notification projected to the side the path
// user sits on. Only that side's message text is exposed.
type notificationView struct {
	ID              primitive.ObjectID `json:"id"`
	BusinessID      primitive.ObjectID `json:"businessId"`
	Status          string             `json:"status"`
	AcceptedByUser  bool               `json:"acceptedByUser"`
	AcceptedByAdmin bool               `json:"acceptedByAdmin"`
	Message         string             `json:"message"`
}

type listResponse struct {
	Success       bool               `json:"success"`
	Message       string             `json:"message"`
	Notifications []notificationView `json:"notifications"`
}

// ServeListForUser returns the notifications addressed to the path
// user, projected to their side of the conversation. Admins get the
// notifications where they are the admin party.
//
// Route: GET /notifications/{userId}
func (h *Handler) ServeListForUser(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "userId")
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("load notification user failed", zap.Error(err), zap.String("user_id", idHex))
		httpjson.Internal(w, "could not list notifications")
		return
	}

	var ns []models.Notification
	if user.IsAdmin() {
		ns, err = h.Notifs.ListForAdmin(ctx, user.ID)
	} else {
		ns, err = h.Notifs.ListForUser(ctx, user.ID)
	}
	if err != nil {
		h.Log.Error("list notifications failed", zap.Error(err), zap.String("user_id", idHex))
		httpjson.Internal(w, "could not list notifications")
		return
	}
	if len(ns) == 0 {
		httpjson.NotFound(w, "no notifications for this user")
		return
	}

	views := make([]notificationView, 0, len(ns))
	for _, n := range ns {
		v := notificationView{
			ID:              n.ID,
			BusinessID:      n.BusinessID,
			Status:          n.Status,
			AcceptedByUser:  n.AcceptedByUser,
			AcceptedByAdmin: n.AcceptedByAdmin,
			Message:         n.UserMessages.User,
		}
		if user.IsAdmin() {
			v.Message = n.UserMessages.Admin
		}
		views = append(views, v)
	}

	httpjson.Write(w, http.StatusOK, listResponse{
		Success:       true,
		Message:       "notifications retrieved",
		Notifications: views,
	})
}
