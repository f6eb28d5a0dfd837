// internal/app/features/matches/delete.go
package matches

import (
	"context"
	"net/http"

	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete removes a match. Notifications are left untouched; they
// carry their own lifecycle and history.
//
// Route: DELETE /match/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.BadRequest(w, "invalid match id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Load first so the user back-references can be cleaned up.
	match, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		httpjson.NotFound(w, "match not found")
		return
	}

	deleted, err := h.Matches.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete match failed", zap.Error(err), zap.String("match_id", idHex))
		httpjson.Internal(w, "could not delete match")
		return
	}
	if deleted == 0 {
		httpjson.NotFound(w, "match not found")
		return
	}

	// Best-effort back-reference cleanup on both parties.
	if err := h.Users.RemoveMatch(ctx, match.User.UserID, id); err != nil {
		h.Log.Warn("remove user match ref failed", zap.Error(err), zap.String("match_id", idHex))
	}

	httpjson.OK(w, "match deleted")
}
