// internal/app/features/matches/view.go
package matches

import (
	"context"
	"errors"
	"net/http"

	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeView returns one match with its opportunity resolved eagerly.
// The opportunity may be absent when it was deleted after matching; the
// match itself is still returned.
//
// Route: GET /match/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.BadRequest(w, "invalid match id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	match, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "match not found")
			return
		}
		h.Log.Error("load match failed", zap.Error(err), zap.String("match_id", idHex))
		httpjson.Internal(w, "could not load match")
		return
	}

	resp := viewResponse{
		Success: true,
		Message: "match retrieved",
		Match:   match,
	}

	opp, err := h.Opps.GetByID(ctx, match.Business.BusinessID)
	switch {
	case err == nil:
		resp.Opportunity = opp
	case errors.Is(err, mongo.ErrNoDocuments):
		// Opportunity deleted since matching; the match stands alone.
	default:
		h.Log.Error("resolve match opportunity failed", zap.Error(err), zap.String("match_id", idHex))
		httpjson.Internal(w, "could not load match")
		return
	}

	httpjson.Write(w, http.StatusOK, resp)
}
