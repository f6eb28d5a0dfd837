// internal/app/features/opportunities/list.go
package opportunities

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

// ServeList returns all opportunities ordered by title.
//
// Route: GET /opportunities
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opps, err := h.Opps.List(ctx)
	if err != nil {
		h.Log.Error("list opportunities failed", zap.Error(err))
		httpjson.Internal(w, "could not list opportunities")
		return
	}

	httpjson.Write(w, http.StatusOK, listResponse{
		Success:       true,
		Message:       "opportunities retrieved",
		Opportunities: opps,
	})
}

// ServeView returns one opportunity.
//
// Route: GET /opportunities/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.BadRequest(w, "invalid opportunity id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opp, err := h.Opps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "opportunity not found")
			return
		}
		h.Log.Error("load opportunity failed", zap.Error(err), zap.String("opportunity_id", idHex))
		httpjson.Internal(w, "could not load opportunity")
		return
	}

	httpjson.Write(w, http.StatusOK, opportunityResponse{
		Success:     true,
		Message:     "opportunity retrieved",
		Opportunity: opp,
	})
}

// ServeIndustries returns the industry taxonomy.
//
// Route: GET /opportunities/industries
func (h *Handler) ServeIndustries(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, industriesResponse{
		Success:    true,
		Message:    "industries retrieved",
		Industries: h.Industries.List(),
	})
}
