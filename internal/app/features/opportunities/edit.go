// internal/app/features/opportunities/edit.go
package opportunities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	oppstore "github.com/oportuna/oportuna/internal/app/store/opportunities"
	"github.com/oportuna/oportuna/internal/app/system/normalize"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleEdit updates an opportunity. Only its owning admin may edit;
// other admins get 403.
//
// Route: PUT /opportunities/{id}
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.BadRequest(w, "invalid opportunity id")
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		httpjson.BadRequest(w, "title is required")
		return
	}
	if !h.Industries.IsValid(req.Industry) {
		httpjson.BadRequest(w, "unknown industry")
		return
	}
	status := normalize.Status(req.Status)
	if status != models.OpportunityActive && status != models.OpportunityInactive {
		httpjson.BadRequest(w, `status must be "active" or "inactive"`)
		return
	}

	caller := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Opps.Update(ctx, id, caller.ID, oppstore.Update{
		Title:       req.Title,
		Description: h.Sanitizer.Sanitize(req.Description),
		Status:      status,
		Industry:    req.Industry,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a foreign opportunity from a missing one.
			if _, getErr := h.Opps.GetByID(ctx, id); getErr == nil {
				httpjson.Forbidden(w, "opportunity belongs to another admin")
				return
			}
			httpjson.NotFound(w, "opportunity not found")
			return
		}
		h.Log.Error("update opportunity failed", zap.Error(err), zap.String("opportunity_id", idHex))
		httpjson.Internal(w, "could not update opportunity")
		return
	}

	httpjson.OK(w, "opportunity updated")
}

// HandleDelete removes an opportunity owned by the calling admin.
// Existing matches and notifications referencing it are kept; views
// tolerate the dangling reference.
//
// Route: DELETE /opportunities/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.BadRequest(w, "invalid opportunity id")
		return
	}

	caller := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Opps.Delete(ctx, id, caller.ID)
	if err != nil {
		h.Log.Error("delete opportunity failed", zap.Error(err), zap.String("opportunity_id", idHex))
		httpjson.Internal(w, "could not delete opportunity")
		return
	}
	if deleted == 0 {
		if _, getErr := h.Opps.GetByID(ctx, id); getErr == nil {
			httpjson.Forbidden(w, "opportunity belongs to another admin")
			return
		}
		httpjson.NotFound(w, "opportunity not found")
		return
	}

	httpjson.OK(w, "opportunity deleted")
}
