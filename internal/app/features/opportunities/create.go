// internal/app/features/opportunities/create.go
package opportunities

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/oportuna/oportuna/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate publishes a new opportunity owned by the calling admin.
//
// Route: POST /opportunities
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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
	if req.Status != "" && req.Status != models.OpportunityActive && req.Status != models.OpportunityInactive {
		httpjson.BadRequest(w, `status must be "active" or "inactive"`)
		return
	}

	caller := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Opps.Create(ctx, models.Opportunity{
		Title:       req.Title,
		Description: h.Sanitizer.Sanitize(req.Description),
		Status:      req.Status,
		Industry:    req.Industry,
		CreatedBy: models.CreatedByRef{
			UserID:   caller.ID,
			UserName: caller.Name,
		},
	})
	if err != nil {
		h.Log.Error("create opportunity failed", zap.Error(err), zap.String("admin_id", caller.ID.Hex()))
		httpjson.Internal(w, "could not create opportunity")
		return
	}

	httpjson.Write(w, http.StatusOK, opportunityResponse{
		Success:     true,
		Message:     "opportunity created",
		Opportunity: &created,
	})
}
