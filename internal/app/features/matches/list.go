// internal/app/features/matches/list.go
package matches

import (
	"context"
	"net/http"

	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList returns all matches, newest first.
//
// Route: GET /match
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matches, err := h.Matches.List(ctx)
	if err != nil {
		h.Log.Error("list matches failed", zap.Error(err))
		httpjson.Internal(w, "could not list matches")
		return
	}

	httpjson.Write(w, http.StatusOK, listResponse{
		Success: true,
		Message: "matches retrieved",
		Matches: matches,
	})
}
