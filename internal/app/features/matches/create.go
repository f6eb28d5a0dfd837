// internal/app/features/matches/create.go
package matches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	matchstore "github.com/oportuna/oportuna/internal/app/store/matches"
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/oportuna/oportuna/internal/app/system/txn"
	"github.com/oportuna/oportuna/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleCreate pairs a user with a business opportunity. On success the
// match, its notification, and the back-references on the user and the
// opportunity's admin are written in one logical transaction.
//
// Route: POST /match
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller := auth.CurrentUser(r)
	if caller.IsAdmin() {
		httpjson.Forbidden(w, "admins cannot be matched with opportunities")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return
	}
	businessID, err := primitive.ObjectIDFromHex(req.BusinessID)
	if err != nil {
		httpjson.BadRequest(w, "invalid opportunity id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("load match user failed", zap.Error(err), zap.String("user_id", req.UserID))
		httpjson.Internal(w, "could not create match")
		return
	}
	if user.IsAdmin() {
		httpjson.Forbidden(w, "admins cannot be matched with opportunities")
		return
	}

	opp, err := h.Opps.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "opportunity not found")
			return
		}
		h.Log.Error("load match opportunity failed", zap.Error(err), zap.String("business_id", req.BusinessID))
		httpjson.Internal(w, "could not create match")
		return
	}

	// Cheap pre-check; the unique index backstops the race.
	exists, err := h.Matches.ExistsByPair(ctx, user.ID, opp.ID)
	if err != nil {
		h.Log.Error("match pre-check failed", zap.Error(err))
		httpjson.Internal(w, "could not create match")
		return
	}
	if exists {
		httpjson.Conflict(w, "a match already exists for this user and opportunity")
		return
	}

	if user.ClientType != opp.Industry {
		httpjson.IncompatibleMatch(w, "user client type does not match the opportunity industry")
		return
	}

	var created models.Match
	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		created, err = h.Matches.Create(ctx, models.Match{
			User: models.MatchUserSide{
				UserID:     user.ID,
				UserName:   user.Name,
				ClientType: user.ClientType,
			},
			Business: models.MatchBusinessSide{
				BusinessID:   opp.ID,
				BusinessName: opp.Title,
				BusinessType: opp.Industry,
			},
		})
		if err != nil {
			return err
		}

		if err := h.Users.AppendMatch(ctx, user.ID, created.ID); err != nil {
			return fmt.Errorf("append user match ref: %w", err)
		}
		if err := h.Users.AppendMatch(ctx, opp.CreatedBy.UserID, created.ID); err != nil {
			return fmt.Errorf("append admin match ref: %w", err)
		}

		notif, err := h.Notifs.Create(ctx, models.Notification{
			UserID:     user.ID,
			AdminID:    opp.CreatedBy.UserID,
			BusinessID: opp.ID,
			UserMessages: models.UserMessages{
				User:  fmt.Sprintf("You have been matched with %s.", opp.Title),
				Admin: fmt.Sprintf("%s has been matched with your opportunity %s.", user.Name, opp.Title),
			},
		})
		if err != nil {
			return fmt.Errorf("create notification: %w", err)
		}

		if err := h.Users.AppendNotification(ctx, user.ID, models.NotificationRef{
			NotificationID: notif.ID,
			Status:         models.ResponsePending,
		}); err != nil {
			return fmt.Errorf("append notification ref: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, matchstore.ErrDuplicateMatch) {
			httpjson.Conflict(w, "a match already exists for this user and opportunity")
			return
		}
		h.Log.Error("create match failed", zap.Error(err),
			zap.String("user_id", req.UserID), zap.String("business_id", req.BusinessID))
		httpjson.Internal(w, "could not create match")
		return
	}

	httpjson.Write(w, http.StatusOK, matchResponse{
		Success: true,
		Message: "match created",
		Match:   &created,
	})
}
