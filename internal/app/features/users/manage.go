// internal/app/features/users/manage.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/oportuna/oportuna/internal/app/store/users"
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList returns all users. Admin only via routing.
//
// Route: GET /users
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		httpjson.Internal(w, "could not list users")
		return
	}

	httpjson.Write(w, http.StatusOK, listResponse{
		Success: true,
		Message: "users retrieved",
		Users:   users,
	})
}

// ServeView returns one user's profile. Admins may view anyone; a
// regular user only themselves.
//
// Route: GET /users/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("load user failed", zap.Error(err), zap.String("user_id", id.Hex()))
		httpjson.Internal(w, "could not load user")
		return
	}

	httpjson.Write(w, http.StatusOK, userResponse{
		Success: true,
		Message: "user retrieved",
		User:    user,
	})
}

// HandleEdit updates a user's profile fields.
//
// Route: PUT /users/{id}
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		httpjson.BadRequest(w, "name and email are required")
		return
	}
	if req.ClientType != 0 && !h.Industries.IsValid(req.ClientType) {
		httpjson.BadRequest(w, "unknown client type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.Update(ctx, id, userstore.Update{
		Name:       req.Name,
		Email:      req.Email,
		ClientType: req.ClientType,
	})
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.NotFound(w, "user not found")
		case errors.Is(err, userstore.ErrDuplicateEmail):
			httpjson.Conflict(w, "a user with this email already exists")
		default:
			h.Log.Error("update user failed", zap.Error(err), zap.String("user_id", id.Hex()))
			httpjson.Internal(w, "could not update user")
		}
		return
	}

	httpjson.OK(w, "user updated")
}

// HandleDelete removes an account. Matches and notifications referring
// to it are kept; their views tolerate the dangling reference.
//
// Route: DELETE /users/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete user failed", zap.Error(err), zap.String("user_id", id.Hex()))
		httpjson.Internal(w, "could not delete user")
		return
	}
	if deleted == 0 {
		httpjson.NotFound(w, "user not found")
		return
	}

	httpjson.OK(w, "user deleted")
}

// resolveTarget parses the path id and enforces admin-or-self access.
// It writes the error response itself when access is denied.
func (h *Handler) resolveTarget(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return primitive.NilObjectID, false
	}

	caller := auth.CurrentUser(r)
	if !caller.IsAdmin() && caller.ID != id {
		httpjson.Forbidden(w, "account belongs to another user")
		return primitive.NilObjectID, false
	}
	return id, true
}
