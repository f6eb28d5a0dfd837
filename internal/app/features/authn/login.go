// internal/app/features/authn/login.go
package authn

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
	"github.com/oportuna/oportuna/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user,omitempty"`
}

// HandleLogin verifies a credential pair and issues a bearer token.
//
// Route: POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	if ok, reason := h.Limits.Check(r, req.Email); !ok {
		httpjson.TooManyRequests(w, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrBadCredentials) {
			httpjson.Unauthorized(w, "invalid email or password")
			return
		}
		h.Log.Error("login failed", zap.Error(err))
		httpjson.Internal(w, "could not sign in")
		return
	}

	h.Limits.ResetEmail(req.Email)

	token, _, err := h.Tokens.Issue(user)
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.Internal(w, "could not sign in")
		return
	}

	httpjson.Write(w, http.StatusOK, tokenResponse{
		Success: true,
		Message: "signed in",
		Token:   token,
		User:    user,
	})
}

// HandleRenew issues a fresh token for the signed-in caller. The old
// token stays valid until it expires or is revoked.
//
// Route: GET /auth/renew
func (h *Handler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	caller := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// Reload so the claims reflect current name and role.
	user, err := h.Users.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Unauthorized(w, "account no longer exists")
			return
		}
		h.Log.Error("renew lookup failed", zap.Error(err), zap.String("user_id", caller.ID.Hex()))
		httpjson.Internal(w, "could not renew token")
		return
	}

	token, _, err := h.Tokens.Issue(user)
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.Internal(w, "could not renew token")
		return
	}

	httpjson.Write(w, http.StatusOK, tokenResponse{
		Success: true,
		Message: "token renewed",
		Token:   token,
	})
}

// HandleLogout revokes the presented token for the rest of its
// lifetime.
//
// Route: POST /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" {
		httpjson.Unauthorized(w, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	claims, err := h.Tokens.Verify(ctx, raw)
	if err != nil {
		httpjson.Unauthorized(w, "invalid or expired token")
		return
	}

	if err := h.Tokens.Revoke(ctx, claims); err != nil {
		h.Log.Error("revoke token failed", zap.Error(err), zap.String("jti", claims.ID))
		httpjson.Internal(w, "could not sign out")
		return
	}

	httpjson.OK(w, "signed out")
}
