// internal/app/features/users/register.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	userstore "github.com/oportuna/oportuna/internal/app/store/users"
	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/app/system/normalize"
	"github.com/oportuna/oportuna/internal/app/system/timeouts"
	"github.com/oportuna/oportuna/internal/domain/models"
	"go.uber.org/zap"
)

const minPasswordLength = 8

// HandleRegister creates a new account. Regular users must name a
// client type from the industry taxonomy; admins must not carry one.
//
// Route: POST /users
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		httpjson.BadRequest(w, "name is required")
		return
	}
	if _, err := mail.ParseAddress(normalize.Email(req.Email)); err != nil {
		httpjson.BadRequest(w, "invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		httpjson.BadRequest(w, "password must be at least 8 characters")
		return
	}

	role := normalize.Role(req.Role)
	switch role {
	case models.RoleAdmin:
		if req.ClientType != 0 {
			httpjson.BadRequest(w, "admins must not carry a client type")
			return
		}
	case models.RoleUser:
		if !h.Industries.IsValid(req.ClientType) {
			httpjson.BadRequest(w, "unknown client type")
			return
		}
	default:
		httpjson.BadRequest(w, `role must be "admin" or "user"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       role,
		ClientType: req.ClientType,
	}, h.BcryptCost)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Conflict(w, "a user with this email already exists")
			return
		}
		h.Log.Error("register user failed", zap.Error(err))
		httpjson.Internal(w, "could not create user")
		return
	}

	httpjson.Write(w, http.StatusOK, userResponse{
		Success: true,
		Message: "user registered",
		User:    &created,
	})
}
