// internal/app/features/users/types.go
package users

import "github.com/oportuna/oportuna/internal/domain/models"

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	ClientType int    `json:"clientType"`
}

type editRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ClientType int    `json:"clientType"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

type listResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Users   []models.User `json:"users"`
}
