// internal/app/features/matches/types.go
package matches

import "github.com/oportuna/oportuna/internal/domain/models"

type createRequest struct {
	UserID     string `json:"userId"`
	BusinessID string `json:"businessId"`
}

type matchResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Match   *models.Match `json:"match,omitempty"`
}

type listResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Matches []models.Match `json:"matches"`
}

type viewResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Match       *models.Match       `json:"match"`
	Opportunity *models.Opportunity `json:"opportunity,omitempty"`
}
