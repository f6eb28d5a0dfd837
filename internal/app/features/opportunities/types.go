// internal/app/features/opportunities/types.go
package opportunities

import (
	"github.com/oportuna/oportuna/internal/app/system/industries"
	"github.com/oportuna/oportuna/internal/domain/models"
)

type upsertRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Industry    int    `json:"industry"`
}

type opportunityResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Opportunity *models.Opportunity `json:"opportunity,omitempty"`
}

type listResponse struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message"`
	Opportunities []models.Opportunity `json:"opportunities"`
}

type industriesResponse struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Industries []industries.Industry `json:"industries"`
}
