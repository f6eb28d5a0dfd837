// internal/app/features/opportunities/handler.go
package opportunities

import (
	oppstore "github.com/oportuna/oportuna/internal/app/store/opportunities"
	"github.com/oportuna/oportuna/internal/app/system/industries"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Opportunities.
type Handler struct {
	Opps       *oppstore.Store
	Industries *industries.Registry
	Sanitizer  *bluemonday.Policy
	Log        *zap.Logger
}

// NewHandler constructs an Opportunities handler bound to a DB and
// logger. Descriptions are admin-supplied free text, so they pass
// through a strict HTML sanitizer before storage.
func NewHandler(db *mongo.Database, reg *industries.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Opps:       oppstore.New(db),
		Industries: reg,
		Sanitizer:  bluemonday.StrictPolicy(),
		Log:        logger,
	}
}
