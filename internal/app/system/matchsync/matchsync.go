// internal/app/system/matchsync/matchsync.go

// Package matchsync propagates notification state changes onto the
// paired match document. The notification is the source of truth for
// the agreement; the match carries denormalized per-party responses so
// match listings never need a second lookup.
//
// Propagation is best effort. A failed write leaves the match stale
// until the next transition touches it, which is acceptable because
// every decision is validated against the notification, never the
// match. Failures are logged loudly so drift is visible.
package matchsync

import (
	"context"

	matchstore "github.com/oportuna/oportuna/internal/app/store/matches"
	"github.com/oportuna/oportuna/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Bridge struct {
	matches *matchstore.Store
	log     *zap.Logger
}

func New(matches *matchstore.Store, log *zap.Logger) *Bridge {
	return &Bridge{matches: matches, log: log}
}

// Apply mirrors a post-transition notification onto its match. It
// inspects the notification state rather than the transition that
// produced it, so callers pass whatever the store returned.
func (b *Bridge) Apply(ctx context.Context, n *models.Notification) {
	switch n.Status {
	case models.ResponseCancelled:
		b.write(ctx, n, "cancel",
			b.matches.SetBothResponses, models.ResponseCancelled)
	case models.ResponseAccepted:
		// Both flags are set when the status is accepted; one write per
		// side keeps the helpers single-purpose.
		b.write(ctx, n, "accept user side",
			b.matches.SetUserResponse, models.ResponseAccepted)
		b.write(ctx, n, "accept admin side",
			b.matches.SetBusinessResponse, models.ResponseAccepted)
	default:
		// A lone accept flag while still pending is mirrored for the
		// side that moved.
		if n.AcceptedByUser {
			b.write(ctx, n, "accept user side",
				b.matches.SetUserResponse, models.ResponseAccepted)
		}
		if n.AcceptedByAdmin {
			b.write(ctx, n, "accept admin side",
				b.matches.SetBusinessResponse, models.ResponseAccepted)
		}
	}
}

type responseWrite func(ctx context.Context, userID, businessID primitive.ObjectID, response string) error

func (b *Bridge) write(ctx context.Context, n *models.Notification, op string, fn responseWrite, response string) {
	if err := fn(ctx, n.UserID, n.BusinessID, response); err != nil {
		b.log.Error("match response sync failed",
			zap.String("op", op),
			zap.String("notification_id", n.ID.Hex()),
			zap.String("user_id", n.UserID.Hex()),
			zap.String("business_id", n.BusinessID.Hex()),
			zap.Error(err))
	}
}
