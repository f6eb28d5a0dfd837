// internal/app/system/auth/manager.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	tokenstore "github.com/oportuna/oportuna/internal/app/store/tokens"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Claims is the token payload: the user's display name and role on top
// of the registered set (sub = user id hex, jti = revocation handle).
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Manager mints and verifies HMAC-signed bearer tokens and tracks
// logout via the revoked-token store.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	revoked *tokenstore.Store
	log     *zap.Logger
}

func NewManager(secret string, ttl time.Duration, revoked *tokenstore.Store, log *zap.Logger) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, revoked: revoked, log: log}
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a token for u and returns the signed string along with
// its claims, so callers can report the expiry to the client.
func (m *Manager) Issue(u *models.User) (string, *Claims, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify parses and validates raw, then checks it has not been revoked.
func (m *Manager) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke invalidates the token for the remainder of its lifetime.
// Revoking an already revoked token is not an error here; logout is
// idempotent from the client's point of view.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	err := m.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	if errors.Is(err, tokenstore.ErrAlreadyRevoked) {
		m.log.Debug("token already revoked", zap.String("jti", claims.ID))
		return nil
	}
	return err
}
