// internal/app/system/auth/auth.go

// Package auth carries the signed-in subject through the request
// context and provides the bearer-token middleware. Tokens are issued
// and verified by Manager in this package; handlers only ever see the
// Subject.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/oportuna/oportuna/internal/app/system/httpjson"
	"github.com/oportuna/oportuna/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey int

const subjectKey ctxKey = iota

// Subject identifies the authenticated caller.
type Subject struct {
	ID   primitive.ObjectID
	Name string
	Role string
}

// IsAdmin reports whether the subject holds the admin role.
func (s *Subject) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// CurrentUser returns the authenticated subject, or nil for anonymous
// requests.
func CurrentUser(r *http.Request) *Subject {
	s, _ := r.Context().Value(subjectKey).(*Subject)
	return s
}

// WithTestUser returns a copy of r carrying s as the signed-in subject.
// Used by tests that exercise handlers without minting tokens.
func WithTestUser(r *http.Request, s *Subject) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), subjectKey, s))
}

// Authenticate resolves the Authorization header, if present, into a
// Subject. A missing header passes the request through anonymously; a
// header that is present but unverifiable is rejected with 401 so a
// caller never proceeds on a credential they believe to be valid.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			httpjson.Unauthorized(w, "malformed authorization header")
			return
		}

		claims, err := m.Verify(r.Context(), raw)
		if err != nil {
			httpjson.Unauthorized(w, "invalid or expired token")
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			httpjson.Unauthorized(w, "invalid or expired token")
			return
		}

		subj := &Subject{ID: id, Name: claims.Name, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey, subj)))
	})
}

// RequireSignedIn rejects anonymous requests with 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			httpjson.Unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admin
// subjects with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subj := CurrentUser(r)
		if subj == nil {
			httpjson.Unauthorized(w, "authentication required")
			return
		}
		if !subj.IsAdmin() {
			httpjson.Forbidden(w, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
