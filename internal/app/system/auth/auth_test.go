package auth_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	tokenstore "github.com/oportuna/oportuna/internal/app/store/tokens"
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/oportuna/oportuna/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSignedIn(t *testing.T) {
	h := auth.RequireSignedIn(okHandler())

	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/match"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	req := testutil.WithSubject(testutil.NewRequest(http.MethodGet, "/match"), testutil.UserSubject())
	h.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestRequireAdmin(t *testing.T) {
	h := auth.RequireAdmin(okHandler())

	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/users"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	req := testutil.WithSubject(testutil.NewRequest(http.MethodGet, "/users"), testutil.UserSubject())
	h.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	req = testutil.WithSubject(testutil.NewRequest(http.MethodGet, "/users"), testutil.AdminSubject())
	h.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
}

func newManager(t *testing.T) *auth.Manager {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return auth.NewManager("test-secret", time.Hour, tokenstore.New(db), zap.NewNop())
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := &models.User{ID: primitive.NewObjectID(), Name: "Ana", Role: models.RoleUser}
	token, claims, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if claims.Subject != user.ID.Hex() {
		t.Errorf("subject: got %q, want %q", claims.Subject, user.ID.Hex())
	}

	got, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got.Name != "Ana" || got.Role != models.RoleUser {
		t.Errorf("claims: got name=%q role=%q", got.Name, got.Role)
	}
}

func TestManager_VerifyRejectsTampered(t *testing.T) {
	m := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := &models.User{ID: primitive.NewObjectID(), Name: "Ana", Role: models.RoleUser}
	token, _, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Verify(ctx, token+"x"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("tampered token: got %v, want ErrInvalidToken", err)
	}
}

func TestManager_RevokeBlocksVerify(t *testing.T) {
	m := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := &models.User{ID: primitive.NewObjectID(), Name: "Ana", Role: models.RoleUser}
	token, claims, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if err := m.Revoke(ctx, claims); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := m.Verify(ctx, token); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Errorf("revoked token: got %v, want ErrTokenRevoked", err)
	}

	// Logout is idempotent.
	if err := m.Revoke(ctx, claims); err != nil {
		t.Errorf("second Revoke: got %v, want nil", err)
	}
}

func TestAuthenticate_HeaderHandling(t *testing.T) {
	m := newManager(t)

	var seen *auth.Subject
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	// No header: anonymous pass-through.
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)
	if seen != nil {
		t.Errorf("anonymous request: got subject %+v, want nil", seen)
	}

	// Non-bearer header: rejected.
	rec = testutil.NewRecorder()
	req := testutil.NewRequest(http.MethodGet, "/")
	req.Header.Set("Authorization", "Basic abc")
	h.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)

	// Valid bearer token: subject resolved.
	user := &models.User{ID: primitive.NewObjectID(), Name: "Ana", Role: models.RoleAdmin}
	token, _, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	rec = testutil.NewRecorder()
	req = testutil.NewRequest(http.MethodGet, "/")
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	if seen == nil || seen.ID != user.ID || !seen.IsAdmin() {
		t.Errorf("authenticated request: got subject %+v", seen)
	}
}
