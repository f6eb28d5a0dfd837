package authn_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/oportuna/oportuna/internal/app/features/authn"
	tokenstore "github.com/oportuna/oportuna/internal/app/store/tokens"
	"github.com/oportuna/oportuna/internal/app/system/auth"
	"github.com/oportuna/oportuna/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*authn.Handler, *auth.Manager, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mgr := auth.NewManager("test-secret", time.Hour, tokenstore.New(db), zap.NewNop())
	return authn.NewHandler(db, mgr, zap.NewNop()), mgr, testutil.NewFixtures(t, db)
}

func TestHandleLogin(t *testing.T) {
	h, mgr, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 1)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "password123",
	})
	rec := testutil.NewRecorder()
	h.HandleLogin(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := mgr.Verify(ctx, resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != user.ID.Hex() {
		t.Errorf("token subject: got %q, want %q", claims.Subject, user.ID.Hex())
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	h, _, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Ana", "ana@example.com", 1)

	post := func(email, password string) *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email": email, "password": password,
		})
		rec := testutil.NewRecorder()
		h.HandleLogin(rec, req)
		return rec
	}

	post("ana@example.com", "wrong").AssertStatus(t, http.StatusUnauthorized)
	post("nobody@example.com", "password123").AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleLogin_RateLimited(t *testing.T) {
	h, _, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Ana", "ana@example.com", 1)

	// Five failed attempts exhaust the per-account window; the sixth is
	// rejected before credentials are even checked.
	for i := 0; i < 5; i++ {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email": "ana@example.com", "password": "wrong",
		})
		rec := testutil.NewRecorder()
		h.HandleLogin(rec, req)
		rec.AssertStatus(t, http.StatusUnauthorized)
	}

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "ana@example.com", "password": "password123",
	})
	rec := testutil.NewRecorder()
	h.HandleLogin(rec, req)
	rec.AssertStatus(t, http.StatusTooManyRequests)
}

func TestHandleRenew(t *testing.T) {
	h, mgr, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 1)

	req := testutil.NewRequest(http.MethodGet, "/auth/renew")
	req = testutil.WithUser(req, user)
	rec := testutil.NewRecorder()
	h.HandleRenew(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Token string `json:"token"`
	}
	rec.DecodeJSON(t, &resp)
	if _, err := mgr.Verify(ctx, resp.Token); err != nil {
		t.Errorf("renewed token does not verify: %v", err)
	}

	// A deleted account cannot renew.
	if _, err := fixtures.DB().Collection("users").DeleteOne(ctx, bson.M{"_id": user.ID}); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	rec = testutil.NewRecorder()
	h.HandleRenew(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleLogout_RevokesToken(t *testing.T) {
	h, mgr, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	dbUser := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 1)
	token, _, err := mgr.Issue(&dbUser)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := testutil.NewRequest(http.MethodPost, "/auth/logout")
	req = testutil.WithUser(req, dbUser)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := testutil.NewRecorder()
	h.HandleLogout(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	if _, err := mgr.Verify(ctx, token); err == nil {
		t.Error("token still verifies after logout")
	}

	// Logging out without a token is unauthorized.
	req = testutil.NewRequest(http.MethodPost, "/auth/logout")
	req = testutil.WithUser(req, dbUser)
	rec = testutil.NewRecorder()
	h.HandleLogout(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
}
