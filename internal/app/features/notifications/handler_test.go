package notifications_test

import (
	"net/http"
	"testing"

	"github.com/oportuna/oportuna/internal/app/features/notifications"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/oportuna/oportuna/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func put(t *testing.T, h *notifications.Handler, fn func(http.ResponseWriter, *http.Request), id string, as models.User) *testutil.ResponseRecorder {
	t.Helper()
	req := testutil.NewRequest(http.MethodPut, "/notifications/x/"+id)
	req = testutil.WithUser(req, as)
	req = testutil.WithChiURLParam(req, "id", id)
	rec := testutil.NewRecorder()
	fn(rec, req)
	return rec
}

func TestServeListForUser_Projection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notifications.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 3)
	opp := fixtures.CreateOpportunity(ctx, "Opportunity", 3, admin)
	fixtures.CreateNotification(ctx, user, admin, opp)

	get := func(pathUser string, as models.User) *testutil.ResponseRecorder {
		req := testutil.NewRequest(http.MethodGet, "/notifications/"+pathUser)
		req = testutil.WithUser(req, as)
		req = testutil.WithChiURLParam(req, "userId", pathUser)
		rec := testutil.NewRecorder()
		h.ServeListForUser(rec, req)
		return rec
	}

	// The user sees their side of the message.
	rec := get(user.ID.Hex(), user)
	rec.AssertStatus(t, http.StatusOK)
	var resp struct {
		Notifications []struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"notifications"`
	}
	rec.DecodeJSON(t, &resp)
	if len(resp.Notifications) != 1 {
		t.Fatalf("notifications: got %d, want 1", len(resp.Notifications))
	}
	if resp.Notifications[0].Message == "" || resp.Notifications[0].Status != models.ResponsePending {
		t.Errorf("user view: %+v", resp.Notifications[0])
	}
	userMessage := resp.Notifications[0].Message

	// The admin sees the admin-side text.
	rec = get(admin.ID.Hex(), admin)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &resp)
	if len(resp.Notifications) != 1 {
		t.Fatalf("admin notifications: got %d, want 1", len(resp.Notifications))
	}
	if resp.Notifications[0].Message == userMessage {
		t.Error("admin should not see the user-side message text")
	}

	// A user with no notifications yields 404.
	lonely := fixtures.CreateUser(ctx, "Zoe", "zoe@example.com", 1)
	rec = get(lonely.ID.Hex(), lonely)
	rec.AssertStatus(t, http.StatusNotFound)

	// Unknown path user yields 404, malformed id 400.
	rec = get(primitive.NewObjectID().Hex(), user)
	rec.AssertStatus(t, http.StatusNotFound)
	rec = get("nope", user)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestRespond_FullLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notifications.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 3)
	opp := fixtures.CreateOpportunity(ctx, "Opportunity", 3, admin)
	match := fixtures.CreateMatch(ctx, user, opp)
	notif := fixtures.CreateNotification(ctx, user, admin, opp)
	id := notif.ID.Hex()

	// User accepts, then admin accepts: notification and match close
	// as accepted.
	put(t, h, h.HandleUserAccept, id, user).AssertStatus(t, http.StatusOK)
	put(t, h, h.HandleAdminAccept, id, admin).AssertStatus(t, http.StatusOK)

	var n models.Notification
	if err := db.Collection("notifications").FindOne(ctx, bson.M{"_id": notif.ID}).Decode(&n); err != nil {
		t.Fatalf("reload notification failed: %v", err)
	}
	if n.Status != models.ResponseAccepted {
		t.Errorf("notification status: got %q, want accepted", n.Status)
	}

	var m models.Match
	if err := db.Collection("matches").FindOne(ctx, bson.M{"_id": match.ID}).Decode(&m); err != nil {
		t.Fatalf("reload match failed: %v", err)
	}
	if m.User.Response != models.ResponseAccepted || m.Business.Response != models.ResponseAccepted {
		t.Errorf("match responses: user=%q business=%q", m.User.Response, m.Business.Response)
	}

	// Acting on the closed notification is an invalid state.
	put(t, h, h.HandleUserCancel, id, user).AssertStatus(t, http.StatusBadRequest)
}

func TestRespond_CancelPropagatesBothSides(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notifications.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 3)
	opp := fixtures.CreateOpportunity(ctx, "Opportunity", 3, admin)
	match := fixtures.CreateMatch(ctx, user, opp)
	notif := fixtures.CreateNotification(ctx, user, admin, opp)

	put(t, h, h.HandleUserCancel, notif.ID.Hex(), user).AssertStatus(t, http.StatusOK)

	var m models.Match
	if err := db.Collection("matches").FindOne(ctx, bson.M{"_id": match.ID}).Decode(&m); err != nil {
		t.Fatalf("reload match failed: %v", err)
	}
	if m.User.Response != models.ResponseCancelled || m.Business.Response != models.ResponseCancelled {
		t.Errorf("match responses after cancel: user=%q business=%q", m.User.Response, m.Business.Response)
	}
}

func TestRespond_OwnershipAndStateErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notifications.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 3)
	stranger := fixtures.CreateUser(ctx, "Zoe", "zoe@example.com", 1)
	opp := fixtures.CreateOpportunity(ctx, "Opportunity", 3, admin)
	notif := fixtures.CreateNotification(ctx, user, admin, opp)
	id := notif.ID.Hex()

	// A stranger gets 403 on the user-side endpoints.
	put(t, h, h.HandleUserAccept, id, stranger).AssertStatus(t, http.StatusForbidden)
	put(t, h, h.HandleUserCancel, id, stranger).AssertStatus(t, http.StatusForbidden)

	// A different admin gets 403 on the admin side.
	otherAdmin := fixtures.CreateAdmin(ctx, "Leo", "leo@example.com")
	put(t, h, h.HandleAdminAccept, id, otherAdmin).AssertStatus(t, http.StatusForbidden)

	// Missing and malformed ids.
	put(t, h, h.HandleUserAccept, primitive.NewObjectID().Hex(), user).AssertStatus(t, http.StatusNotFound)
	put(t, h, h.HandleUserAccept, "nope", user).AssertStatus(t, http.StatusBadRequest)

	// Accept then cancel by the same party is an invalid state.
	put(t, h, h.HandleUserAccept, id, user).AssertStatus(t, http.StatusOK)
	put(t, h, h.HandleUserCancel, id, user).AssertStatus(t, http.StatusBadRequest)
	// Repeat accept too.
	put(t, h, h.HandleUserAccept, id, user).AssertStatus(t, http.StatusBadRequest)

	// The admin can still cancel the pending agreement.
	put(t, h, h.HandleAdminCancel, id, admin).AssertStatus(t, http.StatusOK)
}
