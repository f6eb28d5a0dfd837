package opportunities_test

import (
	"net/http"
	"testing"

	"github.com/oportuna/oportuna/internal/app/features/opportunities"
	"github.com/oportuna/oportuna/internal/app/system/industries"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/oportuna/oportuna/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type upsertBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Industry    int    `json:"industry"`
}

func newHandler(t *testing.T) (*opportunities.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return opportunities.NewHandler(db, industries.Default(), zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreate(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/opportunities", upsertBody{
		Title:       "Solar Farm Partner",
		Description: `Installers wanted <script>alert("x")</script>`,
		Industry:    5,
	})
	req = testutil.WithUser(req, admin)

	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Success     bool               `json:"success"`
		Opportunity models.Opportunity `json:"opportunity"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.Opportunity.Status != models.OpportunityActive {
		t.Errorf("status: got %q, want active default", resp.Opportunity.Status)
	}
	if resp.Opportunity.CreatedBy.UserID != admin.ID {
		t.Errorf("created_by: got %v, want %v", resp.Opportunity.CreatedBy.UserID, admin.ID)
	}
	// The sanitizer strips markup from the description.
	if got := resp.Opportunity.Description; got != "Installers wanted " {
		t.Errorf("description: got %q, want sanitized text", got)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")

	post := func(body upsertBody) *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/opportunities", body)
		req = testutil.WithUser(req, admin)
		rec := testutil.NewRecorder()
		h.HandleCreate(rec, req)
		return rec
	}

	post(upsertBody{Title: "", Industry: 1}).AssertStatus(t, http.StatusBadRequest)
	post(upsertBody{Title: "X", Industry: 99}).AssertStatus(t, http.StatusBadRequest)
	post(upsertBody{Title: "X", Industry: 1, Status: "archived"}).AssertStatus(t, http.StatusBadRequest)
}

func TestHandleEdit_Ownership(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	other := fixtures.CreateAdmin(ctx, "Leo", "leo@example.com")
	opp := fixtures.CreateOpportunity(ctx, "Original", 3, owner)

	body := upsertBody{Title: "Changed", Industry: 4, Status: "inactive"}

	putReq := func(id string, as models.User) *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/opportunities/"+id, body)
		req = testutil.WithUser(req, as)
		req = testutil.WithChiURLParam(req, "id", id)
		rec := testutil.NewRecorder()
		h.HandleEdit(rec, req)
		return rec
	}

	// A foreign admin is rejected with 403, a missing id with 404.
	putReq(opp.ID.Hex(), other).AssertStatus(t, http.StatusForbidden)
	putReq(primitive.NewObjectID().Hex(), owner).AssertStatus(t, http.StatusNotFound)

	putReq(opp.ID.Hex(), owner).AssertStatus(t, http.StatusOK)
}

func TestHandleDelete_Ownership(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	other := fixtures.CreateAdmin(ctx, "Leo", "leo@example.com")
	opp := fixtures.CreateOpportunity(ctx, "To Delete", 3, owner)

	del := func(id string, as models.User) *testutil.ResponseRecorder {
		req := testutil.NewRequest(http.MethodDelete, "/opportunities/"+id)
		req = testutil.WithUser(req, as)
		req = testutil.WithChiURLParam(req, "id", id)
		rec := testutil.NewRecorder()
		h.HandleDelete(rec, req)
		return rec
	}

	del(opp.ID.Hex(), other).AssertStatus(t, http.StatusForbidden)
	del(opp.ID.Hex(), owner).AssertStatus(t, http.StatusOK)
	del(opp.ID.Hex(), owner).AssertStatus(t, http.StatusNotFound)
}

func TestServeIndustries(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/opportunities/industries")
	req = testutil.WithSubject(req, testutil.UserSubject())
	rec := testutil.NewRecorder()
	h.ServeIndustries(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Industries []industries.Industry `json:"industries"`
	}
	rec.DecodeJSON(t, &resp)
	if len(resp.Industries) != 20 {
		t.Errorf("industries: got %d, want 20", len(resp.Industries))
	}
}

func TestServeListAndView(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	opp := fixtures.CreateOpportunity(ctx, "Visible", 3, admin)
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 3)

	req := testutil.NewRequest(http.MethodGet, "/opportunities")
	req = testutil.WithUser(req, user)
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var listResp struct {
		Opportunities []models.Opportunity `json:"opportunities"`
	}
	rec.DecodeJSON(t, &listResp)
	if len(listResp.Opportunities) != 1 {
		t.Fatalf("opportunities: got %d, want 1", len(listResp.Opportunities))
	}

	req = testutil.NewRequest(http.MethodGet, "/opportunities/"+opp.ID.Hex())
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "id", opp.ID.Hex())
	rec = testutil.NewRecorder()
	h.ServeView(rec, req)
	rec.AssertStatus(t, http.StatusOK)
}
