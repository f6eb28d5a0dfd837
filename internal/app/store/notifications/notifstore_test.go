package notifstore_test

import (
	"errors"
	"testing"

	notifstore "github.com/oportuna/oportuna/internal/app/store/notifications"
	"github.com/oportuna/oportuna/internal/domain/models"
	"github.com/oportuna/oportuna/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fixture struct {
	store *notifstore.Store
	user  models.User
	admin models.User
	notif models.Notification
}

func setup(t *testing.T) (fixture, func()) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 3)
	opp := fixtures.CreateOpportunity(ctx, "Opportunity", 3, admin)
	notif := fixtures.CreateNotification(ctx, user, admin, opp)

	return fixture{
		store: notifstore.New(db),
		user:  user,
		admin: admin,
		notif: notif,
	}, cancel
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notifstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Notification{
		UserID:     primitive.NewObjectID(),
		AdminID:    primitive.NewObjectID(),
		BusinessID: primitive.NewObjectID(),
		UserMessages: models.UserMessages{
			User:  "for the user",
			Admin: "for the admin",
		},
		// A tampered status must not survive creation.
		Status:         models.ResponseAccepted,
		AcceptedByUser: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Status != models.ResponsePending || created.AcceptedByUser || created.AcceptedByAdmin {
		t.Errorf("created notification not pending: %+v", created)
	}
}

func TestStore_Accept_BothOrders(t *testing.T) {
	t.Run("user then admin", func(t *testing.T) {
		f, cancel := setup(t)
		defer cancel()
		ctx, cancelCtx := testutil.TestContext()
		defer cancelCtx()

		n, err := f.store.AcceptByUser(ctx, f.notif.ID, f.user.ID)
		if err != nil {
			t.Fatalf("AcceptByUser failed: %v", err)
		}
		if n.Status != models.ResponsePending || !n.AcceptedByUser {
			t.Errorf("after user accept: %+v", n)
		}

		n, err = f.store.AcceptByAdmin(ctx, f.notif.ID, f.admin.ID)
		if err != nil {
			t.Fatalf("AcceptByAdmin failed: %v", err)
		}
		if n.Status != models.ResponseAccepted {
			t.Errorf("after both accepts: status %q, want accepted", n.Status)
		}
	})

	t.Run("admin then user", func(t *testing.T) {
		f, cancel := setup(t)
		defer cancel()
		ctx, cancelCtx := testutil.TestContext()
		defer cancelCtx()

		if _, err := f.store.AcceptByAdmin(ctx, f.notif.ID, f.admin.ID); err != nil {
			t.Fatalf("AcceptByAdmin failed: %v", err)
		}
		n, err := f.store.AcceptByUser(ctx, f.notif.ID, f.user.ID)
		if err != nil {
			t.Fatalf("AcceptByUser failed: %v", err)
		}
		if n.Status != models.ResponseAccepted {
			t.Errorf("after both accepts: status %q, want accepted", n.Status)
		}
	})
}

func TestStore_Accept_Repeat(t *testing.T) {
	f, cancel := setup(t)
	defer cancel()
	ctx, cancelCtx := testutil.TestContext()
	defer cancelCtx()

	if _, err := f.store.AcceptByUser(ctx, f.notif.ID, f.user.ID); err != nil {
		t.Fatalf("AcceptByUser failed: %v", err)
	}
	if _, err := f.store.AcceptByUser(ctx, f.notif.ID, f.user.ID); !errors.Is(err, models.ErrAlreadyAccepted) {
		t.Errorf("repeat accept: got %v, want ErrAlreadyAccepted", err)
	}
}

func TestStore_Cancel(t *testing.T) {
	f, cancel := setup(t)
	defer cancel()
	ctx, cancelCtx := testutil.TestContext()
	defer cancelCtx()

	n, err := f.store.CancelByAdmin(ctx, f.notif.ID, f.admin.ID)
	if err != nil {
		t.Fatalf("CancelByAdmin failed: %v", err)
	}
	if n.Status != models.ResponseCancelled {
		t.Errorf("after cancel: status %q, want cancelled", n.Status)
	}

	// Everything afterwards is rejected.
	if _, err := f.store.AcceptByUser(ctx, f.notif.ID, f.user.ID); !errors.Is(err, models.ErrNotificationClosed) {
		t.Errorf("accept after cancel: got %v, want ErrNotificationClosed", err)
	}
	if _, err := f.store.CancelByUser(ctx, f.notif.ID, f.user.ID); !errors.Is(err, models.ErrNotificationClosed) {
		t.Errorf("cancel after cancel: got %v, want ErrNotificationClosed", err)
	}
}

func TestStore_Cancel_BlockedByOwnAccept(t *testing.T) {
	f, cancel := setup(t)
	defer cancel()
	ctx, cancelCtx := testutil.TestContext()
	defer cancelCtx()

	if _, err := f.store.AcceptByUser(ctx, f.notif.ID, f.user.ID); err != nil {
		t.Fatalf("AcceptByUser failed: %v", err)
	}
	if _, err := f.store.CancelByUser(ctx, f.notif.ID, f.user.ID); !errors.Is(err, models.ErrAlreadyAccepted) {
		t.Errorf("cancel after own accept: got %v, want ErrAlreadyAccepted", err)
	}

	// The counterpart may still cancel the pending agreement.
	n, err := f.store.CancelByAdmin(ctx, f.notif.ID, f.admin.ID)
	if err != nil {
		t.Fatalf("counterpart cancel failed: %v", err)
	}
	if n.Status != models.ResponseCancelled {
		t.Errorf("status: got %q, want cancelled", n.Status)
	}
}

func TestStore_Ownership(t *testing.T) {
	f, cancel := setup(t)
	defer cancel()
	ctx, cancelCtx := testutil.TestContext()
	defer cancelCtx()

	stranger := primitive.NewObjectID()

	if _, err := f.store.AcceptByUser(ctx, f.notif.ID, stranger); !errors.Is(err, notifstore.ErrNotOwner) {
		t.Errorf("stranger accept: got %v, want ErrNotOwner", err)
	}
	// The admin id does not pass as the user party either.
	if _, err := f.store.CancelByUser(ctx, f.notif.ID, f.admin.ID); !errors.Is(err, notifstore.ErrNotOwner) {
		t.Errorf("admin as user party: got %v, want ErrNotOwner", err)
	}

	if _, err := f.store.AcceptByUser(ctx, primitive.NewObjectID(), f.user.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing notification: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_Lists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notifstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Mia", "mia@example.com")
	ana := fixtures.CreateUser(ctx, "Ana", "ana@example.com", 3)
	zoe := fixtures.CreateUser(ctx, "Zoe", "zoe@example.com", 1)
	opp1 := fixtures.CreateOpportunity(ctx, "First", 3, admin)
	opp2 := fixtures.CreateOpportunity(ctx, "Second", 1, admin)

	fixtures.CreateNotification(ctx, ana, admin, opp1)
	fixtures.CreateNotification(ctx, zoe, admin, opp2)

	forAna, err := store.ListForUser(ctx, ana.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(forAna) != 1 {
		t.Errorf("ListForUser length: got %d, want 1", len(forAna))
	}

	forAdmin, err := store.ListForAdmin(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ListForAdmin failed: %v", err)
	}
	if len(forAdmin) != 2 {
		t.Errorf("ListForAdmin length: got %d, want 2", len(forAdmin))
	}
}
