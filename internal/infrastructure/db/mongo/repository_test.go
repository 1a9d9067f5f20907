package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find existing record", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bolao.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "role", Value: "admin"},
			{Key: "totalPoints", Value: bson.D{{Key: "2026", Value: 12.5}}},
		}))

		user, err := NewUserRepository(mt.DB).FindByUID(context.Background(), "u1")
		if err != nil {
			mt.Fatalf("FindByUID: %v", err)
		}
		if user.Role != domain.RoleAdmin || user.TotalPoints["2026"] != 12.5 {
			mt.Fatalf("unexpected user: %+v", user)
		}
	})

	mt.Run("missing points decode as empty map", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bolao.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "role", Value: "user"},
		}))

		user, err := NewUserRepository(mt.DB).FindByUID(context.Background(), "u1")
		if err != nil {
			mt.Fatalf("FindByUID: %v", err)
		}
		if user.TotalPoints == nil {
			mt.Fatalf("expected non-nil points map")
		}
	})

	mt.Run("find missing record", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bolao.users", mtest.FirstBatch))

		_, err := NewUserRepository(mt.DB).FindByUID(context.Background(), "ghost")
		if !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "u1"}}}},
		))

		if err := NewUserRepository(mt.DB).Set(context.Background(), "u1", domain.NewUser(domain.RoleUser)); err != nil {
			mt.Fatalf("Set: %v", err)
		}
	})
}

func TestAccountRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewAccountRepository(mt.DB).Create(context.Background(), &domain.Account{
			UID:       "u1",
			Email:     "ana@example.com",
			Providers: []string{domain.ProviderPassword},
			CreatedAt: time.Now(),
		})
		if err != nil {
			mt.Fatalf("Create: %v", err)
		}
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: bolao.accounts index: uniq_email",
		}))

		err := NewAccountRepository(mt.DB).Create(context.Background(), &domain.Account{UID: "u2", Email: "ana@example.com"})
		if !errors.Is(err, domain.ErrEmailInUse) {
			mt.Fatalf("expected ErrEmailInUse, got %v", err)
		}
	})

	mt.Run("find by email", func(mt *mtest.T) {
		validAfter := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bolao.accounts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "email", Value: "ana@example.com"},
			{Key: "display_name", Value: "Ana"},
			{Key: "providers", Value: bson.A{"google.com", "password"}},
			{Key: "google_subject", Value: "g-1"},
			{Key: "tokens_valid_after", Value: validAfter.Unix()},
		}))

		account, err := NewAccountRepository(mt.DB).FindByEmail(context.Background(), "ana@example.com")
		if err != nil {
			mt.Fatalf("FindByEmail: %v", err)
		}
		if account.UID != "u1" || account.DisplayName != "Ana" || account.GoogleSubject != "g-1" {
			mt.Fatalf("unexpected account: %+v", account)
		}
		if len(account.Providers) != 2 || account.Providers[0] != domain.ProviderGoogle {
			mt.Fatalf("unexpected providers: %v", account.Providers)
		}
		if !account.TokensValidAfter.Equal(validAfter) {
			mt.Fatalf("tokens valid after: got %v", account.TokensValidAfter)
		}
	})

	mt.Run("find by uid missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bolao.accounts", mtest.FirstBatch))

		_, err := NewAccountRepository(mt.DB).FindByUID(context.Background(), "ghost")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			mt.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	mt.Run("empty google subject never matches", func(mt *mtest.T) {
		_, err := NewAccountRepository(mt.DB).FindByGoogleSubject(context.Background(), "")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			mt.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	mt.Run("update unknown account", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := NewAccountRepository(mt.DB).Update(context.Background(), &domain.Account{UID: "ghost", Email: "x@example.com"})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			mt.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	mt.Run("update to taken email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key"}))

		err := NewAccountRepository(mt.DB).Update(context.Background(), &domain.Account{UID: "u1", Email: "taken@example.com"})
		if !errors.Is(err, domain.ErrEmailInUse) {
			mt.Fatalf("expected ErrEmailInUse, got %v", err)
		}
	})
}

func TestOpContext(t *testing.T) {
	t.Run("applies the default deadline", func(t *testing.T) {
		ctx, cancel := opContext(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatalf("expected a deadline")
		}
		if left := time.Until(deadline); left <= 0 || left > defaultTimeout {
			t.Fatalf("deadline %v out of range", left)
		}
	})

	t.Run("keeps a shorter parent deadline", func(t *testing.T) {
		parent, cancelParent := context.WithTimeout(context.Background(), time.Second)
		defer cancelParent()
		want, _ := parent.Deadline()

		ctx, cancel := opContext(parent)
		defer cancel()

		if got, _ := ctx.Deadline(); !got.Equal(want) {
			t.Fatalf("deadline %v, want %v", got, want)
		}
	})
}
