package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

const usersCollection = "users"

// UserRepository stores pool records, one document per account UID.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	UID         string             `bson:"_id"`
	Role        string             `bson:"role"`
	TotalPoints map[string]float64 `bson:"totalPoints"`
}

// Set writes the record with replace-or-insert semantics; the last write wins.
func (r *UserRepository) Set(ctx context.Context, uid string, user *domain.User) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	points := user.TotalPoints
	if points == nil {
		points = map[string]float64{}
	}
	doc := mongoUser{UID: uid, Role: user.Role, TotalPoints: points}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": uid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr("set user", err)
	}
	return nil
}

func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*domain.User, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var doc mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user", err)
	}
	if doc.TotalPoints == nil {
		doc.TotalPoints = map[string]float64{}
	}
	return &domain.User{Role: doc.Role, TotalPoints: doc.TotalPoints}, nil
}
