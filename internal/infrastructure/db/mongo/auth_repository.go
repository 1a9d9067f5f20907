package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

const accountsCollection = "accounts"

// AccountRepository stores identity accounts keyed by UID.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

type mongoAccount struct {
	UID              string   `bson:"_id"`
	Email            string   `bson:"email"`
	DisplayName      string   `bson:"display_name"`
	PhotoURL         string   `bson:"photo_url,omitempty"`
	PasswordHash     string   `bson:"password_hash,omitempty"`
	Providers        []string `bson:"providers"`
	GoogleSubject    string   `bson:"google_subject,omitempty"`
	TokensValidAfter int64    `bson:"tokens_valid_after,omitempty"`
	CreatedAt        int64    `bson:"created_at"`
	UpdatedAt        int64    `bson:"updated_at"`
}

func toMongoAccount(a *domain.Account) mongoAccount {
	providers := a.Providers
	if providers == nil {
		providers = []string{}
	}
	return mongoAccount{
		UID:              a.UID,
		Email:            a.Email,
		DisplayName:      a.DisplayName,
		PhotoURL:         a.PhotoURL,
		PasswordHash:     a.PasswordHash,
		Providers:        providers,
		GoogleSubject:    a.GoogleSubject,
		TokensValidAfter: timeToUnix(a.TokensValidAfter),
		CreatedAt:        timeToUnix(a.CreatedAt),
		UpdatedAt:        timeToUnix(a.UpdatedAt),
	}
}

func (m mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		UID:              m.UID,
		Email:            m.Email,
		DisplayName:      m.DisplayName,
		PhotoURL:         m.PhotoURL,
		PasswordHash:     m.PasswordHash,
		Providers:        m.Providers,
		GoogleSubject:    m.GoogleSubject,
		TokensValidAfter: unixToTime(m.TokensValidAfter),
		CreatedAt:        unixToTime(m.CreatedAt),
		UpdatedAt:        unixToTime(m.UpdatedAt),
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toMongoAccount(account)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailInUse
		}
		return storeErr("insert account", err)
	}
	return nil
}

func (r *AccountRepository) FindByUID(ctx context.Context, uid string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": uid})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByGoogleSubject(ctx context.Context, subject string) (*domain.Account, error) {
	if subject == "" {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"google_subject": subject})
}

// Update replaces the stored account with the given one.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": account.UID}, toMongoAccount(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailInUse
		}
		return storeErr("update account", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var doc mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, storeErr("find account", err)
	}
	return doc.toDomain(), nil
}
