package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notebook/model"
	"notebook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UsersRepo struct {
	MongoCollection *mongo.Collection
	Timeout         time.Duration
}

func NewUsersRepo(db *mongo.Database, collection string, timeout time.Duration) *UsersRepo {
	return &UsersRepo{
		MongoCollection: db.Collection(collection),
		Timeout:         timeout,
	}
}

func (r *UsersRepo) collectionName() string {
	return r.MongoCollection.Name()
}

// Create inserts account. A second account with the same email fails with
// ErrDuplicateKey via the unique index.
func (r *UsersRepo) Create(ctx context.Context, account *model.Account) error {
	timer := utils.TrackDBOperation("insert", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	if account.ID == "" {
		account.ID = utils.NewID()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.MongoCollection.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UsersRepo) findOne(ctx context.Context, filter bson.M) (*model.Account, error) {
	timer := utils.TrackDBOperation("find", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var account model.Account
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

// UpdatePassword stores a new hash and bumps the token version in one write,
// returning the updated account.
func (r *UsersRepo) UpdatePassword(ctx context.Context, id, passwordHash string) (*model.Account, error) {
	timer := utils.TrackDBOperation("update", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"token_version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account model.Account
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update password: %w", err)
	}
	return &account, nil
}
