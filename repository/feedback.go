package repository

import (
	"context"
	"fmt"
	"time"

	"notebook/model"
	"notebook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FeedbackRepo struct {
	MongoCollection *mongo.Collection
	Timeout         time.Duration
}

func NewFeedbackRepo(db *mongo.Database, collection string, timeout time.Duration) *FeedbackRepo {
	return &FeedbackRepo{
		MongoCollection: db.Collection(collection),
		Timeout:         timeout,
	}
}

func (r *FeedbackRepo) Create(ctx context.Context, feedback *model.Feedback) error {
	timer := utils.TrackDBOperation("insert", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	if feedback.ID == "" {
		feedback.ID = utils.NewID()
	}
	feedback.CreatedAt = time.Now().UTC()

	if _, err := r.MongoCollection.InsertOne(ctx, feedback); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (r *FeedbackRepo) List(ctx context.Context, limit int) ([]*model.Feedback, error) {
	timer := utils.TrackDBOperation("find", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*model.Feedback{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	return entries, nil
}
