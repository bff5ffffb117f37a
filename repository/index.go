package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"notebook/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the stores rely on. The unique email index
// backs the duplicate-account check against concurrent registrations.
func SetupIndexes(ctx context.Context, db *mongo.Database, cfg config.DatabaseConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("unique_email").
				SetUnique(true),
		},
	}

	noteIndexes := []mongo.IndexModel{
		// Basic user-date index
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().
				SetName("user_notes_date"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "completed", Value: 1},
			},
			Options: options.Index().
				SetName("user_notes_completed"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "favorite", Value: 1},
			},
			Options: options.Index().
				SetName("user_notes_favorite"),
		},
	}

	feedbackIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().
				SetName("feedback_recent"),
		},
	}

	if _, err := db.Collection(cfg.UsersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}
	if _, err := db.Collection(cfg.NotesCollection).Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}
	if _, err := db.Collection(cfg.FeedbackCollection).Indexes().CreateMany(ctx, feedbackIndexes); err != nil {
		return fmt.Errorf("failed to create feedback indexes: %w", err)
	}

	slog.InfoContext(ctx, "mongo indexes ready", "database", db.Name())
	return nil
}
