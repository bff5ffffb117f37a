// Package testutils connects integration tests to a disposable MongoDB
// database. Tests skip when TEST_MONGO_URI is not set.
package testutils

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"notebook/config"
	"notebook/repository"
	"notebook/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// TestDatabaseConfig points every collection at a fresh, uniquely named
// database so parallel packages do not collide.
func TestDatabaseConfig(uri string) config.DatabaseConfig {
	return config.DatabaseConfig{
		URI:                uri,
		MaxPoolSize:        utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 20),
		MinPoolSize:        0,
		MaxConnIdleTime:    time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		OperationTimeout:   5 * time.Second,
		DatabaseName:       "notebook_test_" + strings.ReplaceAll(utils.NewID()[:8], "-", ""),
		UsersCollection:    "users",
		NotesCollection:    "notes",
		FeedbackCollection: "feedback",
		RetryWrites:        true,
	}
}

// SetupTestDB returns a database with indexes created. The database is
// dropped when the test finishes.
func SetupTestDB(t *testing.T) (*mongo.Database, config.DatabaseConfig) {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set, skipping MongoDB integration test")
	}

	cfg := TestDatabaseConfig(uri)
	ctx := context.Background()

	client, err := repository.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	db := client.Database(cfg.DatabaseName)
	if err := repository.SetupIndexes(ctx, db, cfg); err != nil {
		t.Fatalf("Failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := db.Drop(ctx); err != nil {
			t.Logf("Warning: Failed to drop test database %s: %v", cfg.DatabaseName, err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Warning: Failed to disconnect: %v", err)
		}
	})

	return db, cfg
}
