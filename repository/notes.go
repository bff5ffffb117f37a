package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"notebook/model"
	"notebook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
	Timeout         time.Duration
}

func NewNotesRepo(db *mongo.Database, collection string, timeout time.Duration) *NotesRepo {
	return &NotesRepo{
		MongoCollection: db.Collection(collection),
		Timeout:         timeout,
	}
}

func (r *NotesRepo) collectionName() string {
	return r.MongoCollection.Name()
}

// Create inserts note, stamping the id and timestamps.
func (r *NotesRepo) Create(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	if note.ID == "" {
		note.ID = utils.NewID()
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// FindByID loads a note regardless of owner so callers can tell a missing
// note from someone else's.
func (r *NotesRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var note model.Note
	if err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&note); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &note, nil
}

func noteListFilter(ownerID string, f model.NoteFilter) bson.M {
	filter := bson.M{"user_id": ownerID}

	if f.Query != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(f.Query), "$options": "i"}
		filter["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
		}
	}
	switch f.Status {
	case model.NoteStatusCompleted:
		filter["completed"] = true
	case model.NoteStatusPending:
		filter["completed"] = false
	}
	if f.FavoritesOnly {
		filter["favorite"] = true
	}
	if f.CreatedOn != nil {
		filter["created_at"] = bson.M{
			"$gte": *f.CreatedOn,
			"$lt":  f.CreatedOn.Add(24 * time.Hour),
		}
	}
	return filter
}

// ListByOwner returns only ownerID's notes, oldest first unless the filter
// asks for newest first.
func (r *NotesRepo) ListByOwner(ctx context.Context, ownerID string, f model.NoteFilter) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	direction := 1
	if f.Sort == model.NoteSortNewest {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: direction},
		{Key: "_id", Value: direction},
	})

	cursor, err := r.MongoCollection.Find(ctx, noteListFilter(ownerID, f), opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func patchSet(patch model.NotePatch) bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ClearSchedule {
		set["schedule_date"] = nil
	} else if patch.ScheduleDate != nil {
		set["schedule_date"] = *patch.ScheduleDate
	}
	return set
}

// Update applies patch to the note with id owned by ownerID.
func (r *NotesRepo) Update(ctx context.Context, id, ownerID string, patch model.NotePatch) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", r.collectionName())
	defer timer.ObserveDuration()

	return r.findOneAndUpdate(ctx, id, ownerID, bson.M{"$set": patchSet(patch)})
}

// Toggle negates flag inside the server in a single document update, so two
// concurrent toggles always leave the flag where two sequential ones would.
func (r *NotesRepo) Toggle(ctx context.Context, id, ownerID string, flag model.NoteFlag) (*model.Note, error) {
	timer := utils.TrackDBOperation("toggle", r.collectionName())
	defer timer.ObserveDuration()

	field := string(flag)
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: field, Value: bson.D{{Key: "$not", Value: bson.A{"$" + field}}}},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	}
	return r.findOneAndUpdate(ctx, id, ownerID, pipeline)
}

func (r *NotesRepo) findOneAndUpdate(ctx context.Context, id, ownerID string, update interface{}) (*model.Note, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	filter := bson.M{"_id": id, "user_id": ownerID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	if err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&note); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &note, nil
}

// Delete removes the note with id owned by ownerID.
func (r *NotesRepo) Delete(ctx context.Context, id, ownerID string) error {
	timer := utils.TrackDBOperation("delete", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts ownerID's notes by state in one aggregation.
func (r *NotesRepo) Stats(ctx context.Context, ownerID string) (model.NoteStats, error) {
	timer := utils.TrackDBOperation("aggregate", r.collectionName())
	defer timer.ObserveDuration()

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	countIf := func(cond interface{}) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{cond, 1, 0}}}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: ownerID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "completed", Value: countIf("$completed")},
			{Key: "favorite", Value: countIf("$favorite")},
			// dates sort above null and missing
			{Key: "scheduled", Value: countIf(bson.D{{Key: "$gt", Value: bson.A{"$schedule_date", nil}}})},
		}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return model.NoteStats{}, fmt.Errorf("aggregate note stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total     int `bson:"total"`
		Completed int `bson:"completed"`
		Favorite  int `bson:"favorite"`
		Scheduled int `bson:"scheduled"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return model.NoteStats{}, fmt.Errorf("decode note stats: %w", err)
	}

	var stats model.NoteStats
	if len(rows) > 0 {
		stats.Total = rows[0].Total
		stats.Completed = rows[0].Completed
		stats.Pending = rows[0].Total - rows[0].Completed
		stats.Favorite = rows[0].Favorite
		stats.Scheduled = rows[0].Scheduled
	}
	return stats, nil
}
