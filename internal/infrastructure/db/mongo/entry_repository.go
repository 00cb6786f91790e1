package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

const collectionEntries = "time_entries"

type EntryRepository struct {
	col *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{col: db.Collection(collectionEntries)}
}

type mongoEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"user_id"`
	StartTime       time.Time          `bson:"start_time"`
	EndTime         *time.Time         `bson:"end_time"`
	DurationSeconds int64              `bson:"duration_seconds"`
	Description     string             `bson:"description"`
	CategoryID      string             `bson:"category_id,omitempty"`
}

func (m *mongoEntry) toDomain() *domain.TimeEntry {
	return &domain.TimeEntry{
		ID:              m.ID.Hex(),
		UserID:          m.UserID,
		StartTime:       m.StartTime.UTC(),
		EndTime:         utcPtr(m.EndTime),
		DurationSeconds: m.DurationSeconds,
		Description:     m.Description,
		CategoryID:      m.CategoryID,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// CreateOpen inserts a new open entry. The document always carries an
// explicit end_time null so the partial unique index sees it; a second open
// entry for the same user is rejected by the index, making the "no open
// entry" check and the insert one atomic operation.
func (r *EntryRepository) CreateOpen(ctx context.Context, entry *domain.TimeEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEntry{
		UserID:      entry.UserID,
		StartTime:   entry.StartTime,
		EndTime:     nil,
		Description: entry.Description,
		CategoryID:  entry.CategoryID,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTimerAlreadyRunning
		}
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

// FindOpen returns the user's running entry, newest start first in the
// (index-prevented) event more than one exists.
func (r *EntryRepository) FindOpen(ctx context.Context, userID string) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "end_time": nil}
	opts := options.FindOne().SetSort(bson.D{{Key: "start_time", Value: -1}})

	var m mongoEntry
	if err := r.col.FindOne(ctx, filter, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoOpenEntry
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// Close transitions the open entry to closed exactly once: the filter matches
// only the caller's open entry, so a stale or foreign id falls through to
// ErrEntryNotFound.
func (r *EntryRepository) Close(ctx context.Context, entryID, userID string, endTime time.Time, durationSeconds int64) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	filter := bson.M{"_id": oid, "user_id": userID, "end_time": nil}
	update := bson.M{"$set": bson.M{"end_time": endTime, "duration_seconds": durationSeconds}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m mongoEntry
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// ListClosed returns closed entries ordered by end_time descending, optionally
// bounded by start_time >= startAfter (inclusive).
func (r *EntryRepository) ListClosed(ctx context.Context, userID string, startAfter *time.Time) ([]*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "end_time": bson.M{"$ne": nil}}
	if startAfter != nil {
		filter["start_time"] = bson.M{"$gte": *startAfter}
	}
	opts := options.Find().SetSort(bson.D{{Key: "end_time", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := make([]*domain.TimeEntry, 0)
	for cur.Next(ctx) {
		var m mongoEntry
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		entries = append(entries, m.toDomain())
	}
	return entries, cur.Err()
}

// Update applies a partial $set; only fields present in the patch change.
// Clearing the category is an $unset so omitempty reads stay consistent.
func (r *EntryRepository) Update(ctx context.Context, entryID, userID string, patch ports.EntryPatch) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	set := bson.M{}
	unset := bson.M{}
	if patch.EndTime != nil {
		set["end_time"] = *patch.EndTime
	}
	if patch.DurationSeconds != nil {
		set["duration_seconds"] = *patch.DurationSeconds
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			unset["category_id"] = ""
		} else {
			set["category_id"] = *patch.CategoryID
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	filter := bson.M{"_id": oid, "user_id": userID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m mongoEntry
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *EntryRepository) Delete(ctx context.Context, entryID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *EntryRepository) CountByCategory(ctx context.Context, userID, categoryID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"user_id": userID, "category_id": categoryID})
}

// EnsureIndexes creates the indexes for the time_entries collection. The
// partial unique index over user_id where end_time is null is what makes the
// at-most-one-open-entry invariant hold under concurrent starts.
func (r *EntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("one_open_entry_per_user").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "end_time", Value: bson.D{{Key: "$type", Value: "null"}}}}),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "end_time", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
