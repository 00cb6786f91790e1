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

const collectionCategories = "categories"

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

type mongoCategory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Name       string             `bson:"name"`
	Color      string             `bson:"color"`
	IsArchived bool               `bson:"is_archived"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (m *mongoCategory) toDomain() *domain.Category {
	return &domain.Category{
		ID:         m.ID.Hex(),
		UserID:     m.UserID,
		Name:       m.Name,
		Color:      m.Color,
		IsArchived: m.IsArchived,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

// List returns the user's categories, active ones first, oldest first within
// each group. This is the picker order the UI expects.
func (r *CategoryRepository) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "is_archived", Value: 1}, {Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	categories := make([]*domain.Category, 0)
	for cur.Next(ctx) {
		var m mongoCategory
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		categories = append(categories, m.toDomain())
	}
	return categories, cur.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, categoryID, userID string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	var m mongoCategory
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCategory{
		UserID:     category.UserID,
		Name:       category.Name,
		Color:      category.Color,
		IsArchived: category.IsArchived,
		CreatedAt:  category.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid.Hex()
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, categoryID, userID string, patch ports.CategoryPatch) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}
	if patch.IsArchived != nil {
		set["is_archived"] = *patch.IsArchived
	}

	filter := bson.M{"_id": oid, "user_id": userID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m mongoCategory
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return domain.ErrCategoryNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// EnsureIndexes creates the query indexes for the categories collection.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_archived", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
