package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

const shelfCollectionName = "shelf"

type shelfRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewShelfRepository(db *mongo.Database, log logger.Logger) repository.ShelfRepository {
	collection := db.Collection(shelfCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The compound unique index is the real duplicate guard; application-level
	// existence checks are an optimization only.
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "book", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warnf("failed to ensure indexes for shelf collection: %v", err)
	}

	return &shelfRepository{
		collection: collection,
		log:        log.With("repository", "shelf"),
	}
}

func (r *shelfRepository) Add(ctx context.Context, entry *entity.ShelfEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("failed to add shelf entry: %w", err)
	}
	return nil
}

func (r *shelfRepository) Remove(ctx context.Context, userID, bookID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"user": userID, "book": bookID})
	if err != nil {
		return fmt.Errorf("failed to remove shelf entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *shelfRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*entity.ShelfEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelf entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*entity.ShelfEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode shelf entries: %w", err)
	}
	return entries, nil
}

func (r *shelfRepository) Exists(ctx context.Context, userID, bookID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user": userID, "book": bookID})
	if err != nil {
		return false, fmt.Errorf("failed to check shelf entry: %w", err)
	}
	return count > 0, nil
}
