package mongo

import (
	"context"
	"errors"
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

const bookCollectionName = "books"

type bookRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewBookRepository(db *mongo.Database, log logger.Logger) repository.BookRepository {
	collection := db.Collection(bookCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isbn", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warnf("failed to ensure indexes for books collection: %v", err)
	}

	return &bookRepository{
		collection: collection,
		log:        log.With("repository", "books"),
	}
}

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) (primitive.ObjectID, error) {
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, book)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.log.Warnf("duplicate ISBN on book create: %s", book.ISBN)
			return primitive.NilObjectID, repository.ErrAlreadyExists
		}
		return primitive.NilObjectID, fmt.Errorf("failed to create book: %w", err)
	}
	return book.ID, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Book, error) {
	var book entity.Book
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by ID %s: %w", id.Hex(), err)
	}
	return &book, nil
}

func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	var book entity.Book
	err := r.collection.FindOne(ctx, bson.M{"isbn": isbn}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by ISBN: %w", err)
	}
	return &book, nil
}

func (r *bookRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Book, error) {
	if len(ids) == 0 {
		return []*entity.Book{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get books by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*entity.Book
	if err = cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books by IDs: %w", err)
	}
	return books, nil
}

func (r *bookRepository) List(ctx context.Context) ([]*entity.Book, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*entity.Book
	if err = cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode listed books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	book.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"title":       book.Title,
			"author":      book.Author,
			"genre":       book.Genre,
			"price":       book.Price,
			"stock":       book.Stock,
			"isbn":        book.ISBN,
			"description": book.Description,
			"updated_at":  book.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": book.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("failed to update book %s: %w", book.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete book %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
