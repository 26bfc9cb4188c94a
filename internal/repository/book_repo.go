package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
)

type BookRepository interface {
	// Create inserts the book. A duplicate ISBN yields ErrAlreadyExists.
	Create(ctx context.Context, book *entity.Book) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*entity.Book, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Book, error)
	List(ctx context.Context) ([]*entity.Book, error)
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BookCache fronts the book collection for hot reads (cart population).
type BookCache interface {
	Get(ctx context.Context, id primitive.ObjectID) (*entity.Book, error)
	Set(ctx context.Context, book *entity.Book, ttl time.Duration) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SearchCache stores JSON payloads keyed by query string, with a miss
// reported as ErrNotFound.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out interface{}) error
	SetJSON(ctx context.Context, key string, val interface{}, ttl time.Duration) error
}
