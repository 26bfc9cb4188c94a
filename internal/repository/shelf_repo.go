package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
)

type ShelfRepository interface {
	// Add inserts the entry. The compound unique index on (user, book) makes a
	// duplicate insert fail with ErrAlreadyExists, which is the authoritative
	// duplicate signal regardless of any pre-check.
	Add(ctx context.Context, entry *entity.ShelfEntry) error
	// Remove deletes the entry, returning ErrNotFound when nothing matched.
	Remove(ctx context.Context, userID, bookID primitive.ObjectID) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*entity.ShelfEntry, error)
	Exists(ctx context.Context, userID, bookID primitive.ObjectID) (bool, error)
}
