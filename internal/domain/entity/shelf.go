package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShelfEntry links a user to a book in their personal collection.
// The (user, book) pair is unique at the storage layer.
type ShelfEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	BookID    primitive.ObjectID `bson:"book" json:"book"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
