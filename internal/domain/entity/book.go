package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a catalog entry, owned and mutated by admins only.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Genre       string             `bson:"genre" json:"genre"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	ISBN        string             `bson:"isbn" json:"isbn"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
