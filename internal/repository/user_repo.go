package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
)

type UserRepository interface {
	// Create inserts the user. A duplicate email yields ErrAlreadyExists.
	Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)

	SetResetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error
	ClearResetOTP(ctx context.Context, id primitive.ObjectID) error
	// ResetPassword swaps the password hash and clears the OTP fields in one update.
	ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	AddLikedBook(ctx context.Context, userID, bookID primitive.ObjectID) error
	RemoveLikedBook(ctx context.Context, userID, bookID primitive.ObjectID) error
	ReplaceCart(ctx context.Context, userID primitive.ObjectID, items []entity.CartItem) error

	List(ctx context.Context) ([]*entity.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}
