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

const userCollectionName = "users"

type userRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewUserRepository(db *mongo.Database, log logger.Logger) repository.UserRepository {
	collection := db.Collection(userCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Idempotent; the unique email index backs the DuplicateEmail error.
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warnf("failed to ensure indexes for users collection: %v", err)
	}

	return &userRepository{
		collection: collection,
		log:        log.With("repository", "users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.LikedBooks == nil {
		user.LikedBooks = make([]primitive.ObjectID, 0)
	}
	if user.Cart == nil {
		user.Cart = make([]entity.CartItem, 0)
	}

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.log.Warnf("duplicate email on user create: %s", user.Email)
			return primitive.NilObjectID, repository.ErrAlreadyExists
		}
		return primitive.NilObjectID, fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id.Hex(), err)
	}
	return &user, nil
}

func (r *userRepository) SetResetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"reset_otp":            code,
			"reset_otp_expires_at": expiresAt,
			"updated_at":           time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set reset OTP: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) ClearResetOTP(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$unset": bson.M{
			"reset_otp":            "",
			"reset_otp_expires_at": "",
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to clear reset OTP: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	// Hash swap and OTP clear land in the same update so a reset is all-or-nothing.
	update := bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": time.Now().UTC(),
		},
		"$unset": bson.M{
			"reset_otp":            "",
			"reset_otp_expires_at": "",
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) AddLikedBook(ctx context.Context, userID, bookID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"liked_books": bookID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to add liked book: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) RemoveLikedBook(ctx context.Context, userID, bookID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"liked_books": bookID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to remove liked book: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) ReplaceCart(ctx context.Context, userID primitive.ObjectID, items []entity.CartItem) error {
	if items == nil {
		items = make([]entity.CartItem, 0)
	}
	update := bson.M{
		"$set": bson.M{
			"cart":       items,
			"updated_at": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to replace cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*entity.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode listed users: %w", err)
	}
	return users, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
