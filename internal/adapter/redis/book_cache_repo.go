package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

const bookKeyPrefix = "book:"

type bookCacheRepository struct {
	client *redis.Client
}

func NewBookCacheRepository(client *redis.Client) repository.BookCache {
	return &bookCacheRepository{client: client}
}

func bookKey(id primitive.ObjectID) string {
	return bookKeyPrefix + id.Hex()
}

func (r *bookCacheRepository) Get(ctx context.Context, id primitive.ObjectID) (*entity.Book, error) {
	val, err := r.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book %s from cache: %w", id.Hex(), err)
	}

	var book entity.Book
	if err := json.Unmarshal(val, &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached book %s: %w", id.Hex(), err)
	}
	return &book, nil
}

func (r *bookCacheRepository) Set(ctx context.Context, book *entity.Book, ttl time.Duration) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to marshal book %s for cache: %w", book.ID.Hex(), err)
	}
	if err := r.client.Set(ctx, bookKey(book.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache book %s: %w", book.ID.Hex(), err)
	}
	return nil
}

func (r *bookCacheRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := r.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete book %s from cache: %w", id.Hex(), err)
	}
	return nil
}
