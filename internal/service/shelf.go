package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

// ShelfItem is a collection entry with the book document inlined.
type ShelfItem struct {
	ID      primitive.ObjectID `json:"id"`
	Book    *entity.Book       `json:"book"`
	AddedAt time.Time          `json:"addedAt"`
}

// ShelfService owns the personal collection, a (user, book) link set
// distinct from the cart and the liked list.
type ShelfService struct {
	shelf repository.ShelfRepository
	books repository.BookRepository
	log   logger.Logger
}

func NewShelfService(shelf repository.ShelfRepository, books repository.BookRepository, log logger.Logger) *ShelfService {
	return &ShelfService{
		shelf: shelf,
		books: books,
		log:   log.With("service", "shelf"),
	}
}

// Add links the book to the user's collection. The existence pre-check is an
// optimization only; two concurrent adds race past it, and the unique index
// violation reported by the store is the authoritative duplicate signal.
func (s *ShelfService) Add(ctx context.Context, userID, bookID primitive.ObjectID) (*entity.ShelfEntry, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}

	exists, err := s.shelf.Exists(ctx, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil, ErrAlreadyOnShelf
	}

	entry := &entity.ShelfEntry{UserID: userID, BookID: bookID}
	if err := s.shelf.Add(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrAlreadyOnShelf
		}
		return nil, fmt.Errorf("failed to add to collection: %w", err)
	}
	return entry, nil
}

// Remove unlinks the book. Removing an absent entry succeeds.
func (s *ShelfService) Remove(ctx context.Context, userID, bookID primitive.ObjectID) error {
	if err := s.shelf.Remove(ctx, userID, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to remove from collection: %w", err)
	}
	return nil
}

// List returns the user's collection with book documents inlined, dropping
// entries whose book has left the catalog.
func (s *ShelfService) List(ctx context.Context, userID primitive.ObjectID) ([]ShelfItem, error) {
	entries, err := s.shelf.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}
	if len(entries) == 0 {
		return []ShelfItem{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.BookID)
	}
	books, err := s.books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection books: %w", err)
	}
	byID := make(map[primitive.ObjectID]*entity.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	items := make([]ShelfItem, 0, len(entries))
	for _, e := range entries {
		book, ok := byID[e.BookID]
		if !ok {
			continue
		}
		items = append(items, ShelfItem{ID: e.ID, Book: book, AddedAt: e.CreatedAt})
	}
	return items, nil
}

func (s *ShelfService) Contains(ctx context.Context, userID, bookID primitive.ObjectID) (bool, error) {
	exists, err := s.shelf.Exists(ctx, userID, bookID)
	if err != nil {
		return false, fmt.Errorf("failed to check collection: %w", err)
	}
	return exists, nil
}
