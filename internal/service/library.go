package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/platform/metrics"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

// PopulatedCartItem is a cart line with the book document inlined.
type PopulatedCartItem struct {
	Book     *entity.Book `json:"book"`
	Quantity int          `json:"quantity"`
}

// LibraryService owns a user's liked-books set and cart. Cart and liked-list
// writes are whole-field replacements with last-write-wins semantics; the
// store's per-document atomicity is the only concurrency guard here.
type LibraryService struct {
	users    repository.UserRepository
	books    repository.BookRepository
	cache    repository.BookCache
	cacheTTL time.Duration
	metrics  *metrics.Manager
	log      logger.Logger
}

func NewLibraryService(
	users repository.UserRepository,
	books repository.BookRepository,
	cache repository.BookCache,
	cacheTTL time.Duration,
	m *metrics.Manager,
	log logger.Logger,
) *LibraryService {
	return &LibraryService{
		users:    users,
		books:    books,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  m,
		log:      log.With("service", "library"),
	}
}

func (s *LibraryService) getUser(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// getBook reads through the cache. Cache failures fall back to the store.
func (s *LibraryService) getBook(ctx context.Context, id primitive.ObjectID) (*entity.Book, error) {
	if s.cache != nil {
		if book, err := s.cache.Get(ctx, id); err == nil {
			return book, nil
		}
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, book, s.cacheTTL); err != nil {
			s.log.Warnf("failed to cache book %s: %v", id.Hex(), err)
		}
	}
	return book, nil
}

// LikeBook adds the book to the user's liked set. Liking twice fails.
func (s *LibraryService) LikeBook(ctx context.Context, userID, bookID primitive.ObjectID) ([]primitive.ObjectID, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getBook(ctx, bookID); err != nil {
		return nil, err
	}
	if user.HasLiked(bookID) {
		return nil, ErrAlreadyLiked
	}

	if err := s.users.AddLikedBook(ctx, userID, bookID); err != nil {
		return nil, fmt.Errorf("failed to add liked book: %w", err)
	}
	return append(user.LikedBooks, bookID), nil
}

// UnlikeBook removes the book from the liked set. Removing an absent entry
// succeeds.
func (s *LibraryService) UnlikeBook(ctx context.Context, userID, bookID primitive.ObjectID) ([]primitive.ObjectID, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.RemoveLikedBook(ctx, userID, bookID); err != nil {
		return nil, fmt.Errorf("failed to remove liked book: %w", err)
	}

	remaining := make([]primitive.ObjectID, 0, len(user.LikedBooks))
	for _, id := range user.LikedBooks {
		if id != bookID {
			remaining = append(remaining, id)
		}
	}
	return remaining, nil
}

// LikedBooks returns the user's liked set populated with book documents.
// References to books that have since left the catalog are dropped.
func (s *LibraryService) LikedBooks(ctx context.Context, userID primitive.ObjectID) ([]*entity.Book, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.LikedBooks) == 0 {
		return []*entity.Book{}, nil
	}

	books, err := s.books.GetByIDs(ctx, user.LikedBooks)
	if err != nil {
		return nil, fmt.Errorf("failed to load liked books: %w", err)
	}
	return books, nil
}

func (s *LibraryService) HasLiked(ctx context.Context, userID, bookID primitive.ObjectID) (bool, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.HasLiked(bookID), nil
}

// AddToCart puts the book in the cart. An explicit quantity (> 0) replaces
// the current quantity; quantity 0 means "one more than what is there", or 1
// for a new entry. The resulting quantity must not exceed current stock.
func (s *LibraryService) AddToCart(ctx context.Context, userID, bookID primitive.ObjectID, quantity int) ([]PopulatedCartItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	book, err := s.getBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	newQty := quantity
	if item, _ := user.CartItemFor(bookID); item != nil {
		if newQty == 0 {
			newQty = item.Quantity + 1
		}
	} else if newQty == 0 {
		newQty = 1
	}

	if newQty > book.Stock {
		return nil, ErrInsufficientStock
	}

	user.UpsertCartItem(bookID, newQty)
	if err := s.users.ReplaceCart(ctx, userID, user.Cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	return s.populateCart(ctx, user.Cart)
}

// RemoveFromCart drops the entry. Removing an absent entry succeeds.
func (s *LibraryService) RemoveFromCart(ctx context.Context, userID, bookID primitive.ObjectID) ([]PopulatedCartItem, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.RemoveCartItem(bookID)
	if err := s.users.ReplaceCart(ctx, userID, user.Cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return s.populateCart(ctx, user.Cart)
}

// UpdateCartQuantity overwrites the quantity of an existing cart entry.
func (s *LibraryService) UpdateCartQuantity(ctx context.Context, userID, bookID primitive.ObjectID, quantity int) ([]PopulatedCartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, _ := user.CartItemFor(bookID)
	if item == nil {
		return nil, ErrNotInCart
	}

	book, err := s.getBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if quantity > book.Stock {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.users.ReplaceCart(ctx, userID, user.Cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.metrics.CartMutationsTotal.WithLabelValues("update").Inc()
	return s.populateCart(ctx, user.Cart)
}

// ClearCart unconditionally empties the cart.
func (s *LibraryService) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}

	if err := s.users.ReplaceCart(ctx, userID, []entity.CartItem{}); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return nil
}

func (s *LibraryService) GetCart(ctx context.Context, userID primitive.ObjectID) ([]PopulatedCartItem, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populateCart(ctx, user.Cart)
}

// populateCart inlines the book document for each cart line. Lines whose
// book has left the catalog are silently dropped.
func (s *LibraryService) populateCart(ctx context.Context, items []entity.CartItem) ([]PopulatedCartItem, error) {
	populated := make([]PopulatedCartItem, 0, len(items))
	for _, item := range items {
		book, err := s.getBook(ctx, item.BookID)
		if err != nil {
			if errors.Is(err, ErrBookNotFound) {
				continue
			}
			return nil, err
		}
		populated = append(populated, PopulatedCartItem{Book: book, Quantity: item.Quantity})
	}
	return populated, nil
}
