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

// CatalogService manages the shared book catalog. Reads go through the
// cache; every write invalidates the cached document and emits an event.
type CatalogService struct {
	books     repository.BookRepository
	cache     repository.BookCache
	cacheTTL  time.Duration
	publisher EventPublisher
	metrics   *metrics.Manager
	log       logger.Logger
}

func NewCatalogService(
	books repository.BookRepository,
	cache repository.BookCache,
	cacheTTL time.Duration,
	publisher EventPublisher,
	m *metrics.Manager,
	log logger.Logger,
) *CatalogService {
	return &CatalogService{
		books:     books,
		cache:     cache,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		metrics:   m,
		log:       log.With("service", "catalog"),
	}
}

func (s *CatalogService) Create(ctx context.Context, book *entity.Book) (*entity.Book, error) {
	id, err := s.books.Create(ctx, book)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrDuplicateISBN
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	book.ID = id

	s.metrics.BooksCreatedTotal.Inc()
	s.log.Infof("book created: %s (%s)", book.Title, id.Hex())
	s.publish(ctx, SubjectBookCreated, BookEvent{BookID: id.Hex(), Title: book.Title, ISBN: book.ISBN})
	return book, nil
}

func (s *CatalogService) Get(ctx context.Context, id primitive.ObjectID) (*entity.Book, error) {
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

func (s *CatalogService) List(ctx context.Context) ([]*entity.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *CatalogService) Update(ctx context.Context, book *entity.Book) (*entity.Book, error) {
	if err := s.books.Update(ctx, book); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrBookNotFound
		case errors.Is(err, repository.ErrAlreadyExists):
			return nil, ErrDuplicateISBN
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	s.invalidate(ctx, book.ID)
	s.publish(ctx, SubjectBookUpdated, BookEvent{BookID: book.ID.Hex(), Title: book.Title, ISBN: book.ISBN})
	return book, nil
}

func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.books.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, SubjectBookDeleted, BookEvent{BookID: id.Hex()})
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warnf("failed to invalidate cached book %s: %v", id.Hex(), err)
	}
}

func (s *CatalogService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, payload); err != nil {
		s.log.Errorf("failed to publish %s: %v", subject, err)
	}
}
