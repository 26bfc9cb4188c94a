package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

func TestShelfService_Add(t *testing.T) {
	shelf := new(MockShelfRepository)
	books := new(MockBookRepository)
	svc := NewShelfService(shelf, books, logger.NoOp())

	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	books.On("GetByID", mock.Anything, bookID).Return(&entity.Book{ID: bookID}, nil)
	shelf.On("Exists", mock.Anything, userID, bookID).Return(false, nil)
	shelf.On("Add", mock.Anything, mock.MatchedBy(func(e *entity.ShelfEntry) bool {
		return e.UserID == userID && e.BookID == bookID
	})).Return(nil)

	entry, err := svc.Add(context.Background(), userID, bookID)

	require.NoError(t, err)
	assert.Equal(t, bookID, entry.BookID)
	shelf.AssertExpectations(t)
}

func TestShelfService_Add_DuplicateViaPreCheck(t *testing.T) {
	shelf := new(MockShelfRepository)
	books := new(MockBookRepository)
	svc := NewShelfService(shelf, books, logger.NoOp())

	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	books.On("GetByID", mock.Anything, bookID).Return(&entity.Book{ID: bookID}, nil)
	shelf.On("Exists", mock.Anything, userID, bookID).Return(true, nil)

	_, err := svc.Add(context.Background(), userID, bookID)

	assert.ErrorIs(t, err, ErrAlreadyOnShelf)
	shelf.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

// Two concurrent adds can both pass the existence pre-check. The unique
// index violation from the insert must still come back as a duplicate.
func TestShelfService_Add_DuplicateViaUniqueIndex(t *testing.T) {
	shelf := new(MockShelfRepository)
	books := new(MockBookRepository)
	svc := NewShelfService(shelf, books, logger.NoOp())

	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	books.On("GetByID", mock.Anything, bookID).Return(&entity.Book{ID: bookID}, nil)
	shelf.On("Exists", mock.Anything, userID, bookID).Return(false, nil)
	shelf.On("Add", mock.Anything, mock.Anything).Return(repository.ErrAlreadyExists)

	_, err := svc.Add(context.Background(), userID, bookID)

	assert.ErrorIs(t, err, ErrAlreadyOnShelf)
}

func TestShelfService_Add_BookNotFound(t *testing.T) {
	shelf := new(MockShelfRepository)
	books := new(MockBookRepository)
	svc := NewShelfService(shelf, books, logger.NoOp())

	bookID := primitive.NewObjectID()
	books.On("GetByID", mock.Anything, bookID).Return(nil, repository.ErrNotFound)

	_, err := svc.Add(context.Background(), primitive.NewObjectID(), bookID)

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestShelfService_Remove_AbsentIsIdempotent(t *testing.T) {
	shelf := new(MockShelfRepository)
	svc := NewShelfService(shelf, new(MockBookRepository), logger.NoOp())

	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	shelf.On("Remove", mock.Anything, userID, bookID).Return(repository.ErrNotFound)

	err := svc.Remove(context.Background(), userID, bookID)

	assert.NoError(t, err)
}

func TestShelfService_List_PopulatesBooks(t *testing.T) {
	shelf := new(MockShelfRepository)
	books := new(MockBookRepository)
	svc := NewShelfService(shelf, books, logger.NoOp())

	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	goneID := primitive.NewObjectID()
	now := time.Now()

	shelf.On("ListByUser", mock.Anything, userID).Return([]*entity.ShelfEntry{
		{ID: primitive.NewObjectID(), UserID: userID, BookID: bookID, CreatedAt: now},
		{ID: primitive.NewObjectID(), UserID: userID, BookID: goneID, CreatedAt: now},
	}, nil)
	books.On("GetByIDs", mock.Anything, []primitive.ObjectID{bookID, goneID}).
		Return([]*entity.Book{{ID: bookID, Title: "Dune"}}, nil)

	items, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dune", items[0].Book.Title)
}

func TestShelfService_List_Empty(t *testing.T) {
	shelf := new(MockShelfRepository)
	books := new(MockBookRepository)
	svc := NewShelfService(shelf, books, logger.NoOp())

	userID := primitive.NewObjectID()
	shelf.On("ListByUser", mock.Anything, userID).Return([]*entity.ShelfEntry{}, nil)

	items, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	assert.Empty(t, items)
	books.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}
