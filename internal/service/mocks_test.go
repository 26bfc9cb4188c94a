package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) SetResetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	args := m.Called(ctx, id, code, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearResetOTP(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) AddLikedBook(ctx context.Context, userID, bookID primitive.ObjectID) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveLikedBook(ctx context.Context, userID, bookID primitive.ObjectID) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockUserRepository) ReplaceCart(ctx context.Context, userID primitive.ObjectID, items []entity.CartItem) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *entity.Book) (primitive.ObjectID, error) {
	args := m.Called(ctx, book)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookRepository) GetByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Book, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]*entity.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *entity.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookCache struct {
	mock.Mock
}

func (m *MockBookCache) Get(ctx context.Context, id primitive.ObjectID) (*entity.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookCache) Set(ctx context.Context, book *entity.Book, ttl time.Duration) error {
	args := m.Called(ctx, book, ttl)
	return args.Error(0)
}

func (m *MockBookCache) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockShelfRepository struct {
	mock.Mock
}

func (m *MockShelfRepository) Add(ctx context.Context, entry *entity.ShelfEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockShelfRepository) Remove(ctx context.Context, userID, bookID primitive.ObjectID) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockShelfRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*entity.ShelfEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ShelfEntry), args.Error(1)
}

func (m *MockShelfRepository) Exists(ctx context.Context, userID, bookID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordResetOTP(toEmail, toName, otp string) error {
	args := m.Called(toEmail, toName, otp)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	args := m.Called(ctx, subject, payload)
	return args.Error(0)
}
