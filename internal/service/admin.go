package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

// UserDetail is the admin view of one account, with book references
// populated. Credential and OTP fields never serialize.
type UserDetail struct {
	User       *entity.User        `json:"user"`
	LikedBooks []*entity.Book      `json:"likedBooks"`
	Cart       []PopulatedCartItem `json:"cart"`
}

type UserStats struct {
	TotalUsers int64 `json:"totalUsers"`
	AdminCount int64 `json:"adminCount"`
	UserCount  int64 `json:"userCount"`
}

type AdminService struct {
	users repository.UserRepository
	books repository.BookRepository
	log   logger.Logger
}

func NewAdminService(users repository.UserRepository, books repository.BookRepository, log logger.Logger) *AdminService {
	return &AdminService{
		users: users,
		books: books,
		log:   log.With("service", "admin"),
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) GetUser(ctx context.Context, id primitive.ObjectID) (*UserDetail, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	detail := &UserDetail{
		User:       user,
		LikedBooks: []*entity.Book{},
		Cart:       []PopulatedCartItem{},
	}

	if len(user.LikedBooks) > 0 {
		liked, err := s.books.GetByIDs(ctx, user.LikedBooks)
		if err != nil {
			return nil, fmt.Errorf("failed to load liked books: %w", err)
		}
		detail.LikedBooks = liked
	}

	if len(user.Cart) > 0 {
		ids := make([]primitive.ObjectID, 0, len(user.Cart))
		for _, item := range user.Cart {
			ids = append(ids, item.BookID)
		}
		books, err := s.books.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart books: %w", err)
		}
		byID := make(map[primitive.ObjectID]*entity.Book, len(books))
		for _, b := range books {
			byID[b.ID] = b
		}
		for _, item := range user.Cart {
			if book, ok := byID[item.BookID]; ok {
				detail.Cart = append(detail.Cart, PopulatedCartItem{Book: book, Quantity: item.Quantity})
			}
		}
	}

	return detail, nil
}

func (s *AdminService) Stats(ctx context.Context) (*UserStats, error) {
	admins, err := s.users.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	regular, err := s.users.CountByRole(ctx, entity.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &UserStats{
		TotalUsers: admins + regular,
		AdminCount: admins,
		UserCount:  regular,
	}, nil
}
