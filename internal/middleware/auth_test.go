package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/platform/metrics"
	"github.com/yogeshkhant77/Booksy/internal/repository"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

// stubUserRepo serves GetByID from a fixed map. The authenticator only
// needs user lookup by ID.
type stubUserRepo struct {
	users map[primitive.ObjectID]*entity.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) SetResetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	return nil
}

func (s *stubUserRepo) ClearResetOTP(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubUserRepo) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return nil
}

func (s *stubUserRepo) AddLikedBook(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return nil
}

func (s *stubUserRepo) RemoveLikedBook(ctx context.Context, userID, bookID primitive.ObjectID) error {
	return nil
}

func (s *stubUserRepo) ReplaceCart(ctx context.Context, userID primitive.ObjectID, items []entity.CartItem) error {
	return nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]*entity.User, error) { return nil, nil }

func (s *stubUserRepo) CountByRole(ctx context.Context, role string) (int64, error) { return 0, nil }

func newTestAuth(t *testing.T, users map[primitive.ObjectID]*entity.User) *service.AuthService {
	t.Helper()
	return service.NewAuthService(
		&stubUserRepo{users: users},
		nil,
		service.NewTokenManager("test-secret", time.Hour),
		nil,
		metrics.NewManager("booksy_mw_test"),
		10*time.Minute,
		nil,
		logger.NoOp(),
	)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator_MissingToken(t *testing.T) {
	auth := newTestAuth(t, nil)
	h := Authenticator(auth, logger.NoOp())(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_MalformedHeader(t *testing.T) {
	auth := newTestAuth(t, nil)
	h := Authenticator(auth, logger.NoOp())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_GarbageToken(t *testing.T) {
	auth := newTestAuth(t, nil)
	h := Authenticator(auth, logger.NoOp())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_ValidTokenButUserGone(t *testing.T) {
	auth := newTestAuth(t, nil)
	token, err := auth.Tokens().Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	h := Authenticator(auth, logger.NoOp())(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_AttachesUser(t *testing.T) {
	userID := primitive.NewObjectID()
	auth := newTestAuth(t, map[primitive.ObjectID]*entity.User{
		userID: {ID: userID, Email: "a@x.com", Role: entity.RoleUser},
	})
	token, err := auth.Tokens().Issue(userID.Hex())
	require.NoError(t, err)

	var seen *entity.User
	h := Authenticator(auth, logger.NoOp())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, userID, seen.ID)
}

func TestAdminOnly_ForbidsRegularUser(t *testing.T) {
	h := AdminOnly(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), &entity.User{Role: entity.RoleUser}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	h := AdminOnly(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), &entity.User{Role: entity.RoleAdmin}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnly_NoUserIsUnauthorized(t *testing.T) {
	h := AdminOnly(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
