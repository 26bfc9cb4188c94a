package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/yogeshkhant77/Booksy/internal/adapter/email"
	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/platform/metrics"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

// AuthResult is returned from register and login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type AuthService struct {
	users       repository.UserRepository
	mailer      email.Mailer
	tokens      *TokenManager
	publisher   EventPublisher
	metrics     *metrics.Manager
	otpTTL      time.Duration
	adminEmails map[string]struct{}
	log         logger.Logger
}

func NewAuthService(
	users repository.UserRepository,
	mailer email.Mailer,
	tokens *TokenManager,
	publisher EventPublisher,
	m *metrics.Manager,
	otpTTL time.Duration,
	adminEmails []string,
	log logger.Logger,
) *AuthService {
	allowlist := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allowlist[normalizeEmail(e)] = struct{}{}
	}
	return &AuthService{
		users:       users,
		mailer:      mailer,
		tokens:      tokens,
		publisher:   publisher,
		metrics:     m,
		otpTTL:      otpTTL,
		adminEmails: allowlist,
		log:         log.With("service", "auth"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and issues a session token. Accounts whose
// email is on the admin allowlist get the admin role at creation time.
func (s *AuthService) Register(ctx context.Context, name, emailAddr, password string) (*AuthResult, error) {
	emailAddr = normalizeEmail(emailAddr)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := entity.RoleUser
	if _, ok := s.adminEmails[emailAddr]; ok {
		role = entity.RoleAdmin
	}

	user := &entity.User{
		Name:     strings.TrimSpace(name),
		Email:    emailAddr,
		Password: string(hash),
		Role:     role,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	s.metrics.UsersRegisteredTotal.Inc()
	s.log.Infof("user registered: %s (role=%s)", emailAddr, role)

	token, err := s.tokens.Issue(id.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password fail identically so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// ForgotPassword issues a reset OTP and mails it. An unknown email is a
// silent success so the endpoint cannot be used for account enumeration.
// A mail delivery failure is surfaced as ErrOTPDelivery rather than
// swallowed, trading a narrow enumeration signal for operability.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.otpTTL)
	if err := s.users.SetResetOTP(ctx, user.ID, otp, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset OTP: %w", err)
	}

	if err := s.mailer.SendPasswordResetOTP(user.Email, user.Name, otp); err != nil {
		s.log.Errorf("OTP delivery to %s failed: %v", user.Email, err)
		return ErrOTPDelivery
	}

	s.log.Infof("reset OTP issued for %s", user.Email)
	return nil
}

// VerifyOTP checks the submitted code. The stored OTP is NOT cleared on a
// successful check; only a completed reset (or detected expiry) clears it.
func (s *AuthService) VerifyOTP(ctx context.Context, emailAddr, code string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	return s.checkOTP(ctx, user, code)
}

// ResetPassword re-validates the OTP and swaps the password hash. The hash
// update and OTP clearing happen in a single store update.
func (s *AuthService) ResetPassword(ctx context.Context, emailAddr, code, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.checkOTP(ctx, user, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.ResetPassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.metrics.PasswordResetsTotal.Inc()
	s.log.Infof("password reset completed for %s", user.Email)
	s.publish(ctx, SubjectPasswordReset, PasswordResetEvent{UserID: user.ID.Hex()})
	return nil
}

// checkOTP applies the shared validation rules: a missing code, an expired
// code (cleared as a side effect), or a mismatch all collapse into the same
// ErrInvalidOTP so the response never reveals which condition fired.
func (s *AuthService) checkOTP(ctx context.Context, user *entity.User, code string) error {
	if user.ResetOTP == "" || user.ResetOTPExp == nil {
		return ErrInvalidOTP
	}
	if user.OTPExpired(time.Now()) {
		if err := s.users.ClearResetOTP(ctx, user.ID); err != nil {
			s.log.Errorf("failed to clear expired OTP for %s: %v", user.Email, err)
		}
		return ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(user.ResetOTP), []byte(code)) != 1 {
		return ErrInvalidOTP
	}
	return nil
}

// GetUser resolves a token subject to an account. Used by the middleware.
func (s *AuthService) GetUser(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// Tokens exposes the token manager for the middleware.
func (s *AuthService) Tokens() *TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, payload); err != nil {
		s.log.Errorf("failed to publish %s: %v", subject, err)
	}
}
