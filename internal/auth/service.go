package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"binder.org/internal/ids"
)

const minPasswordLength = 6

// Service implements registration, login and the admin password reset.
type Service struct {
	users    UserStore
	now      func() time.Time
	tokenTTL time.Duration
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithTokenTTL overrides the issued token lifetime.
func WithTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// NewService constructs Service with optional configuration.
func NewService(users UserStore, opts ...ServiceOption) *Service {
	svc := &Service{
		users:    users,
		now:      time.Now,
		tokenTTL: TokenTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Register creates a new user account and returns its identifier.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		ID:           ids.New(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return u.ID, nil
}

// Login verifies credentials and issues a token carrying the user's persisted
// admin flag. An unknown username and a wrong password collapse into the same
// error to avoid username enumeration.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID, user.IsAdmin, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, s.now().UTC().Add(s.tokenTTL), nil
}

// ResetPassword replaces a user's password hash. Already-issued tokens stay
// valid until expiry; only the next login is affected.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}
