package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quillhq/quill/internal/database"
	"github.com/quillhq/quill/internal/database/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on a lookup miss as well as a password
// mismatch; callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// dummyHash is compared against on lookup misses so a miss costs roughly the
// same as a password mismatch.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service manages user credentials.
type Service struct {
	db *database.Client
}

// NewService creates a new credential service.
func NewService(db *database.Client) *Service {
	return &Service{db: db}
}

// Register creates a new user with a bcrypt-hashed password. The email is
// lowercased before storage; a collision surfaces as
// database.ErrDuplicateEmail with no row persisted.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        NormalizeEmail(email),
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.db.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Verify checks an email/password pair and returns the matching user.
func (s *Service) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.db.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// NormalizeEmail lowercases and trims an email address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
