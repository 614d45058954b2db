package auth

import (
	"context"
	"errors"

	"papertrade-backend/internal/models"
	"papertrade-backend/internal/pkg/apperr"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Every new account starts with this much virtual cash.
var SeedCash = decimal.RequireFromString("10000.00")

// Service is the credential store: it owns registration and password
// verification against the users table. Plaintext passwords never leave
// this package.
type Service struct {
	DB *gorm.DB
}

// Register creates a user with a bcrypt hash and the seed cash balance.
// Duplicate usernames are rejected before the insert; the unique index is
// the backstop for races.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "password hash failed", err)
	}

	u := models.User{
		Username: username,
		Hash:     string(hash),
		Cash:     SeedCash,
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, apperr.Wrap(apperr.Internal, "user create failed", err)
	}
	return &u, nil
}

// Authenticate verifies username and password and returns the user for the
// caller to bind to a session.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}
