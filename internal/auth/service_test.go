package auth

import (
	"context"
	"testing"

	"papertrade-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return &Service{DB: db}, db
}

func TestRegister_SeedsCashAndHashesPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	u, err := svc.Register(context.Background(), "alice", "correct horse")
	require.NoError(t, err)

	assert.True(t, u.Cash.Equal(decimal.RequireFromString("10000.00")), "cash = %s", u.Cash)
	assert.NotEqual(t, "correct horse", u.Hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte("correct horse")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, db := setupAuthService(t)

	_, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "pw2")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Authenticate(context.Background(), "nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, _ := setupAuthService(t)
	_, err := svc.Register(context.Background(), "alice", "right")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_Success(t *testing.T) {
	svc, _ := setupAuthService(t)
	created, err := svc.Register(context.Background(), "alice", "right")
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "alice", "right")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, u.UserID)
	assert.Equal(t, "alice", u.Username)
}
