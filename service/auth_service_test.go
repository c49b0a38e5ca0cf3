// file: service/auth_service_test.go

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"movie-api/model"
	"movie-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTokenOptions = TokenOptions{Secret: "test-secret", Issuer: "movie-api", TTL: time.Hour}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(nil, testTokenOptions)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hashedPassword)

	assert.True(t, authService.CheckPasswordHash(password, hashedPassword))
	assert.False(t, authService.CheckPasswordHash("notMyPassword", hashedPassword))

	_, err = authService.HashPassword("   ")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = authService.HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	// bcrypt counts bytes, not characters.
	_, err = authService.HashPassword(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = authService.HashPassword(strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestAuthService_Tokens(t *testing.T) {
	authService := NewAuthService(nil, testTokenOptions)

	t.Run("round trip", func(t *testing.T) {
		token, err := authService.GenerateToken("alice1")
		require.NoError(t, err)

		claims, err := authService.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice1", claims.Username)
		assert.Equal(t, "alice1", claims.Subject)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(nil, TokenOptions{Secret: "other", Issuer: "movie-api", TTL: time.Hour})
		token, err := other.GenerateToken("alice1")
		require.NoError(t, err)

		_, err = authService.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewAuthService(nil, TokenOptions{Secret: "test-secret", Issuer: "movie-api", TTL: -time.Minute})
		token, err := expired.GenerateToken("alice1")
		require.NoError(t, err)

		_, err = authService.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &model.AppClaims{Username: "alice1"})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = authService.ParseToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := authService.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepo)
	authService := NewAuthService(repo, testTokenOptions)

	hash, err := authService.HashPassword("password1")
	require.NoError(t, err)
	stored := &model.User{ID: "u1", Username: "alice1", Password: hash}

	t.Run("success", func(t *testing.T) {
		repo.On("GetByUsername", mock.Anything, "alice1").Return(stored, nil).Once()

		user, token, err := authService.Login(ctx, "alice1", "password1")
		require.NoError(t, err)
		assert.Equal(t, "alice1", user.Username)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo.On("GetByUsername", mock.Anything, "alice1").Return(stored, nil).Once()

		_, _, err := authService.Login(ctx, "alice1", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo.On("GetByUsername", mock.Anything, "ghost1").Return(nil, repository.ErrNotFound).Once()

		_, _, err := authService.Login(ctx, "ghost1", "password1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	repo.AssertExpectations(t)
}
