package service

import (
	"context"
	"errors"
	"fmt"
	"movie-api/logger"
	"movie-api/model"
	"movie-api/repository"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// ErrInvalidPassword is returned for passwords bcrypt cannot hash: blank or longer than 72 bytes.
	ErrInvalidPassword = errors.New("password must not be blank or longer than 72 bytes")
)

const maxPasswordBytes = 72

// TokenOptions configures JWT issuance.
type TokenOptions struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// AuthService hashes passwords, issues and verifies bearer tokens.
type AuthService struct {
	users repository.IUserRepository
	opts  TokenOptions
	cost  int
}

func NewAuthService(users repository.IUserRepository, opts TokenOptions) *AuthService {
	return &AuthService{users: users, opts: opts, cost: bcrypt.DefaultCost}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" || len(password) > maxPasswordBytes {
		return "", ErrInvalidPassword
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken signs an HS256 token whose subject is the username.
func (s *AuthService) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.opts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.opts.Secret))
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.opts.Secret), nil
	}, jwt.WithIssuer(s.opts.Issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Username == "" || claims.Subject != claims.Username {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login checks the credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		logger.Log.WithField("username", username).Warn("Login attempt with wrong password")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
