package service

import (
	"context"
	"errors"
	"fmt"
	"movie-api/logger"
	"movie-api/model"
	"movie-api/repository"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrPermissionDenied = errors.New("permission denied")
)

// PasswordHasher hashes clear text passwords.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// UserService handles user-related business logic.
type UserService struct {
	repo   repository.IUserRepository
	hasher PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.IUserRepository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrUsernameTaken
	}
	return err
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}

// Register creates a user after checking the username is free. The store's uniqueness
// constraint catches a registration that races past the check.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	log := logger.Log.WithField("username", req.Username)

	_, err := s.repo.GetByUsername(ctx, req.Username)
	switch {
	case err == nil:
		log.Info("Registration rejected, username already exists")
		return nil, ErrUsernameTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hashed, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		Password:       hashed,
		Email:          req.Email,
		FavoriteMovies: []string{},
	}
	if req.Birthday != "" {
		birthday, err := time.Parse(model.DateLayout, req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("invalid birthday: %w", err)
		}
		user.Birthday = &birthday
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, mapUserError(err)
	}

	log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// EnsureOwner rejects profile changes made on behalf of another user.
func (s *UserService) EnsureOwner(actor, username string) error {
	if actor == "" || actor != username {
		logger.Log.WithFields(logrus.Fields{
			"actor":  actor,
			"target": username,
		}).Warn("Permission denied for updating another user's profile")
		return ErrPermissionDenied
	}
	return nil
}

// UpdateUser merges the provided fields into the stored profile, hashing a new password.
func (s *UserService) UpdateUser(ctx context.Context, username string, req model.UpdateUserRequest) (*model.User, error) {
	patch := model.UserPatch{
		Username: req.Username,
		Email:    req.Email,
	}
	if req.Password != nil {
		hashed, err := s.hasher.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("could not hash password: %w", err)
		}
		patch.Password = &hashed
	}
	if req.Birthday != nil {
		birthday, err := time.Parse(model.DateLayout, *req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("invalid birthday: %w", err)
		}
		patch.Birthday = &birthday
	}

	user, err := s.repo.Update(ctx, username, patch)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	if err := s.repo.Delete(ctx, username); err != nil {
		return mapUserError(err)
	}
	logger.Log.WithField("username", username).Info("User deregistered")
	return nil
}

func (s *UserService) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	user, err := s.repo.AddFavorite(ctx, username, movieID)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}

func (s *UserService) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	user, err := s.repo.RemoveFavorite(ctx, username, movieID)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}
