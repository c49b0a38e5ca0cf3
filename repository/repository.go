// file: repository/repository.go

package repository

import (
	"context"
	"errors"
	"movie-api/model"
)

// Errors shared by every store backend. Anything else a repository returns is a store failure.
var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("username already exists")
	ErrInvalidID = errors.New("invalid id")
)

// IMovieRepository defines the contract for movie storage.
type IMovieRepository interface {
	List(ctx context.Context) ([]*model.Movie, error)
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	// Create stores movie and sets its ID.
	Create(ctx context.Context, movie *model.Movie) error
	Update(ctx context.Context, id string, patch model.MoviePatch) (*model.Movie, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// IUserRepository defines the contract for user storage. Users are addressed by username.
type IUserRepository interface {
	List(ctx context.Context) ([]*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Create stores user and sets its ID. A taken username yields ErrConflict.
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, username string, patch model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (*model.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error)
}

// Repositories groups the stores for one backend.
type Repositories struct {
	Movies IMovieRepository
	Users  IUserRepository
	// Close releases the backend's connections.
	Close func(ctx context.Context) error
}
