package repository

import (
	"context"
	"movie-api/model"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryMovieRepository keeps movies in process memory.
type MemoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[string]model.Movie
	order  []string
}

func NewMemoryMovieRepository() *MemoryMovieRepository {
	return &MemoryMovieRepository{movies: make(map[string]model.Movie)}
}

func (r *MemoryMovieRepository) List(ctx context.Context) ([]*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]*model.Movie, 0, len(r.order))
	for _, id := range r.order {
		m := r.movies[id]
		movies = append(movies, &m)
	}
	return movies, nil
}

func (r *MemoryMovieRepository) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (r *MemoryMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie.ID = uuid.NewString()
	r.movies[movie.ID] = *movie
	r.order = append(r.order, movie.ID)
	return nil
}

func (r *MemoryMovieRepository) Update(ctx context.Context, id string, patch model.MoviePatch) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated := model.ApplyMoviePatch(m, patch)
	r.movies[id] = updated
	return &updated, nil
}

func (r *MemoryMovieRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.movies[id]; !ok {
		return ErrNotFound
	}
	delete(r.movies, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryMovieRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.movies)), nil
}

// MemoryUserRepository keeps users in process memory, keyed by username. The map key
// doubles as the uniqueness constraint.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func copyUser(u model.User) *model.User {
	u.FavoriteMovies = append([]string{}, u.FavoriteMovies...)
	return &u
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.users[user.Username]; taken {
		return ErrConflict
	}
	user.ID = uuid.NewString()
	if user.FavoriteMovies == nil {
		user.FavoriteMovies = []string{}
	}
	r.users[user.Username] = *copyUser(*user)
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, username string, patch model.UserPatch) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	updated := model.ApplyUserPatch(u, patch)
	if updated.Username != username {
		if _, taken := r.users[updated.Username]; taken {
			return nil, ErrConflict
		}
		delete(r.users, username)
	}
	r.users[updated.Username] = updated
	return copyUser(updated), nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; !ok {
		return ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *MemoryUserRepository) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	return r.mutateFavorites(username, func(u *model.User) { u.AddFavorite(movieID) })
}

func (r *MemoryUserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	return r.mutateFavorites(username, func(u *model.User) { u.RemoveFavorite(movieID) })
}

func (r *MemoryUserRepository) mutateFavorites(username string, fn func(u *model.User)) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := copyUser(stored)
	fn(u)
	r.users[username] = *u
	return copyUser(*u), nil
}

// NewMemoryRepositories returns an empty in-memory backend.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Movies: NewMemoryMovieRepository(),
		Users:  NewMemoryUserRepository(),
		Close:  func(context.Context) error { return nil },
	}
}
