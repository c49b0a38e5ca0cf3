// file: service/movie_service.go

package service

import (
	"context"
	"encoding/json"
	"errors"
	"movie-api/logger"
	"movie-api/model"
	"movie-api/repository"
	"time"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrInvalidMovieID = errors.New("invalid movie id")
)

const movieListCacheKey = "movies:all"

func movieCacheKey(id string) string {
	return "movies:" + id
}

// MovieService serves the catalog, using a cache-aside strategy when a cache is configured.
type MovieService struct {
	repo     repository.IMovieRepository
	cache    ICacheClient
	cacheTTL time.Duration
}

// NewMovieService creates a MovieService. cache may be nil to disable caching.
func NewMovieService(repo repository.IMovieRepository, cache ICacheClient, cacheTTL time.Duration) *MovieService {
	return &MovieService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func mapMovieError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrMovieNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return ErrInvalidMovieID
	}
	return err
}

// cached reads key into dest. A miss or an unreadable entry both report false.
func (s *MovieService) cached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *MovieService) store(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("Failed to populate movie cache")
	}
}

func (s *MovieService) invalidate(ctx context.Context, ids ...string) {
	if s.cache == nil {
		return
	}
	keys := []string{movieListCacheKey}
	for _, id := range ids {
		keys = append(keys, movieCacheKey(id))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to invalidate movie cache")
	}
}

func (s *MovieService) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	var movies []*model.Movie
	if s.cached(ctx, movieListCacheKey, &movies) {
		return movies, nil
	}

	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, movieListCacheKey, movies)
	return movies, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	var movie model.Movie
	if s.cached(ctx, movieCacheKey(id), &movie) {
		return &movie, nil
	}

	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMovieError(err)
	}
	s.store(ctx, movieCacheKey(id), found)
	return found, nil
}

func (s *MovieService) CreateMovie(ctx context.Context, req model.CreateMovieRequest) (*model.Movie, error) {
	movie := req.Movie()
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logger.Log.WithField("movie_id", movie.ID).WithField("title", movie.Title).Info("Movie created")
	return movie, nil
}

func (s *MovieService) UpdateMovie(ctx context.Context, id string, req model.UpdateMovieRequest) (*model.Movie, error) {
	movie, err := s.repo.Update(ctx, id, req.Patch())
	if err != nil {
		return nil, mapMovieError(err)
	}
	s.invalidate(ctx, id)
	return movie, nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapMovieError(err)
	}
	s.invalidate(ctx, id)

	logger.Log.WithField("movie_id", id).Info("Movie deleted")
	return nil
}

// SeedCatalog fills an empty catalog with DefaultCatalog and returns how many movies it added.
func (s *MovieService) SeedCatalog(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for _, m := range DefaultCatalog() {
		if err := s.repo.Create(ctx, m); err != nil {
			return 0, err
		}
	}
	s.invalidate(ctx)
	return len(DefaultCatalog()), nil
}
