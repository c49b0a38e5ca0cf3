package repository

import (
	"context"
	"sync"
	"testing"

	"movie-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMovieRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMovieRepository()

	first := &model.Movie{Title: "Spirited Away", Year: 2001}
	second := &model.Movie{Title: "Ponyo", Year: 2008}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	movies, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Spirited Away", movies[0].Title)

	title := "Sen to Chihiro"
	updated, err := repo.Update(ctx, first.ID, model.MoviePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, 2001, updated.Year)

	_, err = repo.Update(ctx, "missing", model.MoviePatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrNotFound)
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	alice := &model.User{Username: "alice1", Password: "hash", Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, alice))
	assert.NotEmpty(t, alice.ID)

	assert.ErrorIs(t, repo.Create(ctx, &model.User{Username: "alice1"}), ErrConflict)

	t.Run("favorites are a set", func(t *testing.T) {
		_, err := repo.AddFavorite(ctx, "alice1", "m1")
		require.NoError(t, err)
		u, err := repo.AddFavorite(ctx, "alice1", "m1")
		require.NoError(t, err)
		assert.Equal(t, []string{"m1"}, u.FavoriteMovies)

		u, err = repo.RemoveFavorite(ctx, "alice1", "m1")
		require.NoError(t, err)
		assert.Empty(t, u.FavoriteMovies)

		_, err = repo.AddFavorite(ctx, "nobody", "m1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rename", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &model.User{Username: "bobby1"}))

		taken := "bobby1"
		_, err := repo.Update(ctx, "alice1", model.UserPatch{Username: &taken})
		assert.ErrorIs(t, err, ErrConflict)

		renamed := "alice2"
		u, err := repo.Update(ctx, "alice1", model.UserPatch{Username: &renamed})
		require.NoError(t, err)
		assert.Equal(t, "alice2", u.Username)

		_, err = repo.GetByUsername(ctx, "alice1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returned users do not alias the store", func(t *testing.T) {
		_, err := repo.AddFavorite(ctx, "bobby1", "m1")
		require.NoError(t, err)

		u, err := repo.GetByUsername(ctx, "bobby1")
		require.NoError(t, err)
		u.FavoriteMovies[0] = "tampered"

		again, err := repo.GetByUsername(ctx, "bobby1")
		require.NoError(t, err)
		assert.Equal(t, []string{"m1"}, again.FavoriteMovies)
	})
}

func TestMemoryUserRepository_ConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Create(ctx, &model.User{Username: "racer1"})
		}()
	}
	wg.Wait()
	close(results)

	created := 0
	for err := range results {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, created)
}
