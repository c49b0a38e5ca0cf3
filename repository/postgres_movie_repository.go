package repository

import (
	"context"
	"database/sql"
	"errors"
	"movie-api/logger"
	"movie-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const movieColumns = `id, title, year, description, genre_name, genre_description,
	director_name, director_bio, director_birth, director_death, image_url, featured`

const (
	selectMoviesSQL    = `SELECT ` + movieColumns + ` FROM movies ORDER BY title`
	selectMovieByIDSQL = `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	insertMovieSQL     = `INSERT INTO movies (` + movieColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	updateMovieSQL = `UPDATE movies SET
	title = COALESCE($2, title),
	year = COALESCE($3, year),
	description = COALESCE($4, description),
	genre_name = COALESCE($5, genre_name),
	genre_description = COALESCE($6, genre_description),
	director_name = COALESCE($7, director_name),
	director_bio = COALESCE($8, director_bio),
	director_birth = COALESCE($9, director_birth),
	director_death = COALESCE($10, director_death),
	image_url = COALESCE($11, image_url),
	featured = COALESCE($12, featured)
	WHERE id = $1
	RETURNING ` + movieColumns
	deleteMovieSQL = `DELETE FROM movies WHERE id = $1`
	countMoviesSQL = `SELECT COUNT(*) FROM movies`
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Year, &m.Description, &m.Genre.Name, &m.Genre.Description,
		&m.Director.Name, &m.Director.Bio, &m.Director.Birth, &m.Director.Death, &m.ImageURL, &m.Featured)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// nullable turns a nil pointer into SQL NULL so COALESCE keeps the stored value.
func nullable[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// PostgresMovieRepository implements IMovieRepository with database/sql.
type PostgresMovieRepository struct {
	DB *sql.DB
}

func NewPostgresMovieRepository(db *sql.DB) *PostgresMovieRepository {
	return &PostgresMovieRepository{DB: db}
}

func (r *PostgresMovieRepository) List(ctx context.Context) ([]*model.Movie, error) {
	log := logger.Log
	log.Debug("Executing query to list movies")

	rows, err := r.DB.QueryContext(ctx, selectMoviesSQL)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for movies")
		return nil, err
	}
	defer rows.Close()

	movies := []*model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan movie row")
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *PostgresMovieRepository) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	m, err := scanMovie(r.DB.QueryRowContext(ctx, selectMovieByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).WithField("movie_id", id).Error("Failed to execute get movie query")
		return nil, err
	}
	return m, nil
}

func (r *PostgresMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	id := uuid.NewString()
	log := logger.Log.WithFields(logrus.Fields{
		"movie_id": id,
		"title":    movie.Title,
	})
	log.Info("Executing query to create a new movie")

	_, err := r.DB.ExecContext(ctx, insertMovieSQL, id, movie.Title, movie.Year, movie.Description,
		movie.Genre.Name, movie.Genre.Description, movie.Director.Name, movie.Director.Bio,
		movie.Director.Birth, movie.Director.Death, movie.ImageURL, movie.Featured)
	if err != nil {
		log.WithError(err).Error("Failed to execute create movie query")
		return err
	}
	movie.ID = id
	return nil
}

func (r *PostgresMovieRepository) Update(ctx context.Context, id string, p model.MoviePatch) (*model.Movie, error) {
	log := logger.Log.WithField("movie_id", id)
	log.Info("Executing query to update movie")

	var genreName, genreDescription, directorName, directorBio, directorBirth, directorDeath interface{}
	if p.Genre != nil {
		genreName, genreDescription = p.Genre.Name, p.Genre.Description
	}
	if p.Director != nil {
		directorName, directorBio = p.Director.Name, p.Director.Bio
		directorBirth, directorDeath = p.Director.Birth, p.Director.Death
	}

	row := r.DB.QueryRowContext(ctx, updateMovieSQL, id, nullable(p.Title), nullable(p.Year),
		nullable(p.Description), genreName, genreDescription, directorName, directorBio,
		directorBirth, directorDeath, nullable(p.ImageURL), nullable(p.Featured))
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.WithError(err).Error("Failed to execute update movie query")
		return nil, err
	}
	return m, nil
}

func (r *PostgresMovieRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log.WithField("movie_id", id)
	log.Info("Executing query to delete movie")

	res, err := r.DB.ExecContext(ctx, deleteMovieSQL, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete movie query")
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresMovieRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, countMoviesSQL).Scan(&n)
	return n, err
}
