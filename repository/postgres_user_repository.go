package repository

import (
	"context"
	"database/sql"
	"errors"
	"movie-api/logger"
	"movie-api/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const userColumns = `id, username, password, email, birthday, favorite_movies`

const (
	selectUsersSQL          = `SELECT ` + userColumns + ` FROM users ORDER BY username`
	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	insertUserSQL           = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	updateUserSQL           = `UPDATE users SET
	username = COALESCE($2, username),
	password = COALESCE($3, password),
	email = COALESCE($4, email),
	birthday = COALESCE($5, birthday)
	WHERE username = $1
	RETURNING ` + userColumns
	deleteUserSQL  = `DELETE FROM users WHERE username = $1`
	addFavoriteSQL = `UPDATE users SET favorite_movies = CASE
	WHEN $2::text = ANY(favorite_movies) THEN favorite_movies
	ELSE array_append(favorite_movies, $2::text) END
	WHERE username = $1
	RETURNING ` + userColumns
	removeFavoriteSQL = `UPDATE users SET favorite_movies = array_remove(favorite_movies, $2::text)
	WHERE username = $1
	RETURNING ` + userColumns
)

// uniqueViolation is the Postgres error code for a unique constraint failure.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func scanUser(row rowScanner) (*model.User, error) {
	var (
		u         model.User
		birthday  sql.NullTime
		favorites pq.StringArray
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &birthday, &favorites); err != nil {
		return nil, err
	}
	if birthday.Valid {
		b := birthday.Time
		u.Birthday = &b
	}
	u.FavoriteMovies = []string(favorites)
	if u.FavoriteMovies == nil {
		u.FavoriteMovies = []string{}
	}
	return &u, nil
}

// PostgresUserRepository implements IUserRepository with database/sql.
type PostgresUserRepository struct {
	DB *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.DB.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for users")
		return nil, err
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to scan user row")
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.queryUser(ctx, "get user", selectUserByUsernameSQL, username)
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	id := uuid.NewString()
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  id,
		"username": user.Username,
	})
	log.Info("Executing query to create a new user")

	if user.FavoriteMovies == nil {
		user.FavoriteMovies = []string{}
	}
	_, err := r.DB.ExecContext(ctx, insertUserSQL, id, user.Username, user.Password, user.Email,
		nullable(user.Birthday), pq.Array(user.FavoriteMovies))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	user.ID = id
	return nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, username string, p model.UserPatch) (*model.User, error) {
	return r.queryUser(ctx, "update user", updateUserSQL, username,
		nullable(p.Username), nullable(p.Password), nullable(p.Email), nullable(p.Birthday))
}

func (r *PostgresUserRepository) Delete(ctx context.Context, username string) error {
	log := logger.Log.WithField("username", username)
	log.Info("Executing query to delete user")

	res, err := r.DB.ExecContext(ctx, deleteUserSQL, username)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete user query")
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

func (r *PostgresUserRepository) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	return r.queryUser(ctx, "add favorite", addFavoriteSQL, username, movieID)
}

func (r *PostgresUserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	return r.queryUser(ctx, "remove favorite", removeFavoriteSQL, username, movieID)
}

// queryUser runs a statement returning a single user row and maps the store's error cases.
func (r *PostgresUserRepository) queryUser(ctx context.Context, op, query string, args ...interface{}) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case isUniqueViolation(err):
			return nil, ErrConflict
		}
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"operation": op,
			"username":  args[0],
		}).Error("Failed to execute user query")
		return nil, err
	}
	return u, nil
}
