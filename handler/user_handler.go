package handler

import (
	"context"
	"errors"
	"fmt"
	"movie-api/common"
	"movie-api/logger"
	"movie-api/model"
	"movie-api/service"
	"net/http"

	"github.com/sirupsen/logrus"
)

// UserService is the account behaviour the user routes need.
type UserService interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	EnsureOwner(actor, username string) error
	UpdateUser(ctx context.Context, username string, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (*model.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error)
}

type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// userError maps service errors to responses. notFoundCode differs per route: lookups answer
// 404 while sub-resource and deletion routes answer 400.
func userError(err error, username string, notFoundCode int) *common.AppError {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return common.NewAppError(notFoundCode, fmt.Sprintf("%s was not found", username), err)
	case errors.Is(err, service.ErrUsernameTaken):
		return common.NewAppError(http.StatusBadRequest, "username already exists", err)
	case errors.Is(err, service.ErrPermissionDenied):
		return common.NewAppError(http.StatusBadRequest, "Permission denied", err)
	case errors.Is(err, service.ErrInvalidPassword):
		return common.NewValidationError([]common.FieldError{
			{Field: "password", Message: "password must not be blank or longer than 72 bytes"},
		})
	}
	return common.NewStoreError(err)
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.User
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError
// @Router       /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		return common.NewStoreError(err)
	}
	if users == nil {
		users = []*model.User{}
	}
	common.WriteJSON(w, http.StatusOK, users)
	return nil
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  model.User
// @Failure      404       {object}  common.AppError "User not found"
// @Failure      500       {object}  common.AppError
// @Router       /users/{username} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	username := r.PathValue("username")
	user, err := h.service.GetUser(r.Context(), username)
	if err != nil {
		return userError(err, username, http.StatusNotFound)
	}
	common.WriteJSON(w, http.StatusOK, user)
	return nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user account. The password is stored as a bcrypt hash.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      model.RegisterRequest  true  "User registration details"
// @Success      201   {object}  model.User
// @Failure      400   {object}  common.AppError "Malformed body or username already exists"
// @Failure      422   {object}  common.AppError "Validation failed"
// @Failure      500   {object}  common.AppError
// @Router       /users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return common.NewAppError(http.StatusBadRequest, fmt.Sprintf("%s already exists", req.Username), err)
		}
		return userError(err, req.Username, http.StatusBadRequest)
	}
	common.WriteJSON(w, http.StatusCreated, user)
	return nil
}

// UpdateUser godoc
// @Summary      Update own profile
// @Description  Changes the provided fields of the caller's own profile. A new password is hashed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                   true  "Username"
// @Param        user      body      model.UpdateUserRequest  true  "Fields to change"
// @Success      200       {object}  model.User
// @Failure      400       {object}  common.AppError "Permission denied, malformed body or username taken"
// @Failure      404       {object}  common.AppError "User not found"
// @Failure      422       {object}  common.AppError "Validation failed"
// @Failure      500       {object}  common.AppError
// @Router       /users/{username} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	username := r.PathValue("username")
	actor, _ := UsernameFromContext(r.Context())
	if err := h.service.EnsureOwner(actor, username); err != nil {
		return userError(err, username, http.StatusNotFound)
	}

	var req model.UpdateUserRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(r.Context(), username, req)
	if err != nil {
		return userError(err, username, http.StatusNotFound)
	}
	common.WriteJSON(w, http.StatusOK, user)
	return nil
}

// DeleteUser godoc
// @Summary      Deregister a user
// @Tags         users
// @Produce      plain
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {string}  string  "<username> was deleted."
// @Failure      400       {object}  common.AppError "User not found"
// @Failure      500       {object}  common.AppError
// @Router       /users/{username} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	username := r.PathValue("username")
	if err := h.service.DeleteUser(r.Context(), username); err != nil {
		return userError(err, username, http.StatusBadRequest)
	}
	common.WriteText(w, http.StatusOK, fmt.Sprintf("%s was deleted.", username))
	return nil
}

// AddFavorite godoc
// @Summary      Add a favorite movie
// @Description  Adds the movie to the user's favorites. Adding a movie twice keeps a single entry.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Param        movieId   path      string  true  "Movie ID"
// @Success      200       {object}  model.User
// @Failure      400       {object}  common.AppError "User not found"
// @Failure      500       {object}  common.AppError
// @Router       /users/{username}/movies/{movieId} [post]
func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, movieID := r.PathValue("username"), r.PathValue("movieId")

	user, err := h.service.AddFavorite(r.Context(), username, movieID)
	if err != nil {
		return userError(err, username, http.StatusBadRequest)
	}

	logger.Log.WithFields(logrus.Fields{
		"username": username,
		"movie_id": movieID,
	}).Info("Favorite movie added")
	common.WriteJSON(w, http.StatusOK, user)
	return nil
}

// RemoveFavorite godoc
// @Summary      Remove a favorite movie
// @Tags         favorites
// @Produce      plain
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Param        movieId   path      string  true  "Movie ID"
// @Success      200       {string}  string
// @Failure      400       {object}  common.AppError "User not found"
// @Failure      500       {object}  common.AppError
// @Router       /users/{username}/movies/{movieId} [delete]
func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, movieID := r.PathValue("username"), r.PathValue("movieId")

	if _, err := h.service.RemoveFavorite(r.Context(), username, movieID); err != nil {
		return userError(err, username, http.StatusBadRequest)
	}
	common.WriteText(w, http.StatusOK, fmt.Sprintf("%s was removed from %s's favorites.", movieID, username))
	return nil
}
