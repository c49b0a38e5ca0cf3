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

// MovieService is the catalog behaviour the movie routes need.
type MovieService interface {
	ListMovies(ctx context.Context) ([]*model.Movie, error)
	GetMovie(ctx context.Context, id string) (*model.Movie, error)
	CreateMovie(ctx context.Context, req model.CreateMovieRequest) (*model.Movie, error)
	UpdateMovie(ctx context.Context, id string, req model.UpdateMovieRequest) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

type MovieHandler struct {
	service MovieService
}

func NewMovieHandler(service MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

func movieError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrMovieNotFound):
		return common.NewAppError(http.StatusNotFound, "Movie not found", err)
	case errors.Is(err, service.ErrInvalidMovieID):
		return common.NewAppError(http.StatusBadRequest, "Invalid movie ID", err)
	}
	return common.NewStoreError(err)
}

// ListMovies godoc
// @Summary      List movies
// @Description  Returns every movie in the catalog.
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Movie
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError
// @Router       /movies [get]
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) *common.AppError {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		return common.NewStoreError(err)
	}
	if movies == nil {
		movies = []*model.Movie{}
	}
	common.WriteJSON(w, http.StatusOK, movies)
	return nil
}

// GetMovie godoc
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Movie ID"
// @Success      200  {object}  model.Movie
// @Failure      400  {object}  common.AppError "Malformed movie ID"
// @Failure      404  {object}  common.AppError "Movie not found"
// @Failure      500  {object}  common.AppError
// @Router       /movies/{id} [get]
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) *common.AppError {
	movie, err := h.service.GetMovie(r.Context(), r.PathValue("id"))
	if err != nil {
		return movieError(err)
	}
	common.WriteJSON(w, http.StatusOK, movie)
	return nil
}

// CreateMovie godoc
// @Summary      Add a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        movie  body      model.CreateMovieRequest  true  "Movie to add"
// @Success      201    {object}  model.Movie
// @Failure      400    {object}  common.AppError "Malformed JSON body"
// @Failure      422    {object}  common.AppError "Validation failed"
// @Failure      500    {object}  common.AppError
// @Router       /movies [post]
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateMovieRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	movie, err := h.service.CreateMovie(r.Context(), req)
	if err != nil {
		return common.NewStoreError(err)
	}
	common.WriteJSON(w, http.StatusCreated, movie)
	return nil
}

// UpdateMovie godoc
// @Summary      Update a movie
// @Description  Applies the provided fields to the movie. Omitted fields keep their value.
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string                    true  "Movie ID"
// @Param        movie  body      model.UpdateMovieRequest  true  "Fields to change"
// @Success      200    {object}  model.Movie
// @Failure      400    {object}  common.AppError
// @Failure      404    {object}  common.AppError "Movie not found"
// @Failure      422    {object}  common.AppError "Validation failed"
// @Failure      500    {object}  common.AppError
// @Router       /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdateMovieRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	movie, err := h.service.UpdateMovie(r.Context(), r.PathValue("id"), req)
	if err != nil {
		return movieError(err)
	}
	common.WriteJSON(w, http.StatusOK, movie)
	return nil
}

// DeleteMovie godoc
// @Summary      Delete a movie
// @Tags         movies
// @Produce      plain
// @Security     BearerAuth
// @Param        id   path      string  true  "Movie ID"
// @Success      200  {string}  string  "<id> was deleted."
// @Failure      400  {object}  common.AppError
// @Failure      404  {object}  common.AppError "Movie not found"
// @Failure      500  {object}  common.AppError
// @Router       /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) *common.AppError {
	id := r.PathValue("id")
	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		return movieError(err)
	}

	logger.Log.WithFields(logrus.Fields{
		"movie_id":   id,
		"request_id": RequestIDFromContext(r.Context()),
	}).Info("Delete movie request completed")
	common.WriteText(w, http.StatusOK, fmt.Sprintf("%s was deleted.", id))
	return nil
}
