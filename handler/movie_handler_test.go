package handler

import (
	"context"
	"encoding/json"
	"errors"
	"movie-api/model"
	"movie-api/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMovieService struct{ mock.Mock }

func (m *mockMovieService) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Movie), args.Error(1)
}

func (m *mockMovieService) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *mockMovieService) CreateMovie(ctx context.Context, req model.CreateMovieRequest) (*model.Movie, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *mockMovieService) UpdateMovie(ctx context.Context, id string, req model.UpdateMovieRequest) (*model.Movie, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *mockMovieService) DeleteMovie(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// serve routes a single request through pattern so PathValue is populated.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.Handle(pattern, h)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestMovieHandler_ListMovies(t *testing.T) {
	svc := new(mockMovieService)
	h := NewMovieHandler(svc)

	svc.On("ListMovies", mock.Anything).Return(nil, nil).Once()
	rr := serve("GET /movies", ErrorHandlingMiddleware(h.ListMovies), httptest.NewRequest("GET", "/movies", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	svc.On("ListMovies", mock.Anything).Return(nil, errors.New("connection reset")).Once()
	rr = serve("GET /movies", ErrorHandlingMiddleware(h.ListMovies), httptest.NewRequest("GET", "/movies", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error: connection reset", decodeAppError(t, rr).Message)
}

func TestMovieHandler_GetMovie(t *testing.T) {
	svc := new(mockMovieService)
	h := NewMovieHandler(svc)
	get := func(id string) *httptest.ResponseRecorder {
		return serve("GET /movies/{id}", ErrorHandlingMiddleware(h.GetMovie), httptest.NewRequest("GET", "/movies/"+id, nil))
	}

	svc.On("GetMovie", mock.Anything, "m1").Return(&model.Movie{ID: "m1", Title: "Ponyo"}, nil).Once()
	svc.On("GetMovie", mock.Anything, "missing").
		Return(nil, errors.Join(service.ErrMovieNotFound, errors.New("mongo: no documents in result"))).Once()
	svc.On("GetMovie", mock.Anything, "zzz").Return(nil, service.ErrInvalidMovieID).Once()

	rr := get("m1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Ponyo"`)

	rr = get("missing")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), "mongo")

	rr = get("zzz")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertExpectations(t)
}

func TestMovieHandler_CreateMovie(t *testing.T) {
	svc := new(mockMovieService)
	h := NewMovieHandler(svc)
	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/movies", strings.NewReader(body))
		return serve("POST /movies", ErrorHandlingMiddleware(h.CreateMovie), req)
	}

	t.Run("created", func(t *testing.T) {
		want := model.CreateMovieRequest{Title: "Ponyo", Year: 2008}
		svc.On("CreateMovie", mock.Anything, want).Return(&model.Movie{ID: "m1", Title: "Ponyo", Year: 2008}, nil).Once()

		rr := post(`{"title":"Ponyo","year":2008}`)
		assert.Equal(t, http.StatusCreated, rr.Code)

		var movie model.Movie
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &movie))
		assert.Equal(t, "m1", movie.ID)
		assert.Equal(t, 2008, movie.Year)
	})

	t.Run("missing title", func(t *testing.T) {
		rr := post(`{"year":2008}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		appErr := decodeAppError(t, rr)
		require.Len(t, appErr.Errors, 1)
		assert.Equal(t, "title", appErr.Errors[0].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := post(`{"title":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		svc.On("CreateMovie", mock.Anything, model.CreateMovieRequest{Title: "Arietty"}).
			Return(nil, errors.New("disk full")).Once()

		rr := post(`{"title":"Arietty"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Error: disk full", decodeAppError(t, rr).Message)
	})
}

func TestMovieHandler_UpdateMovie(t *testing.T) {
	svc := new(mockMovieService)
	h := NewMovieHandler(svc)
	put := func(id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", "/movies/"+id, strings.NewReader(body))
		return serve("PUT /movies/{id}", ErrorHandlingMiddleware(h.UpdateMovie), req)
	}

	featured := true
	svc.On("UpdateMovie", mock.Anything, "m1", model.UpdateMovieRequest{Featured: &featured}).
		Return(&model.Movie{ID: "m1", Title: "Ponyo", Featured: true}, nil).Once()
	svc.On("UpdateMovie", mock.Anything, "missing", mock.Anything).Return(nil, service.ErrMovieNotFound).Once()

	rr := put("m1", `{"featured":true}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"featured":true`)

	rr = put("missing", `{"featured":true}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = put("m1", `{"year":1500}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertExpectations(t)
}

func TestMovieHandler_DeleteMovie(t *testing.T) {
	svc := new(mockMovieService)
	h := NewMovieHandler(svc)
	del := func(id string) *httptest.ResponseRecorder {
		return serve("DELETE /movies/{id}", ErrorHandlingMiddleware(h.DeleteMovie), httptest.NewRequest("DELETE", "/movies/"+id, nil))
	}

	svc.On("DeleteMovie", mock.Anything, "m1").Return(nil).Once()
	svc.On("DeleteMovie", mock.Anything, "m1").Return(service.ErrMovieNotFound).Once()

	rr := del("m1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "m1 was deleted.", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")

	rr = del("m1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}
