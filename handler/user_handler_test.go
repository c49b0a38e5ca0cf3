package handler

import (
	"context"
	"errors"
	"fmt"
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

type mockUserService struct{ mock.Mock }

func (m *mockUserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) EnsureOwner(actor, username string) error {
	args := m.Called(actor, username)
	return args.Error(0)
}

func (m *mockUserService) UpdateUser(ctx context.Context, username string, req model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *mockUserService) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	args := m.Called(ctx, username, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	args := m.Called(ctx, username, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestUserHandler_GetUser(t *testing.T) {
	svc := new(mockUserService)
	h := NewUserHandler(svc)
	get := func(username string) *httptest.ResponseRecorder {
		return serve("GET /users/{username}", ErrorHandlingMiddleware(h.GetUser), httptest.NewRequest("GET", "/users/"+username, nil))
	}

	svc.On("GetUser", mock.Anything, "alice1").
		Return(&model.User{ID: "u1", Username: "alice1", Password: "$2a$10$hash"}, nil).Once()
	svc.On("GetUser", mock.Anything, "ghost1").Return(nil, service.ErrUserNotFound).Once()

	rr := get("alice1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"alice1"`)
	assert.NotContains(t, rr.Body.String(), "hash")

	rr = get("ghost1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}

func TestUserHandler_Register(t *testing.T) {
	svc := new(mockUserService)
	h := NewUserHandler(svc)
	post := func(body string) *httptest.ResponseRecorder {
		return serve("POST /users", ErrorHandlingMiddleware(h.Register), httptest.NewRequest("POST", "/users", strings.NewReader(body)))
	}

	t.Run("short username", func(t *testing.T) {
		rr := post(`{"username":"abcd","password":"pw","email":"a@b.co"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		appErr := decodeAppError(t, rr)
		require.Len(t, appErr.Errors, 1)
		assert.Equal(t, "username", appErr.Errors[0].Field)
		assert.Contains(t, appErr.Errors[0].Message, "at least 5")
	})

	t.Run("several failures", func(t *testing.T) {
		rr := post(`{"username":"ab-c","email":"nope"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Len(t, decodeAppError(t, rr).Errors, 3)
	})

	t.Run("created", func(t *testing.T) {
		req := model.RegisterRequest{Username: "abc123", Password: "pw", Email: "a@b.co"}
		svc.On("Register", mock.Anything, req).Return(&model.User{ID: "u1", Username: "abc123"}, nil).Once()

		rr := post(`{"username":"abc123","password":"pw","email":"a@b.co"}`)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("taken", func(t *testing.T) {
		req := model.RegisterRequest{Username: "abc123", Password: "pw", Email: "a@b.co"}
		svc.On("Register", mock.Anything, req).Return(nil, service.ErrUsernameTaken).Once()

		rr := post(`{"username":"abc123","password":"pw","email":"a@b.co"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "abc123 already exists", decodeAppError(t, rr).Message)
	})

	t.Run("password the hasher rejects", func(t *testing.T) {
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("could not hash password: %w", service.ErrInvalidPassword)).Once()

		rr := post(`{"username":"abc123","password":"ééé","email":"a@b.co"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		appErr := decodeAppError(t, rr)
		require.Len(t, appErr.Errors, 1)
		assert.Equal(t, "password", appErr.Errors[0].Field)
		assert.NotContains(t, rr.Body.String(), "could not hash")
	})

	svc.AssertExpectations(t)
}

func TestUserHandler_UpdateUser(t *testing.T) {
	svc := new(mockUserService)
	h := NewUserHandler(svc)
	put := func(actor, username, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", "/users/"+username, strings.NewReader(body))
		if actor != "" {
			req = req.WithContext(WithUsername(req.Context(), actor))
		}
		return serve("PUT /users/{username}", ErrorHandlingMiddleware(h.UpdateUser), req)
	}

	t.Run("other user is rejected before the body is read", func(t *testing.T) {
		svc.On("EnsureOwner", "bob123", "alice1").Return(service.ErrPermissionDenied).Once()

		rr := put("bob123", "alice1", `not even json`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Permission denied", decodeAppError(t, rr).Message)
	})

	t.Run("owner update", func(t *testing.T) {
		email := "new@example.com"
		svc.On("EnsureOwner", "alice1", "alice1").Return(nil).Once()
		svc.On("UpdateUser", mock.Anything, "alice1", model.UpdateUserRequest{Email: &email}).
			Return(&model.User{Username: "alice1", Email: email}, nil).Once()

		rr := put("alice1", "alice1", `{"email":"new@example.com"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), email)
	})

	t.Run("owner with invalid payload", func(t *testing.T) {
		svc.On("EnsureOwner", "alice1", "alice1").Return(nil).Once()

		rr := put("alice1", "alice1", `{"email":"nope"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("deleted in the meantime", func(t *testing.T) {
		svc.On("EnsureOwner", "alice1", "alice1").Return(nil).Once()
		svc.On("UpdateUser", mock.Anything, "alice1", mock.Anything).Return(nil, service.ErrUserNotFound).Once()

		rr := put("alice1", "alice1", `{}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	svc.AssertExpectations(t)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	svc := new(mockUserService)
	h := NewUserHandler(svc)
	del := func(username string) *httptest.ResponseRecorder {
		return serve("DELETE /users/{username}", ErrorHandlingMiddleware(h.DeleteUser), httptest.NewRequest("DELETE", "/users/"+username, nil))
	}

	svc.On("DeleteUser", mock.Anything, "alice1").Return(nil).Once()
	svc.On("DeleteUser", mock.Anything, "ghost1").Return(service.ErrUserNotFound).Once()
	svc.On("DeleteUser", mock.Anything, "boom12").Return(errors.New("socket closed")).Once()

	rr := del("alice1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice1 was deleted.", rr.Body.String())

	rr = del("ghost1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "ghost1 was not found", decodeAppError(t, rr).Message)

	rr = del("boom12")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	svc.AssertExpectations(t)
}

func TestUserHandler_Favorites(t *testing.T) {
	svc := new(mockUserService)
	h := NewUserHandler(svc)
	const pattern = "/users/{username}/movies/{movieId}"

	svc.On("AddFavorite", mock.Anything, "alice1", "m1").
		Return(&model.User{Username: "alice1", FavoriteMovies: []string{"m1"}}, nil).Once()
	svc.On("AddFavorite", mock.Anything, "ghost1", "m1").Return(nil, service.ErrUserNotFound).Once()
	svc.On("RemoveFavorite", mock.Anything, "alice1", "m1").
		Return(&model.User{Username: "alice1", FavoriteMovies: []string{}}, nil).Once()
	svc.On("RemoveFavorite", mock.Anything, "ghost1", "m1").Return(nil, service.ErrUserNotFound).Once()

	add := ErrorHandlingMiddleware(h.AddFavorite)
	remove := ErrorHandlingMiddleware(h.RemoveFavorite)

	rr := serve("POST "+pattern, add, httptest.NewRequest("POST", "/users/alice1/movies/m1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"favoriteMovies":["m1"]`)

	rr = serve("POST "+pattern, add, httptest.NewRequest("POST", "/users/ghost1/movies/m1", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve("DELETE "+pattern, remove, httptest.NewRequest("DELETE", "/users/alice1/movies/m1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "m1 was removed from alice1's favorites.", rr.Body.String())

	rr = serve("DELETE "+pattern, remove, httptest.NewRequest("DELETE", "/users/ghost1/movies/m1", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertExpectations(t)
}
