package handler

import (
	"context"
	"encoding/json"
	"movie-api/model"
	"movie-api/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	password string
}

func (s stubAuthenticator) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if password != s.password {
		return nil, "", service.ErrInvalidCredentials
	}
	return &model.User{Username: username}, "signed-token", nil
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(stubAuthenticator{password: "password1"})
	login := func(body string) *httptest.ResponseRecorder {
		return serve("POST /login", ErrorHandlingMiddleware(h.Login), httptest.NewRequest("POST", "/login", strings.NewReader(body)))
	}

	t.Run("success", func(t *testing.T) {
		rr := login(`{"username":"alice1","password":"password1"}`)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp model.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, "alice1", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := login(`{"username":"alice1","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := login(`{"username":"alice1"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}
