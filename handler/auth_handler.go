package handler

import (
	"context"
	"errors"
	"movie-api/common"
	"movie-api/model"
	"movie-api/service"
	"net/http"
)

// Authenticator checks credentials and issues tokens.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.User, string, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges a username and password for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      model.LoginRequest  true  "User credentials"
// @Success      200          {object}  model.LoginResponse
// @Failure      400          {object}  common.AppError "Malformed JSON body"
// @Failure      401          {object}  common.AppError "Incorrect username or password"
// @Failure      422          {object}  common.AppError "Validation failed"
// @Failure      500          {object}  common.AppError
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Incorrect username or password", err)
		}
		return common.NewStoreError(err)
	}

	common.WriteJSON(w, http.StatusOK, model.LoginResponse{User: user, Token: token})
	return nil
}
