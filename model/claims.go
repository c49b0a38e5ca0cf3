package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims are the JWT claims issued at login. The subject carries the username.
type AppClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
