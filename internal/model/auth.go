package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	// UserIDKey holds the verified uid of the end user calling the account route.
	UserIDKey contextKey = "userID"
	// ActorKey holds the subject of the admin token.
	ActorKey contextKey = "actor"
)

// AdminClaims is the payload of console tokens.
type AdminClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
