package models

import "github.com/golang-jwt/jwt/v5"

// Claims defines the structure of the JWT claims. Tokens are issued by the
// account service; this backend only verifies them.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"` // "parent" or "child"
	jwt.RegisteredClaims
}
