package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only actor role the storefront knows about; everything
// else is anonymous public traffic.
const RoleAdmin = "admin"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Email string
	Role  string
	JTI   string
}

// AccessTokenClaims represents the typed JWT issued to the admin client.
type AccessTokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
