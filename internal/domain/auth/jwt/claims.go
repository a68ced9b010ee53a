package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
)

// Claims is the payload of an identity token. Subject carries the user id;
// the display fields are mirrored from the user record at issuance time.
type Claims struct {
	jwt.RegisteredClaims
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
}

type JWTUtil interface {
	GenerateToken(user model.User) (token string, exp time.Time, jti string, err error)

	ValidateToken(raw string) (Claims, error)
}
