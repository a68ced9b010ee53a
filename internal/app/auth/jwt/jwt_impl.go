package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/errors"
	jwt2 "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/jwt"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
	"github.com/inkwell-app/inkwell/api-service/internal/infra/config"
)

type JwtUtilImpl struct {
	secret   []byte
	tokenTTL time.Duration
	issuer   string
}

func NewJWTUtil(cfg *config.Config) (*JwtUtilImpl, error) {
	if cfg.JWTSecret == "" {
		return nil, customErrors.NewInvalidArgument("empty JWT secret")
	}
	return &JwtUtilImpl{
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
		issuer:   cfg.Issuer,
	}, nil
}

func (j *JwtUtilImpl) GenerateToken(user model.User) (token string, exp time.Time, jti string, err error) {
	jti = uuid.NewString()
	now := time.Now()

	claims := jwt2.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
			ID:        jti,
		},
		Name:   user.Username,
		Email:  user.Email,
		Avatar: user.Avatar,
		Role:   user.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (j *JwtUtilImpl) ValidateToken(raw string) (jwt2.Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt2.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.secret, nil
	}, jwt.WithIssuedAt())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt2.Claims{}, customErrors.ErrTokenExpired
		}
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}
	if !token.Valid {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt2.Claims)
	if !ok {
		return jwt2.Claims{}, customErrors.WrapInternal(
			errors.New("claims not Claims"), "ValidateToken",
		)
	}

	if j.issuer != "" && claims.Issuer != j.issuer {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
