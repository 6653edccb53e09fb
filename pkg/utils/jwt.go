package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type GenerateJWTDto struct {
	Method jwt.SigningMethod
	Secret []byte
	Claims jwt.MapClaims
	Expiry time.Duration
}

func GenerateJWT(dto GenerateJWTDto) (string, error) {
	dto.Claims["exp"] = time.Now().Add(dto.Expiry).Unix()
	token := jwt.NewWithClaims(dto.Method, dto.Claims)
	return token.SignedString(dto.Secret)
}

func DecodeJWT(token string, secret []byte) (jwt.MapClaims, error) {
	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
