package security

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"learndeck/internal/platform/config"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints the session token for the platform's single user.
func GenerateToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "owner",
		"iat": now.Unix(),
		"exp": now.Add(config.AppConfig.JWTExp).Unix(),
	}

	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}
