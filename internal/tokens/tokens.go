package tokens

import (
	"errors"
	"time"

	"github.com/gogotex/bridges/internal/identity"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken creates a signed HS256 access token for the identity.
func GenerateAccessToken(secret string, who *identity.Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}
	if who == nil || who.ID == "" {
		return "", errors.New("token subject is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  who.ID,
		"type": who.Type,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	if who.DisplayName != "" {
		claims["name"] = who.DisplayName
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}
