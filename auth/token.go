package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/harishwar07/ecommerce-api/config"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated caller extracted from a session token.
type Identity struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

func jwtSecret() []byte { return config.JWTSecret() }

// IssueToken signs a stateless HS256 session token for the given user.
// There is no server-side revocation; the token is valid until exp.
func IssueToken(userID uint, email string, isAdmin bool, expiry time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  userID,
		"email":   email,
		"isAdmin": isAdmin,
		"exp":     time.Now().Add(expiry).Unix(),
	})
	return t.SignedString(jwtSecret())
}

// ParseToken verifies the signature and expiry and returns the caller identity.
func ParseToken(tokenString string) (Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	idFloat, ok := claims["userId"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	isAdmin, _ := claims["isAdmin"].(bool)

	return Identity{UserID: uint(idFloat), Email: email, IsAdmin: isAdmin}, nil
}
