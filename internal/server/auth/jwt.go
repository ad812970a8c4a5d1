// Package auth holds the authentication primitives the services build on:
// bearer-token minting and verification, password hashing, and the reversible
// email masking used as the user uniqueness key.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mbertrand/piquante/internal/common"
)

// Claims carries the registered claims plus the authenticated user id.
// The token payload deliberately contains nothing else.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken mints an HS256 bearer token for userID that expires after
// validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns the user id it carries.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", common.ErrorInvalidToken
	}

	if !token.Valid {
		return "", common.ErrorInvalidToken
	}

	return claims.UserID, nil
}
