// Package auth signs and verifies the session-cookie tokens. A token
// carries only the server-side session id; all mutable session state
// stays on the server.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kri-sh27/s3transcribe/internal/shared"
)

// Claims includes the registered claims plus the custom SessionID.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string
}

// GenerateToken signs a session id into an HS256 token valid for
// validityDuration. Token expiry doubles as the session lifetime.
func GenerateToken(sessionID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		SessionID: sessionID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSessionIDFromToken verifies the signature and expiry and returns the
// embedded session id. Invalid, tampered or expired tokens produce
// shared.ErrInvalidToken.
func GetSessionIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", errors.Join(shared.ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", shared.ErrInvalidToken
	}

	return claims.SessionID, nil
}
