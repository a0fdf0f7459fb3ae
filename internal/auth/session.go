// ABOUTME: Signed session tokens carried by the editor's browser cookie.
// ABOUTME: Always enforces HS256 algorithm and expiration; never call jwt.Parse directly.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a sign-in lasts before the editor is sent back
// through Google.
const SessionTTL = 7 * 24 * time.Hour

// SessionClaims holds the identity embedded in the session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// IssueSession creates a signed HS256 session token for a verified identity.
func IssueSession(secret []byte, email, name, picture string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:   email,
		Name:    name,
		Picture: picture,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSession validates and parses an HS256 session token.
// Returns an error if the token is expired, uses a wrong algorithm, or is invalid.
func ParseSession(tokenStr string, secret []byte) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	return claims, nil
}
