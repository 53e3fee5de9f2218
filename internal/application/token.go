package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rsheldon/staffdesk/internal/domain/model"
)

// ErrInvalidToken indicates a session token that failed verification for any
// reason: bad signature, expiry, malformed payload. Callers get no more
// detail than that.
var ErrInvalidToken = errors.New("invalid session token")

// TokenUser is the identity payload embedded in a session token.
type TokenUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// TokenClaims is the full claim set carried by a session token.
type TokenClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-SHA256 signed session tokens.
// Verification is stateless; tokens remain valid until expiry regardless of
// client-side logout.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager signing with the given secret.
// ttl controls how long issued tokens stay valid.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new session token asserting the given user identity and role.
func (m *TokenManager) Issue(userID string, role model.Role) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		User: TokenUser{ID: userID, Role: string(role)},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token, returning its claims.
// Any failure (tampered, expired, wrong algorithm, empty identity) collapses
// to ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.User.ID == "" {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
