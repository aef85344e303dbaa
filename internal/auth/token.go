// Package auth issues and verifies the bearer tokens used by the API.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"mirador/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "mirador-api"
	tokenAudience = "mirador-client"
)

// Manager signs and verifies HS256 tokens carrying an account ID as subject.
type Manager struct {
	secret []byte
	expiry time.Duration
}

// NewManager returns a Manager signing with the given secret. Tokens expire
// after the given duration.
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed token for the given account ID.
func (m *Manager) Issue(accountID uint) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(accountID), 10), // Subject (account ID as string)
		"iss": tokenIssuer,                               // Issuer
		"aud": tokenAudience,                             // Audience
		"exp": now.Add(m.expiry).Unix(),                  // Expiration
		"iat": now.Unix(),                                // Issued at
		"nbf": now.Unix(),                                // Not before
		"jti": generateJTI(),                             // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string and returns the account ID it
// was issued for. All failures map to an invalid-token error so callers do
// not leak which check failed.
func (m *Manager) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewInvalidTokenError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewInvalidTokenError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, models.NewInvalidTokenError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, models.NewInvalidTokenError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewInvalidTokenError("Invalid subject claim")
	}

	accountID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || accountID == 0 {
		return 0, models.NewInvalidTokenError("Invalid account ID in token")
	}

	return uint(accountID), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
