package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/todoweb/todoweb/internal/model"
)

// Claims represents JWT claims carrying the session's user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// JWT implements TokenManager backed by symmetric HMAC. The token is the
// whole session: nothing is stored server-side, invalidation is cookie
// deletion or expiry.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// session lifetime.
func NewJWT(secretKey string, ttl time.Duration) model.TokenManager {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// Issue creates a signed session token for the user and returns it together
// with its expiry.
func (j *JWT) Issue(userID int64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Parse validates the signature and expiry and extracts the user ID. Any
// failure, including attacker-controlled garbage, comes back as
// model.ErrInvalidToken.
func (j *JWT) Parse(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return 0, model.ErrInvalidToken
	}
	if !token.Valid {
		return 0, model.ErrInvalidToken
	}
	if claims.UserID == 0 {
		return 0, model.ErrInvalidToken
	}
	return claims.UserID, nil
}
