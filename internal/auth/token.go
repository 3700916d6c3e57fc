// internal/auth/token.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/model"
)

type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
}

func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
	}
}

type Claims struct {
	PrincipalID string     `json:"principal_id"`
	Role        model.Role `json:"role"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) Generate(principalID uuid.UUID, role model.Role) (string, error) {
	claims := Claims{
		PrincipalID: principalID.String(),
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate verifies the token signature, expiry and claims. Malformed,
// tampered and expired tokens are all reported as domain.ErrInvalidToken;
// callers cannot tell which of the three occurred.
func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.PrincipalID); err != nil || !claims.Role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
