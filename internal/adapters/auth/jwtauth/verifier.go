package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-backend/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrInvalidToken = errors.New("invalid token")
)

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier validando JWT HS256 emitidos por el
// servicio de identidad (sub = user id, role = user|shelter|admin).
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	role := auth.Role(strings.TrimSpace(claims.Role))
	switch role {
	case auth.RoleUser, auth.RoleShelter, auth.RoleAdmin:
	case "":
		role = auth.RoleUser
	default:
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{UserID: userID, Role: role}, nil
}

// GenerateToken emite un JWT de prueba/herramientas con los mismos claims
// que valida Verify.
func GenerateToken(userID string, role auth.Role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
