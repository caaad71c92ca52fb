package sandbox

import (
	"fmt"
	"strconv"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenAccess = "access"
	tokenReset  = "reset"
	issuer      = "bankup-sandbox"
)

// Claims are the custom claims of session and reset tokens.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a user id.
func (c *Claims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

func (s *Sandbox) signToken(userID int64, kind string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.opts.Secret)
}

func (s *Sandbox) parseToken(tokenString, kind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.opts.Secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "Token inválido ou expirado."}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID() == 0 {
		return nil, &domain.ErrUnauthorized{Message: "Token inválido."}
	}
	if claims.Type != kind {
		return nil, &domain.ErrUnauthorized{Message: "Tipo de token inválido."}
	}
	return claims, nil
}

// ValidateAccessToken checks a session token and returns its user id.
func (s *Sandbox) ValidateAccessToken(tokenString string) (int64, error) {
	claims, err := s.parseToken(tokenString, tokenAccess)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	_, ok := s.accounts[claims.UserID()]
	s.mu.RUnlock()
	if !ok {
		return 0, &domain.ErrUnauthorized{Message: "Usuário não encontrado."}
	}
	return claims.UserID(), nil
}
