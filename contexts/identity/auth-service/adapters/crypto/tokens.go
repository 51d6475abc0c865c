package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "postline/contexts/identity/auth-service/domain/errors"
	"postline/contexts/identity/auth-service/ports"
)

const defaultTokenLifetime = time.Hour

// TokenCodec signs and verifies HS256 session tokens. The secret is loaded
// once at startup and must not change while the process runs; there is no
// revocation list, so validity is signature plus expiry alone.
type TokenCodec struct {
	Secret   []byte
	Lifetime time.Duration
	Clock    ports.Clock
}

type tokenClaims struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func (c TokenCodec) Issue(claims ports.TokenClaims) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email:  claims.Email,
		UserID: claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime())),
		},
	})
	return token.SignedString(c.Secret)
}

func (c TokenCodec) Verify(raw string) (ports.TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	var claims tokenClaims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return c.Secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return ports.TokenClaims{}, domainerrors.ErrTokenInvalid
	}
	return ports.TokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

func (c TokenCodec) lifetime() time.Duration {
	if c.Lifetime <= 0 {
		return defaultTokenLifetime
	}
	return c.Lifetime
}

func (c TokenCodec) now() time.Time {
	if c.Clock == nil {
		return time.Now().UTC()
	}
	return c.Clock.Now().UTC()
}
