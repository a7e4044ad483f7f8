// Package auth issues and verifies bearer tokens, hashes passwords and decides
// which roles may perform which operations.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"onthegomusic/internal/domain"
)

// ErrInvalidToken is returned for tokens that are malformed, badly signed or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the password-less user record alongside the standard claims.
type Claims struct {
	Usuario domain.Usuario `json:"usuario"`
	jwt.StandardClaims
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID     string
	Correo string
	Nombre string
	Rol    domain.Rol
}

// TokenIssuer signs and verifies HS256 tokens with a single secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer returns an issuer whose tokens live for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime of issued tokens.
func (i *TokenIssuer) TTL() time.Duration { return i.ttl }

// Issue signs a token embedding u. The password hash is always dropped.
func (i *TokenIssuer) Issue(u domain.Usuario) (string, error) {
	u.Password = ""
	now := time.Now()
	claims := Claims{
		Usuario: u,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(i.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse verifies tokenStr and returns the principal it asserts.
func (i *TokenIssuer) Parse(tokenStr string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == 0 {
		return nil, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	return &Principal{
		ID:     claims.Subject,
		Correo: claims.Usuario.Correo,
		Nombre: claims.Usuario.Nombre,
		Rol:    claims.Usuario.Rol,
	}, nil
}
