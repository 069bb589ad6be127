package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs and verifies the session cookie token.
//
// The cookie value is a HS256 JWT whose "jti" claim is the session Id.
// Verification only vouches for the cookie's integrity; whether the
// session is still alive is decided by the store.
type Signer struct {
	key []byte
}

var ErrBadToken = errors.New("bad session token")

func NewSigner(key []byte) (*Signer, error) {
	if len(key) < 32 {
		return nil, fmt.Errorf("session signing key is too short: %d bytes (need 32)", len(key))
	}
	return &Signer{key: key}, nil
}

func (s *Signer) Sign(sess Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sess.Id,
		Subject:   sess.Username,
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
	})
	return token.SignedString(s.key)
}

// Verify checks the token signature and expiry and returns the session Id.
func (s *Signer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: unexpected signing method %s", ErrBadToken, t.Method.Alg())
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBadToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", ErrBadToken
	}
	return claims.ID, nil
}
